package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/services"
)

const ActionGetFormConfig = "getFormConfig"

// AttendanceSubmitter is the part of the attendance service the handlers use.
type AttendanceSubmitter interface {
	SubmitAttendance(ctx context.Context, cs models.ClientSubmission) (*services.SubmissionOutcome, error)
	HandleFormEvent(ctx context.Context, ev models.FormEvent) error
}

type FormConfigGetter interface {
	Get(ctx context.Context, formID string) (*models.FormConfig, error)
}

type AttendanceHandler struct {
	attendance  AttendanceSubmitter
	formConfigs FormConfigGetter
	now         func() time.Time
}

func NewAttendanceHandler(attendance AttendanceSubmitter, formConfigs FormConfigGetter) *AttendanceHandler {
	return &AttendanceHandler{
		attendance:  attendance,
		formConfigs: formConfigs,
		now:         time.Now,
	}
}

// ExecGet godoc
// @Summary LIFF API entry point (GET)
// @Tags attendance
// @Description action=getFormConfig returns form metadata, action=submitAttendance records an answer, anything else is a liveness ping.
// @Produce json
// @Param action query string false "getFormConfig | submitAttendance"
// @Param formId query string false "Form ID for getFormConfig" default(1)
// @Param userId query string false "LINE user ID"
// @Param userName query string false "LINE display name"
// @Param attendance query string false "Attendance answer"
// @Param formKey query string false "Form key" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /exec [get]
func (h *AttendanceHandler) ExecGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	switch params.Get("action") {
	case ActionGetFormConfig:
		formID := params.Get("formId")
		if formID == "" {
			formID = config.DefaultFormKey
		}
		h.getFormConfig(w, r, formID)

	case services.ActionSubmitAttendance:
		h.submit(w, r, models.ClientSubmission{
			Action:     services.ActionSubmitAttendance,
			UserID:     params.Get("userId"),
			UserName:   params.Get("userName"),
			Attendance: params.Get("attendance"),
			FormKey:    params.Get("formKey"),
			BambooNo:   params.Get("bambooNo"),
		})

	default:
		successResponse(w, r, http.StatusOK, jsonResponse{
			"message":   "API is running",
			"timestamp": h.now().UTC().Format(time.RFC3339),
		})
	}
}

// ExecPost godoc
// @Summary LIFF API entry point (POST)
// @Tags attendance
// @Description A JSON body with action=submitAttendance records an answer; any other body is acknowledged as a webhook.
// @Accept json
// @Produce json
// @Param body body models.ClientSubmission false "Attendance submission"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /exec [post]
func (h *AttendanceHandler) ExecPost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(maxBodyBytes)))
	if err != nil {
		badRequestResponse(w, r, decodeErr(err))
		return
	}

	if isJSON(r.Header.Get("Content-Type")) && len(bytes.TrimSpace(body)) > 0 {
		var envelope struct {
			Action string `json:"action"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			badRequestResponse(w, r, decodeErr(err))
			return
		}
		if envelope.Action == services.ActionSubmitAttendance {
			var cs models.ClientSubmission
			if err := json.Unmarshal(body, &cs); err != nil {
				badRequestResponse(w, r, decodeErr(err))
				return
			}
			h.submit(w, r, cs)
			return
		}
	}

	// Everything else is a messaging-platform webhook delivery; acknowledge it.
	message := "OK"
	if len(bytes.TrimSpace(body)) == 0 {
		message = "No Data"
	}
	successResponse(w, r, http.StatusOK, jsonResponse{"message": message})
}

// FormEvent godoc
// @Summary Form-submit trigger
// @Tags attendance
// @Description Receives the named values of a submitted form row. Processing problems are logged, never returned.
// @Accept json
// @Produce json
// @Param body body models.FormEvent true "Form event"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /forms/events [post]
func (h *AttendanceHandler) FormEvent(w http.ResponseWriter, r *http.Request) {
	var ev models.FormEvent
	if err := readJSON(w, r, &ev); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.attendance.HandleFormEvent(r.Context(), ev); err != nil {
		slog.Info("form event abandoned", slog.String("source", ev.Source), slog.Any("error", err))
	}
	successResponse(w, r, http.StatusAccepted, jsonResponse{"message": "accepted"})
}

func (h *AttendanceHandler) getFormConfig(w http.ResponseWriter, r *http.Request, formID string) {
	fc, err := h.formConfigs.Get(r.Context(), formID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, jsonResponse{"config": fc})
}

func (h *AttendanceHandler) submit(w http.ResponseWriter, r *http.Request, cs models.ClientSubmission) {
	outcome, err := h.attendance.SubmitAttendance(r.Context(), cs)
	if err != nil {
		if errors.Is(err, services.ErrMissingIdentity) {
			slog.Warn("submission without user id rejected", slog.String("form_key", cs.FormKey))
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, jsonResponse{
		"bambooNo":   outcome.RosterNumber,
		"registered": outcome.Registered,
		"notified":   outcome.Notified,
		"message":    outcome.Message,
	})
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
