package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubmissionArchiver keeps a copy of every raw inbound submission so that
// failed reconciliations can be traced afterwards.
type SubmissionArchiver interface {
	Archive(ctx context.Context, key string, payload []byte) error
}

// SubmissionKey builds the object key of an archived submission:
// submissions/<formKey>/<yyyy-mm-dd>/<source>-<uuid>.json.
func SubmissionKey(formKey, source string, at time.Time) string {
	if formKey == "" {
		formKey = "unknown"
	}
	return fmt.Sprintf("submissions/%s/%s/%s-%s.json", formKey, at.UTC().Format("2006-01-02"), source, uuid.NewString())
}

type noopArchiver struct{}

// NewNoopArchiver is used when no object storage is configured.
func NewNoopArchiver() SubmissionArchiver {
	return noopArchiver{}
}

func (noopArchiver) Archive(context.Context, string, []byte) error { return nil }
