package models

// FormConfig is the display metadata of one attendance form, served to the
// LIFF client.
type FormConfig struct {
	FormID            string `json:"formId" db:"form_id"`
	Title             string `json:"title" db:"title"`
	Date              string `json:"date" db:"event_date"`
	Time              string `json:"time" db:"event_time"`
	Location          string `json:"location" db:"location"`
	LocationURL       string `json:"locationUrl" db:"location_url"`
	Description       string `json:"description" db:"description"`
	QuestionLabel     string `json:"questionLabel" db:"question_label"`
	Option1           string `json:"option1" db:"option1"`
	Option2           string `json:"option2" db:"option2"`
	ResponseTableName string `json:"responseSheetName" db:"response_table"`
	Active            bool   `json:"active" db:"active"`
}
