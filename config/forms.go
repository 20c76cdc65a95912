package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFormKey = "1"

// ColumnLabels names the form questions that carry each submission field.
// Only UserID is mandatory; a form may omit the name or roster number question.
type ColumnLabels struct {
	UserID       string `yaml:"user_id"`
	Name         string `yaml:"name,omitempty"`
	RosterNumber string `yaml:"roster_number,omitempty"`
	Status       string `yaml:"status,omitempty"`
}

// FormSettings is the per-form behaviour that is not part of the form's
// display metadata.
type FormSettings struct {
	// Source identifies the response table that emits form events for this form.
	Source        string       `yaml:"source"`
	Columns       ColumnLabels `yaml:"columns"`
	ReplyTemplate string       `yaml:"reply_template,omitempty"`
	// RecordResponses enables writing the resolved roster number back onto
	// the response row of a form event.
	RecordResponses bool `yaml:"record_responses,omitempty"`
}

// FormsConfig is the top-level forms.yml document.
type FormsConfig struct {
	DefaultFormKey            string                  `yaml:"default_form_key,omitempty"`
	DefaultReplyTemplate      string                  `yaml:"default_reply_template"`
	UnregisteredReplyTemplate string                  `yaml:"unregistered_reply_template,omitempty"`
	Forms                     map[string]FormSettings `yaml:"forms"`
}

// LoadForms reads and validates the forms settings file.
func LoadForms(path string) (*FormsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forms config %s: %w", path, err)
	}
	return ParseForms(data)
}

// ParseForms decodes a forms settings document and applies defaults.
func ParseForms(data []byte) (*FormsConfig, error) {
	var fc FormsConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse forms config: %w", err)
	}
	if fc.DefaultFormKey == "" {
		fc.DefaultFormKey = DefaultFormKey
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}

// Validate checks that every form can be reconciled and answered.
func (fc *FormsConfig) Validate() error {
	if fc.DefaultReplyTemplate == "" {
		return fmt.Errorf("default_reply_template is required")
	}
	sources := make(map[string]string)
	for key, form := range fc.Forms {
		if form.Columns.UserID == "" {
			return fmt.Errorf("form %q: columns.user_id is required", key)
		}
		if form.Source == "" {
			continue
		}
		if other, exists := sources[form.Source]; exists {
			return fmt.Errorf("forms %q and %q share source %q", other, key, form.Source)
		}
		sources[form.Source] = key
	}
	return nil
}

// ByKey returns the settings of a form. Forms without an entry fall back to
// the default template and no write-back.
func (fc *FormsConfig) ByKey(key string) (FormSettings, bool) {
	form, ok := fc.Forms[key]
	return form, ok
}

// BySource finds the form whose response table emitted an event.
func (fc *FormsConfig) BySource(source string) (string, FormSettings, bool) {
	for key, form := range fc.Forms {
		if form.Source != "" && form.Source == source {
			return key, form, true
		}
	}
	return "", FormSettings{}, false
}

// ReplyTemplate returns the template used to answer a resolved submission.
func (fc *FormsConfig) ReplyTemplate(key string) string {
	if form, ok := fc.Forms[key]; ok && form.ReplyTemplate != "" {
		return form.ReplyTemplate
	}
	return fc.DefaultReplyTemplate
}
