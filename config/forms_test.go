package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleForms = `
default_form_key: "2"
default_reply_template: "竹号{bambooNo}番 {status}で受け付けました"
unregistered_reply_template: "竹号が未登録です"
forms:
  "1":
    source: form_responses_1
    record_responses: true
    columns:
      user_id: userId
      name: 名前
      roster_number: 竹号
      status: 出欠
  "2":
    source: form_responses_2
    reply_template: "{status}"
    columns:
      user_id: userId
      status: 出欠
`

func TestParseForms(t *testing.T) {
	fc, err := ParseForms([]byte(sampleForms))
	require.NoError(t, err)

	assert.Equal(t, "2", fc.DefaultFormKey)
	assert.Equal(t, "竹号が未登録です", fc.UnregisteredReplyTemplate)

	key, form, ok := fc.BySource("form_responses_1")
	require.True(t, ok)
	assert.Equal(t, "1", key)
	assert.True(t, form.RecordResponses)
	assert.Equal(t, "竹号", form.Columns.RosterNumber)

	_, _, ok = fc.BySource("")
	assert.False(t, ok)
	_, _, ok = fc.BySource("unknown")
	assert.False(t, ok)

	form2, ok := fc.ByKey("2")
	require.True(t, ok)
	assert.Empty(t, form2.Columns.Name)

	assert.Equal(t, "{status}", fc.ReplyTemplate("2"))
	assert.Equal(t, fc.DefaultReplyTemplate, fc.ReplyTemplate("1"))
	assert.Equal(t, fc.DefaultReplyTemplate, fc.ReplyTemplate("missing"))
}

func TestParseForms_DefaultFormKey(t *testing.T) {
	fc, err := ParseForms([]byte(`default_reply_template: "ok"`))
	require.NoError(t, err)
	assert.Equal(t, DefaultFormKey, fc.DefaultFormKey)
	assert.Empty(t, fc.Forms)
}

func TestParseForms_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed yaml":   "forms: [",
		"missing template": `forms: {"1": {columns: {user_id: userId}}}`,
		"missing user id column": `
default_reply_template: "ok"
forms:
  "1":
    columns:
      name: 名前
`,
		"shared source": `
default_reply_template: "ok"
forms:
  "1":
    source: same
    columns: {user_id: userId}
  "2":
    source: same
    columns: {user_id: userId}
`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseForms([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadForms_MissingFile(t *testing.T) {
	_, err := LoadForms("/nonexistent/forms.yml")
	assert.Error(t, err)
}
