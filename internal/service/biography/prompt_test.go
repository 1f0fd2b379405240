package biography

import (
	"strings"
	"testing"

	"github.com/sandevgo/bioprep/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_EmbedsRecord(t *testing.T) {
	p, err := record.ParsePerson([]byte(`{"name":"کامبیز آتابای","occupation":["مدیر فوتبال","مربی"]}`))
	require.NoError(t, err)

	prompt := BuildPrompt(p)

	assert.Contains(t, prompt, "Now convert this JSON:\n{\n  \"name\": \"کامبیز آتابای\",\n  \"occupation\": [\n    \"مدیر فوتبال\",")
	assert.True(t, strings.HasSuffix(prompt, "\n\n"+OutputMarker))
	assert.Contains(t, prompt, "STRICT RULES:")
	assert.Contains(t, prompt, "Example:\nInput: ")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	p := record.SamplePerson()
	assert.Equal(t, BuildPrompt(p), BuildPrompt(p))
}

func TestBuildPrompt_EmptyRecordHasNoNullTokens(t *testing.T) {
	for name, p := range map[string]*record.Person{
		"nil":   nil,
		"empty": record.NewPerson(),
	} {
		t.Run(name, func(t *testing.T) {
			prompt := BuildPrompt(p)

			assert.Contains(t, prompt, "Now convert this JSON:\n{}\n")
			assert.NotContains(t, prompt, "null")
			assert.NotContains(t, prompt, "None")
		})
	}
}

func TestBuildPrompt_NameOnly(t *testing.T) {
	p, err := record.ParsePerson([]byte(`{"name":"فردوسی"}`))
	require.NoError(t, err)

	prompt := BuildPrompt(p)
	assert.Contains(t, prompt, "{\n  \"name\": \"فردوسی\"\n}")
	assert.NotContains(t, prompt, "null")
}

func TestBuildPrompt_NoHTMLEscaping(t *testing.T) {
	p, err := record.ParsePerson([]byte(`{"works":["<b>A & B</b>"]}`))
	require.NoError(t, err)

	prompt := BuildPrompt(p)
	assert.Contains(t, prompt, `"<b>A & B</b>"`)
}
