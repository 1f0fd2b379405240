package biography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "no marker returns trimmed text",
			raw:  "  کامبیز آتابای در تهران به دنیا آمد.  \n",
			want: "کامبیز آتابای در تهران به دنیا آمد.",
		},
		{
			name: "truncates echoed input",
			raw:  "Output: X\nInput: Y",
			want: "X",
		},
		{
			name: "strips symmetric quotes",
			raw:  `Output: "hello"`,
			want: "hello",
		},
		{
			name: "keeps asymmetric quote",
			raw:  `Output: "hello`,
			want: `"hello`,
		},
		{
			name: "uses last marker",
			raw:  "Output: example answer\n\nNow convert this JSON:\n{}\n\nOutput: real answer",
			want: "real answer",
		},
		{
			name: "truncates a new example",
			raw:  "Output: answer\nExample:\nInput: {}",
			want: "answer",
		},
		{
			name: "truncates now convert",
			raw:  "Output: answer\nNow convert this JSON:",
			want: "answer",
		},
		{
			name: "marker without text",
			raw:  "Output: ",
			want: "",
		},
		{
			name: "single quote char",
			raw:  `Output: "`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractOutput(tt.raw))
		})
	}
}

func TestExtractOutput_Idempotent(t *testing.T) {
	inputs := []string{
		"Output: X\nInput: Y",
		`Output: "hello"`,
		`Output: " padded "`,
		"plain text",
		`"quoted without marker"`,
		"Output: a\nExample\nOutput: b\nNow convert",
		`Output: "`,
		"",
	}
	for _, in := range inputs {
		once := ExtractOutput(in)
		assert.Equal(t, once, ExtractOutput(once), "input %q", in)
	}
}
