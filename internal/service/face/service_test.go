package face

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPrompt(t *testing.T) {
	assert.Contains(t, Prompt, `just say "UNCLEAR"`)
	assert.Contains(t, Prompt, "maximum of two sentences")
	assert.Contains(t, Prompt, "Persian")
}

func TestDescriber_Describe(t *testing.T) {
	chat := new(test.MockChatClient)
	want := []core.Attachment{
		{Content: "https://img/a.jpg", ContentType: "IMAGE"},
		{Content: "https://img/b.jpg", ContentType: "IMAGE"},
	}
	chat.On("SendMessage", mock.Anything, Prompt, want).
		Return(" مردی با صورت گرد و ریش کوتاه. ", nil).Once()

	d := NewDescriber(chat)
	got, err := d.Describe(context.Background(), []string{"https://img/a.jpg", " ", "https://img/b.jpg"})
	require.NoError(t, err)

	assert.False(t, got.Unclear)
	assert.Equal(t, "مردی با صورت گرد و ریش کوتاه.", got.Text)
	chat.AssertExpectations(t)
}

func TestDescriber_NoImages(t *testing.T) {
	chat := new(test.MockChatClient)
	d := NewDescriber(chat)

	_, err := d.Describe(context.Background(), []string{"", "  "})
	assert.True(t, errors.Is(err, ErrNoImages))
	chat.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestDescriber_Failure(t *testing.T) {
	chat := new(test.MockChatClient)
	cause := errors.New("request failed")
	chat.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return("", cause)

	_, err := NewDescriber(chat).Describe(context.Background(), []string{"https://img/a.jpg"})
	assert.True(t, errors.Is(err, cause))
}

func TestDescriber_EmptyReply(t *testing.T) {
	chat := new(test.MockChatClient)
	chat.On("SendMessage", mock.Anything, mock.Anything, mock.Anything).Return("  ", nil)

	_, err := NewDescriber(chat).Describe(context.Background(), []string{"https://img/a.jpg"})
	assert.True(t, errors.Is(err, ErrEmptyReply))
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		raw  string
		want Description
	}{
		{raw: "UNCLEAR", want: Description{Unclear: true}},
		{raw: ` "UNCLEAR" `, want: Description{Unclear: true}},
		{raw: "unclear.", want: Description{Unclear: true}},
		{raw: `"زنی با موهای بلند."`, want: Description{Text: "زنی با موهای بلند."}},
		{raw: "**مردی** با عینک.", want: Description{Text: "مردی با عینک."}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReply(tt.raw))
		})
	}
}
