package face

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/pkg/conv"
	"github.com/sandevgo/bioprep/pkg/log"
)

var (
	ErrNoImages   = errors.New("face: no images to describe")
	ErrEmptyReply = errors.New("face: model returned no text")
)

// Description is a successful answer. Unclear answers carry no text.
type Description struct {
	Text    string
	Unclear bool
}

type Describer struct {
	chat core.ChatClient
}

func NewDescriber(chat core.ChatClient) *Describer {
	return &Describer{chat: chat}
}

// Describe sends Prompt with imageURLs attached in a single message.
func (d *Describer) Describe(ctx context.Context, imageURLs []string) (Description, error) {
	urls := make([]string, 0, len(imageURLs))
	for _, u := range imageURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return Description{}, ErrNoImages
	}

	log.FromCtx(ctx).Debug().Int("images", len(urls)).Msg("requesting face description")

	raw, err := d.chat.SendMessage(ctx, Prompt, core.ImageAttachments(urls)...)
	if err != nil {
		return Description{}, fmt.Errorf("describe face: %w", err)
	}
	desc := ParseReply(raw)
	if !desc.Unclear && desc.Text == "" {
		return Description{}, fmt.Errorf("describe face: %w", ErrEmptyReply)
	}
	return desc, nil
}

// ParseReply normalises a model answer and recognises the Unclear sentinel.
func ParseReply(raw string) Description {
	text := strings.TrimSpace(raw)
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if strings.EqualFold(strings.TrimRight(text, "."), Unclear) {
		return Description{Unclear: true}
	}
	return Description{Text: conv.MarkdownToPlain(text)}
}
