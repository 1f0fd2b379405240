package biography

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/internal/record"
	"github.com/sandevgo/bioprep/pkg/conv"
	"github.com/sandevgo/bioprep/pkg/log"
)

var ErrEmptyOutput = errors.New("biography: model returned no text")

type Generator struct {
	chat   core.ChatClient
	tokens core.TokenCounter
}

// NewGenerator wires a chat client; tokens may be nil.
func NewGenerator(chat core.ChatClient, tokens core.TokenCounter) *Generator {
	return &Generator{
		chat:   chat,
		tokens: tokens,
	}
}

// Generate asks the model for a Persian biography of p and returns the
// extracted, plain-text answer.
func (g *Generator) Generate(ctx context.Context, p *record.Person) (string, error) {
	logger := log.FromCtx(ctx)
	prompt := BuildPrompt(p)

	if g.tokens != nil {
		if n, err := g.tokens.CountTokens(prompt); err != nil {
			logger.Debug().Err(err).Msg("token estimate unavailable")
		} else {
			logger.Debug().Int("tokens", n).Str("person", p.Label()).Msg("biography prompt built")
		}
	}

	raw, err := g.chat.SendMessage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate biography for %s: %w", p.Label(), err)
	}

	text := conv.MarkdownToPlain(ExtractOutput(raw))
	if text == "" {
		return "", fmt.Errorf("generate biography for %s: %w", p.Label(), ErrEmptyOutput)
	}
	return text, nil
}
