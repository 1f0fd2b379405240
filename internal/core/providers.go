package core

import "context"

// ChatClient sends one message to a fresh conversation and returns the reply text.
type ChatClient interface {
	SendMessage(ctx context.Context, content string, attachments ...Attachment) (string, error)
}

type TokenCounter interface {
	CountTokens(text string) (int, error)
}
