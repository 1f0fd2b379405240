package test

import (
	"context"

	"github.com/sandevgo/bioprep/internal/core"
	"github.com/stretchr/testify/mock"
)

// MockChatClient is a testify mock of core.ChatClient.
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) SendMessage(ctx context.Context, content string, attachments ...core.Attachment) (string, error) {
	args := m.Called(ctx, content, attachments)
	return args.String(0), args.Error(1)
}

// FakeCounter counts runes, standing in for a real tokenizer.
type FakeCounter struct{}

func (FakeCounter) CountTokens(text string) (int, error) {
	return len([]rune(text)), nil
}
