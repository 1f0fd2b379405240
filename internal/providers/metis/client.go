package metis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/pkg/log"
	"github.com/sandevgo/bioprep/pkg/retry"
)

const maxResponseSize = 4 << 20

var (
	// ErrRequestFailed is returned once every attempt has failed. It wraps the last error.
	ErrRequestFailed = errors.New("metis: request failed")
	// ErrUnexpectedResponse means the service answered 2xx with a body we cannot use.
	ErrUnexpectedResponse = errors.New("metis: unexpected response format")
)

type Config struct {
	BaseURL string
	APIKey  string
	BotID   string
	Timeout time.Duration
	Retry   *retry.Config
}

// Client talks to the Metis chat API. Every SendMessage opens its own session.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	botID   string
	retry   retry.Config

	mu          sync.Mutex
	lastSession string
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = core.DefaultMetisBaseURL
	}
	rc := retry.NewDefaultConfig()
	if cfg.Retry != nil {
		rc = cfg.Retry
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		botID:   cfg.BotID,
		retry:   *rc,
	}
}

// SessionID returns the most recently created session id. It is informational only.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSession
}

func (c *Client) CreateSession(ctx context.Context) (string, error) {
	payload := map[string]string{"botId": c.botID}

	var result struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/chat/session", payload, &result); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("create session: empty session id")
	}

	c.mu.Lock()
	c.lastSession = result.ID
	c.mu.Unlock()
	return result.ID, nil
}

// SendMessage opens a session, posts content with the given attachments and
// returns the reply's content field. Transport failures are retried with
// exponential backoff; once retries are spent the error wraps ErrRequestFailed.
func (c *Client) SendMessage(ctx context.Context, content string, attachments ...core.Attachment) (string, error) {
	logger := log.FromCtx(ctx)

	rc := c.retry
	notify := c.retry.OnRetry
	rc.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.Warn().Err(err).
			Int("attempt", attempt+1).
			Dur("retry_in", delay).
			Msg("metis request failed, retrying")
		if notify != nil {
			notify(attempt, delay, err)
		}
	}

	msg := core.ChatMessage{
		Content:     content,
		Type:        core.MessageTypeUser,
		Attachments: attachments,
	}

	var reply string
	err := retry.NewRetrier(&rc).Do(ctx, func() error {
		sessionID, err := c.CreateSession(ctx)
		if err != nil {
			return err
		}
		reply, err = c.postMessage(ctx, sessionID, msg)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUnexpectedResponse) || ctx.Err() != nil {
			return "", err
		}
		logger.Error().Err(err).Int("retries", rc.MaxRetries).Msg("metis request failed after retries")
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	return reply, nil
}

func (c *Client) postMessage(ctx context.Context, sessionID string, msg core.ChatMessage) (string, error) {
	payload := map[string]any{"message": msg}
	path := fmt.Sprintf("/chat/session/%s/message", sessionID)

	var result map[string]json.RawMessage
	if err := c.postJSON(ctx, path, payload, &result); err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	raw, ok := result["content"]
	if !ok {
		return "", retry.Permanent(fmt.Errorf("%w: no content field", ErrUnexpectedResponse))
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", retry.Permanent(fmt.Errorf("%w: content is not a string", ErrUnexpectedResponse))
	}
	return text, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}
