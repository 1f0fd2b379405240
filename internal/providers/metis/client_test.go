package metis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMetis struct {
	sessions     atomic.Int32
	messages     atomic.Int32
	failMessages int32
	reply        string

	mu       sync.Mutex
	lastAuth string
	lastBody map[string]any
	lastPath string
}

func (f *fakeMetis) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/session", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			BotID string `json:"botId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bot-1", body.BotID)

		n := f.sessions.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"sess-%d"}`, n)
	})
	mux.HandleFunc("POST /chat/session/{id}/message", func(w http.ResponseWriter, r *http.Request) {
		n := f.messages.Add(1)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.lastBody = body
		f.lastPath = r.URL.Path
		f.mu.Unlock()

		if n <= f.failMessages {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "upstream unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"content": f.reply})
	})
	return mux
}

func newTestClient(url string, maxRetries int, onRetry retry.Notify) *Client {
	return NewClient(Config{
		BaseURL: url,
		APIKey:  "test-key",
		BotID:   "bot-1",
		Timeout: 5 * time.Second,
		Retry: &retry.Config{
			MaxRetries:    maxRetries,
			BackoffFactor: 2,
			InitialDelay:  time.Millisecond,
			MaxDelay:      time.Second,
			OnRetry:       onRetry,
		},
	})
}

func TestClient_SendMessage_Success(t *testing.T) {
	fake := &fakeMetis{reply: "سلام"}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL, 3, nil)
	got, err := c.SendMessage(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "سلام", got)
	assert.Equal(t, int32(1), fake.sessions.Load())
	assert.Equal(t, "sess-1", c.SessionID())
	assert.Equal(t, "Bearer test-key", fake.lastAuth)
	assert.Equal(t, "/chat/session/sess-1/message", fake.lastPath)

	msg := fake.lastBody["message"].(map[string]any)
	assert.Equal(t, "hello", msg["content"])
	assert.Equal(t, "USER", msg["type"])
	_, hasAttachments := msg["attachments"]
	assert.False(t, hasAttachments)
}

func TestClient_SendMessage_Attachments(t *testing.T) {
	fake := &fakeMetis{reply: "UNCLEAR"}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL, 0, nil)
	_, err := c.SendMessage(context.Background(), "describe",
		core.ImageAttachments([]string{"https://img/a.jpg", "https://img/b.jpg"})...)
	require.NoError(t, err)

	msg := fake.lastBody["message"].(map[string]any)
	atts := msg["attachments"].([]any)
	require.Len(t, atts, 2)
	first := atts[0].(map[string]any)
	assert.Equal(t, "https://img/a.jpg", first["content"])
	assert.Equal(t, "IMAGE", first["contentType"])
}

func TestClient_SendMessage_RetriesThenSucceeds(t *testing.T) {
	fake := &fakeMetis{reply: "ok", failMessages: 2}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	var delays []time.Duration
	c := newTestClient(srv.URL, 3, func(attempt int, delay time.Duration, err error) {
		delays = append(delays, delay)
	})

	got, err := c.SendMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	assert.Equal(t, int32(3), fake.messages.Load())
	// a fresh session per attempt
	assert.Equal(t, int32(3), fake.sessions.Load())
	assert.Equal(t, "sess-3", c.SessionID())

	require.Len(t, delays, 2)
	assert.Equal(t, time.Millisecond, delays[0])
	assert.Equal(t, 2*delays[0], delays[1])
}

func TestClient_SendMessage_Exhausted(t *testing.T) {
	fake := &fakeMetis{failMessages: 1 << 20}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL, 3, nil)
	got, err := c.SendMessage(context.Background(), "hello")

	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.Contains(t, err.Error(), "http 502")
	assert.Equal(t, int32(4), fake.messages.Load())
}

func TestClient_SendMessage_NegativeRetriesStillFails(t *testing.T) {
	fake := &fakeMetis{failMessages: 1 << 20}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	c := newTestClient(srv.URL, -1, nil)
	got, err := c.SendMessage(context.Background(), "hello")

	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.Equal(t, int32(1), fake.messages.Load())
}

func TestClient_SendMessage_MissingContentNotRetried(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/session", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"s"}`)
	})
	mux.HandleFunc("POST /chat/session/{id}/message", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"answer":"wrong shape"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL, 3, nil)
	_, err := c.SendMessage(context.Background(), "hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
	assert.False(t, errors.Is(err, ErrRequestFailed))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CreateSession_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, "bad token")
			},
			wantErr: "http 401: bad token",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"id":`)
			},
			wantErr: "decode",
		},
		{
			name: "empty id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"id":""}`)
			},
			wantErr: "empty session id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newTestClient(srv.URL, 0, nil)
			_, err := c.CreateSession(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_SendMessage_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(Config{
		BaseURL: srv.URL,
		BotID:   "bot-1",
		Retry: &retry.Config{
			MaxRetries:    5,
			BackoffFactor: 2,
			InitialDelay:  time.Hour,
			OnRetry:       func(int, time.Duration, error) { cancel() },
		},
	})

	_, err := c.SendMessage(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.test/api/v1/"})
	assert.Equal(t, "http://example.test/api/v1", c.baseURL)
	assert.True(t, strings.HasPrefix(c.baseURL, "http://"))

	d := NewClient(Config{})
	assert.Equal(t, core.DefaultMetisBaseURL, d.baseURL)
	assert.Equal(t, 3, d.retry.MaxRetries)
}
