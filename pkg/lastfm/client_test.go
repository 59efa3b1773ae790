package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{APIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "blank API key",
			cfg:     Config{APIKey: "   "},
			wantErr: true,
		},
		{
			name: "custom base URL and timeout",
			cfg: Config{
				APIKey:  "test-key",
				BaseURL: "http://localhost:8080",
				Timeout: 3 * time.Second,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Album() == nil || client.Artist() == nil || client.Chart() == nil ||
				client.Track() == nil || client.User() == nil {
				t.Error("expected all services to be initialized")
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected base URL %s, got %s", DefaultBaseURL, client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}
	if client.userAgent != defaultUserAgent {
		t.Errorf("expected user agent %s, got %s", defaultUserAgent, client.userAgent)
	}
}

func TestNewClient_CustomHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}
	client, err := NewClient(Config{APIKey: "test-key", HTTPClient: custom, Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient != custom {
		t.Error("expected custom HTTP client to be used")
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestClient_Logger(t *testing.T) {
	server := httptest.NewServer(respondJSON(http.StatusOK, `{}`))
	defer server.Close()

	logger := &recordingLogger{}
	client, err := NewClient(Config{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		UserAgent: "lfm-test/0.1",
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.call(context.Background(), "chart.gettoptags", Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.lines) == 0 {
		t.Error("expected debug output when a logger is configured")
	}
}

func TestClient_UserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		respondJSON(http.StatusOK, `{}`)(w, r)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, UserAgent: "lfm-test/0.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.call(context.Background(), "chart.gettoptags", Params{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "lfm-test/0.1" {
		t.Errorf("expected custom user agent, got %q", got)
	}
}
