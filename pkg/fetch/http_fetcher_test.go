package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

const referenceBody = `{"id":"avatar-001","name":"Default Avatar","position":{"x":0,"y":0,"z":0},"color":"#4F46E5","scale":1.0,"visible":true,"rotationSpeed":0.5}`

func TestHTTPFetcher_Success(t *testing.T) {
	var gotPath, gotCache, gotAccept, gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCache = r.Header.Get("Cache-Control")
		gotAccept = r.Header.Get("Accept")
		gotID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(referenceBody))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(ts.Client(), ts.URL+"/")
	cfg, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if cfg != avatar.Default() {
		t.Errorf("Fetch() = %+v, want %+v", cfg, avatar.Default())
	}
	if gotPath != DefaultEndpoint {
		t.Errorf("request path = %q, want %q", gotPath, DefaultEndpoint)
	}
	if gotCache != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", gotCache)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("X-Request-Id = %q is not a UUID: %v", gotID, err)
	}
}

func TestHTTPFetcher_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Not Found", http.StatusNotFound)
			},
			wantErr: ErrStatus,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: ErrStatus,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":`))
			},
			wantErr: ErrDecode,
		},
		{
			name: "invalid config",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"a","color":"#fff","scale":-1}`))
			},
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := NewHTTPFetcher(ts.Client(), ts.URL).Fetch(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPFetcher_InvalidConfigCause(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"a","color":"","scale":1}`))
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(ts.Client(), ts.URL).Fetch(context.Background())
	if !errors.Is(err, ErrDecode) || !errors.Is(err, avatar.ErrInvalidConfig) {
		t.Fatalf("Fetch() error = %v, want ErrDecode wrapping ErrInvalidConfig", err)
	}
}

func TestHTTPFetcher_StatusErrorDetails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewHTTPFetcher(ts.Client(), ts.URL).Fetch(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v is not a *StatusError", err)
	}
	if se.Code != http.StatusNotFound || se.Body != "Not Found" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestHTTPFetcher_Transport(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewHTTPFetcher(&http.Client{Timeout: time.Second}, url).Fetch(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Fetch() error = %v, want ErrTransport", err)
	}
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewHTTPFetcher(ts.Client(), ts.URL).Fetch(ctx)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Fetch() error = %v, want ErrTransport", err)
	}
}

func TestHTTPFetcher_URL(t *testing.T) {
	tests := []struct {
		base, endpoint, want string
	}{
		{"http://localhost:8080", "", "http://localhost:8080/api/avatar-config"},
		{"http://localhost:8080/", "", "http://localhost:8080/api/avatar-config"},
		{"http://host/app", "v2/avatar", "http://host/app/v2/avatar"},
	}
	for _, tt := range tests {
		f := NewHTTPFetcher(http.DefaultClient, tt.base, WithEndpoint(tt.endpoint))
		if got := f.URL(); got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.base, tt.endpoint, got, tt.want)
		}
	}
}
