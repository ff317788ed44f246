package mirror

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/settings"
)

type staticSource settings.State

func (s staticSource) Snapshot() settings.State { return settings.State(s) }

func TestServer_Routes(t *testing.T) {
	cfg := avatar.Default()

	tests := []struct {
		name       string
		state      settings.State
		path       string
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:       "state while loading",
			state:      settings.State{IsLoading: true},
			path:       "/state",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				want := `{"config":null,"isLoading":true,"isError":false}`
				if string(body) != want {
					t.Errorf("body = %s, want %s", body, want)
				}
			},
		},
		{
			name:       "state keeps config on error",
			state:      settings.State{Config: &cfg, IsError: true},
			path:       "/state",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got settings.State
				if err := json.Unmarshal(body, &got); err != nil {
					t.Fatal(err)
				}
				if got.Config == nil || *got.Config != cfg || !got.IsError || got.IsLoading {
					t.Errorf("state = %+v", got)
				}
			},
		},
		{
			name:       "config available",
			state:      settings.State{Config: &cfg},
			path:       "/api/avatar-config",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got avatar.Config
				if err := json.Unmarshal(body, &got); err != nil {
					t.Fatal(err)
				}
				if got != cfg {
					t.Errorf("config = %+v, want %+v", got, cfg)
				}
			},
		},
		{
			name:       "config missing",
			state:      settings.State{IsError: true},
			path:       "/api/avatar-config",
			wantStatus: http.StatusServiceUnavailable,
			check: func(t *testing.T, body []byte) {
				var got map[string]string
				if err := json.Unmarshal(body, &got); err != nil {
					t.Fatal(err)
				}
				if got["error"] == "" {
					t.Errorf("missing error field: %s", body)
				}
			},
		},
		{
			name:       "health",
			state:      settings.State{IsLoading: true},
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(staticSource(tt.state), nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("CORS header = %q", got)
			}
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}

func TestServer_Preflight(t *testing.T) {
	srv := New(staticSource{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/state", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	cfg := avatar.Default()
	srv := New(staticSource{Config: &cfg}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/avatar-config")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
