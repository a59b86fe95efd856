package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/babarot/rtrash/internal/transport"
)

type navCounter struct{ n int }

func (c *navCounter) ToLogin() { c.n++ }

type memCookies struct {
	saved, cleared int
	clearErr       error
}

func (m *memCookies) Save() error  { m.saved++; return nil }
func (m *memCookies) Clear() error { m.cleared++; return m.clearErr }

func newClient(t *testing.T, url string, nav transport.Navigator) *transport.Client {
	t.Helper()
	c, err := transport.New(transport.Config{BaseURL: url, Navigator: nav})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGate(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
		wantNav int
	}{
		{name: "authenticated", status: http.StatusOK, wantErr: nil, wantNav: 0},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrNotAuthenticated, wantNav: 1},
		{name: "server error still starts", status: http.StatusInternalServerError, wantErr: nil, wantNav: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			nav := &navCounter{}
			err := Gate(context.Background(), newClient(t, srv.URL, nav), nav)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Gate() error = %v, want %v", err, tt.wantErr)
			}
			if nav.n != tt.wantNav {
				t.Errorf("navigations = %d, want %d", nav.n, tt.wantNav)
			}
			if len(paths) != 1 || paths[0] != ProbePath {
				t.Errorf("requests = %v, want one probe", paths)
			}
		})
	}
}

func TestGateNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	nav := &navCounter{}
	err := Gate(context.Background(), newClient(t, url, nav), nav)
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Gate() error = %v", err)
	}
	if nav.n != 1 {
		t.Errorf("navigations = %d, want 1", nav.n)
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		wantErr   error
		wantSaved int
	}{
		{name: "valid", password: "secret", wantErr: nil, wantSaved: 1},
		{name: "invalid", password: "nope", wantErr: ErrInvalidCredentials, wantSaved: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != LoginPath || r.Method != http.MethodPost {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				if r.FormValue("username") == "admin" && r.FormValue("password") == "secret" {
					http.SetCookie(w, &http.Cookie{Name: "session", Value: "authenticated", Path: "/"})
					return
				}
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			cookies := &memCookies{}
			nav := &navCounter{}
			m := NewManager(newClient(t, srv.URL, nav), cookies)
			err := m.Login(context.Background(), "admin", tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if cookies.saved != tt.wantSaved {
				t.Errorf("saved = %d, want %d", cookies.saved, tt.wantSaved)
			}
			if nav.n != 0 {
				t.Error("login must not navigate")
			}
		})
	}
}

func TestLogoutClearsOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cookies := &memCookies{}
	m := NewManager(newClient(t, url, &navCounter{}), cookies)
	if err := m.Logout(context.Background()); err == nil {
		t.Error("Logout() should report the network failure")
	}
	if cookies.cleared != 1 {
		t.Errorf("cleared = %d, want 1", cookies.cleared)
	}
}
