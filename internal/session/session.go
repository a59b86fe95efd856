// Package session decides whether the stored session is usable and
// establishes or ends it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/babarot/rtrash/internal/transport"
)

const (
	ProbePath  = "/list"
	LoginPath  = "/auth"
	LogoutPath = "/logout"
)

var (
	// ErrNotAuthenticated means the gate sent the user to the login flow
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Getter is the part of the transport the gate needs
type Getter interface {
	Get(ctx context.Context, path string) (*http.Response, error)
}

// Gate probes the listing endpoint once. Authentication failures and
// network failures both end in navigation to login; any other answer,
// including a server error, lets the application start.
func Gate(ctx context.Context, client Getter, nav transport.Navigator) error {
	resp, err := client.Get(ctx, ProbePath)
	switch {
	case err == nil:
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil
	case transport.IsUnauthorized(err):
		// the transport has already navigated
		slog.Info("session gate closed", "error", err)
		return ErrNotAuthenticated
	case transport.IsTransport(err):
		slog.Info("session gate closed", "error", err)
		nav.ToLogin()
		return ErrNotAuthenticated
	default:
		slog.Warn("session probe failed, continuing", "error", err)
		return nil
	}
}

// CookieStore persists the cookies the service hands out
type CookieStore interface {
	Save() error
	Clear() error
}

type Manager struct {
	client  *transport.Client
	cookies CookieStore
}

func NewManager(client *transport.Client, cookies CookieStore) *Manager {
	return &Manager{client: client, cookies: cookies}
}

// Login posts credentials and keeps the resulting session cookie.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Raw(ctx, http.MethodPost, LoginPath, strings.NewReader(form.Encode()), header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &transport.RequestFailedError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := m.cookies.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	slog.Info("logged in", "user", username)
	return nil
}

// Logout ends the session on the service and forgets it locally. The local
// cookies are dropped even when the request fails.
func (m *Manager) Logout(ctx context.Context) error {
	var errs []error
	resp, err := m.client.Raw(ctx, http.MethodGet, LogoutPath, nil, nil)
	if err != nil {
		errs = append(errs, err)
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	if err := m.cookies.Clear(); err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}
	return errors.Join(errs...)
}
