package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/babarot/rtrash/internal/fs"
	"golang.org/x/net/publicsuffix"
)

// Jar is a cookie jar that survives restarts. Cookies for the service URL are
// kept on disk so one-shot commands share the session established by login.
type Jar struct {
	mu   sync.Mutex
	path string
	base *url.URL
	jar  *cookiejar.Jar

	// attrs keeps what the server last sent for each cookie name; the
	// jar only hands back name and value.
	attrs map[string]storedCookie
}

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

// OpenJar loads cookies for base from path. A missing file is not an error.
func OpenJar(path string, base *url.URL) (*Jar, error) {
	j := &Jar{path: path, base: base}
	if err := j.reset(); err != nil {
		return nil, err
	}
	if path == "" {
		return j, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		// a broken file only costs a new login
		slog.Warn("ignoring unreadable cookie file", "path", path, "error", err)
		return j, nil
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	j.SetCookies(base, cookies)
	return j, nil
}

func (j *Jar) reset() error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("create cookie jar: %w", err)
	}
	j.jar = jar
	j.attrs = make(map[string]storedCookie)
	return nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	for _, c := range cookies {
		sc := storedCookie{Path: c.Path, Expires: c.Expires, Secure: c.Secure, HttpOnly: c.HttpOnly}
		switch {
		case c.MaxAge < 0:
			delete(j.attrs, c.Name)
			continue
		case c.MaxAge > 0:
			sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		j.attrs[c.Name] = sc
	}
	j.jar.SetCookies(u, cookies)
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Save writes the cookies currently valid for the service URL together with
// the path, expiry and flags the server set. Cookies with no recorded
// attributes are stored for "/".
func (j *Jar) Save() error {
	if j.path == "" {
		return nil
	}
	j.mu.Lock()
	cookies := j.jar.Cookies(j.base)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		sc, ok := j.attrs[c.Name]
		if !ok || sc.Path == "" {
			sc.Path = "/"
		}
		sc.Name, sc.Value = c.Name, c.Value
		stored = append(stored, sc)
	}
	j.mu.Unlock()

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	if err := fs.WriteFileAtomic(j.path, data, 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}
	return nil
}

// Clear drops all cookies in memory and on disk
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.reset(); err != nil {
		return err
	}
	if j.path == "" {
		return nil
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cookie file: %w", err)
	}
	return nil
}
