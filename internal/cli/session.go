package cli

import (
	"fmt"
	"net/url"

	"github.com/babarot/rtrash/internal/session"
	"github.com/babarot/rtrash/internal/transport"
)

type connection struct {
	client  *transport.Client
	jar     *transport.Jar
	session *session.Manager
}

// connect builds the transport for the configured server, loading the
// stored session cookies.
func (c CLI) connect(nav transport.Navigator) (*connection, error) {
	base, err := url.Parse(c.config.Server.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	jar, err := transport.OpenJar(c.config.Session.CookieFile, base)
	if err != nil {
		return nil, err
	}
	client, err := transport.New(transport.Config{
		BaseURL:   c.config.Server.URL,
		Timeout:   c.config.Server.TimeoutDuration(),
		Jar:       jar,
		Navigator: nav,
	})
	if err != nil {
		return nil, err
	}
	return &connection{
		client:  client,
		jar:     jar,
		session: session.NewManager(client, jar),
	}, nil
}
