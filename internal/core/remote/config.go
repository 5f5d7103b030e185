package remote

import (
	"fmt"
	"net/url"
	"time"
)

// Config describes how to reach a host-side bridge.
type Config struct {
	// URL selects the transport by scheme: ws://, wss:// or quic://.
	URL          string        `json:"url" yaml:"url"`
	DialTimeout  time.Duration `json:"dial_timeout,omitempty" yaml:"dial_timeout,omitempty"`
	ReadTimeout  time.Duration `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `json:"write_timeout,omitempty" yaml:"write_timeout,omitempty"`
	// SkipVerify accepts the self-signed certificates development bridges
	// serve.
	SkipVerify bool `json:"skip_verify,omitempty" yaml:"skip_verify,omitempty"`
}

// Validate checks the config before any dial is attempted.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("remote: url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("remote: invalid url: %w", err)
	}
	switch u.Scheme {
	case "ws", "wss", "quic":
	default:
		return fmt.Errorf("remote: unsupported scheme %q, expected ws, wss or quic", u.Scheme)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.DialTimeout == 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	return c
}
