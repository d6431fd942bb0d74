package anuvad

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionStore persists the encoded admin credential between runs.
// Load returns an empty token when no session exists.
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient     *http.Client
	timeout        time.Duration
	pollInterval   time.Duration
	maxUploadBytes int64

	sessionStore   SessionStore
	credentialPath string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithHTTPClient sets a custom HTTP client for all backend requests.
// Overrides WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithPollInterval sets the fixed interval between status polls during a
// watch. Default: 2s.
func WithPollInterval(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.pollInterval = d
	})
}

// WithMaxUploadBytes lowers the client-side upload size ceiling. Values
// of zero or above the 25 MB backend cap fall back to the cap.
func WithMaxUploadBytes(n int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxUploadBytes = n
	})
}

// WithSessionStore replaces the default file-backed credential store.
// Useful for keeping sessions in memory or in a secret manager.
func WithSessionStore(s SessionStore) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionStore = s
	})
}

// WithCredentialFile sets the path of the file-backed credential store.
// Default: ~/.anuvad/credentials.yaml. Ignored when WithSessionStore is
// used.
func WithCredentialFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.credentialPath = path
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
