// Package matchably provides a Go client for the Matchably marketplace
// REST API: auth, campaign browsing, applications, post submissions,
// rewards, and the admin endpoints.
package matchably

import "time"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.matchably.kr"

// Default client settings.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
)

// Config holds all configuration for the Matchably API client.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// Token is the bearer token placed in the Authorization header.
	// Empty for anonymous requests.
	Token string

	// AdminToken is the separate token used for /admin endpoints.
	AdminToken string

	// Timeout is the HTTP client timeout for each request.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed
	// requests. Only transport faults and 5xx/429 responses retry;
	// auth, validation, and business rejections never do.
	MaxRetries int

	// RetryDelay is the initial delay between retries (exponential
	// backoff applied).
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with the production URL and default
// settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// WithToken returns a copy of the config with the specified token.
func (c Config) WithToken(token string) Config {
	c.Token = token
	return c
}

// WithAdminToken returns a copy of the config with the admin token.
func (c Config) WithAdminToken(token string) Config {
	c.AdminToken = token
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

// WithRetries returns a copy of the config with the specified retry
// settings.
func (c Config) WithRetries(maxRetries int, retryDelay time.Duration) Config {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
	return c
}
