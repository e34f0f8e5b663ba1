package webclient

import "time"

type Client string

const (
	ClientNetHTTP Client = "nethttp"
)

// DefaultTimeout bounds a single outbound request when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config is the minimal set of options required for constructing a WebClient.
type Config struct {
	Client Client `json:"client" yaml:"client" env:"CLIENT"`

	// Timeout is applied to the underlying http.Client.
	Timeout time.Duration `json:"timeout" yaml:"timeout" env:"TIMEOUT"`

	// UserAgent is sent on every request when set.
	UserAgent string `json:"user_agent" yaml:"user_agent" env:"USER_AGENT"`
}
