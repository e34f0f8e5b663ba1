// Package webclient provides the outbound HTTP transport used for webhook
// deliveries. Backends register themselves by name; nethttp is the default.
package webclient

import "github.com/egisf/egisf/internal/interfaces"

type (
	WebClient = interfaces.WebClient
	Request   = interfaces.WebRequest
	Response  = interfaces.WebResponse
)
