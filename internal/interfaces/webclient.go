package interfaces

import (
	"context"
	"net/http"
	"time"
)

// WebRequest is a backend-neutral outbound HTTP request.
type WebRequest struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// WebResponse is what a WebClient hands back once the body has been read.
type WebResponse struct {
	Request    *WebRequest
	Headers    http.Header
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

type WebClient interface {
	Do(ctx context.Context, req *WebRequest) (*WebResponse, error)

	// Post is a convenience method for JSON POST requests
	Post(ctx context.Context, url string, body []byte) (*WebResponse, error)

	Close() error
}
