package model

import "encoding/json"

// NotificationKind classifies how a webhook delivery ended.
type NotificationKind string

const (
	NotificationDelivered    NotificationKind = "delivered"
	NotificationHTTPError    NotificationKind = "http-error"
	NotificationTimeout      NotificationKind = "timeout"
	NotificationNetworkError NotificationKind = "network-error"
	NotificationSkipped      NotificationKind = "skipped"
)

// Notification is the outcome of one webhook delivery attempt. It is
// reported alongside a decision and never changes it.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	Delivered  bool             `json:"delivered"`
	StatusCode int              `json:"status_code,omitempty"`
	Response   json.RawMessage  `json:"response,omitempty" swaggertype:"object"`
	Error      string           `json:"error,omitempty"`
	Message    string           `json:"message"`
}

// Failed reports whether delivery was attempted and did not succeed.
func (n Notification) Failed() bool {
	return n.Kind != NotificationDelivered && n.Kind != NotificationSkipped
}
