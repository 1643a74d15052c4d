package transport

import (
	"encoding/json"

	"github.com/fastygo/taskbuddy/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   *Meta       `json:"meta,omitempty"`
}

// Meta carries side information such as the notifications an operation raised.
type Meta struct {
	Notifications []domain.Notification `json:"notifications,omitempty"`
	Details       interface{}           `json:"details,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta *Meta) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta *Meta) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// WithNotifications returns meta for the given notifications, or nil when there are none.
func WithNotifications(items []domain.Notification) *Meta {
	if len(items) == 0 {
		return nil
	}
	return &Meta{Notifications: items}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
