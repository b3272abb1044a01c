package protocol

import (
	"encoding/json"
	"errors"
)

var ErrMalformedMessage = errors.New("malformed message")

const (
	EventNavigate = "navigate"
	EventRefresh  = "refresh"
)

// ResponseChannel is the channel name a reply to event is sent on.
func ResponseChannel(event string) string {
	return event + ":response"
}

type Source struct {
	IntegrationInstanceID int64 `json:"integration_instance_id"`
}

// Message is an integration postMessage as forwarded by the host page.
// Payload is filled in by Bind.
type Message struct {
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data,omitempty"`
	Source  Source          `json:"source"`
	Payload Payload         `json:"-"`
}

type Response struct {
	ID      *int64 `json:"id"`
	Success bool   `json:"success"`
}

type ConfirmSource struct {
	IntegrationID string `json:"integration_id"`
}

type ConfirmRequest struct {
	OK     string        `json:"ok"`
	Cancel string        `json:"cancel"`
	Title  string        `json:"title"`
	Body   string        `json:"body"`
	Source ConfirmSource `json:"source"`
}

// ConfirmOverride carries the fields a message may override on the
// default confirmation dialog. Empty fields keep the default.
type ConfirmOverride struct {
	OK     string         `json:"ok,omitempty"`
	Cancel string         `json:"cancel,omitempty"`
	Title  string         `json:"title,omitempty"`
	Body   string         `json:"body,omitempty"`
	Source *ConfirmSource `json:"source,omitempty"`
}
