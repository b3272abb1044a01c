package protocol

import "encoding/json"

// Frame types exchanged with the host page.
const (
	TypeHello              = "hello"
	TypeIntegrationMessage = "integration.message"
	TypeLocationChanged    = "location.changed"
	TypeUnloadState        = "unload.state"
	TypeDialogResult       = "dialog.result"

	TypeLocationAssign      = "location.assign"
	TypeLocationReload      = "location.reload"
	TypeDialogConfirm       = "dialog.confirm"
	TypeIntegrationResponse = "integration.response"
	TypeError               = "error"
)

type HostEnvelope struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type HelloPayload struct {
	SessionID         string `json:"session_id"`
	Href              string `json:"href"`
	UnloadInitialized bool   `json:"unload_initialized"`
	Lang              string `json:"lang,omitempty"`
}

type IntegrationMessagePayload struct {
	Message json.RawMessage `json:"message"`
}

type LocationPayload struct {
	Href string `json:"href"`
}

type UnloadStatePayload struct {
	Initialized bool `json:"initialized"`
}

type DialogConfirmPayload struct {
	RequestID string         `json:"request_id"`
	Request   ConfirmRequest `json:"request"`
}

type DialogResultPayload struct {
	RequestID string `json:"request_id"`
	Confirmed bool   `json:"confirmed"`
}

type IntegrationResponsePayload struct {
	IntegrationInstanceID int64    `json:"integration_instance_id"`
	Channel               string   `json:"channel"`
	Payload               Response `json:"payload"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
