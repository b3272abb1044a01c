package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload is the decoded, event specific part of a Message.
type Payload interface {
	Event() string
}

type NavigatePayload struct {
	Target  string
	Params  map[string]string
	EventID *int64
	Confirm *ConfirmOverride
}

func (NavigatePayload) Event() string { return EventNavigate }

type RefreshPayload struct{}

func (RefreshPayload) Event() string { return EventRefresh }

type navigateWire struct {
	Target  string                     `json:"target"`
	Params  map[string]json.RawMessage `json:"params"`
	EventID *int64                     `json:"eventId"`
	Confirm *ConfirmOverride           `json:"confirm"`
}

var decoders = map[string]func(json.RawMessage) (Payload, error){
	EventNavigate: decodeNavigate,
	EventRefresh:  func(json.RawMessage) (Payload, error) { return RefreshPayload{}, nil },
}

// Decode turns data into the payload schema registered for event. Events
// without a schema decode to a nil payload.
func Decode(event string, data json.RawMessage) (Payload, error) {
	dec, ok := decoders[event]
	if !ok {
		return nil, nil
	}
	return dec(data)
}

// Bind returns msg with its Payload decoded.
func Bind(msg Message) (Message, error) {
	if msg.Payload != nil {
		return msg, nil
	}
	p, err := Decode(msg.Event, msg.Data)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = p
	return msg, nil
}

// ParseMessage decodes a raw integration message envelope.
func ParseMessage(raw []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if msg.Event == "" {
		return Message{}, fmt.Errorf("%w: missing event", ErrMalformedMessage)
	}
	return msg, nil
}

// NavigateFrom returns the navigate payload of msg, decoding Data if the
// message has not been bound yet.
func NavigateFrom(msg Message) (NavigatePayload, error) {
	if p, ok := msg.Payload.(NavigatePayload); ok {
		return p, nil
	}
	p, err := decodeNavigate(msg.Data)
	if err != nil {
		return NavigatePayload{}, err
	}
	return p.(NavigatePayload), nil
}

func decodeNavigate(data json.RawMessage) (Payload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: navigate without data", ErrMalformedMessage)
	}
	var w navigateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: navigate: %v", ErrMalformedMessage, err)
	}
	if w.Target == "" {
		return nil, fmt.Errorf("%w: navigate without target", ErrMalformedMessage)
	}

	params := make(map[string]string, len(w.Params))
	for k, raw := range w.Params {
		v, present, err := scalar(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: param %q: %v", ErrMalformedMessage, k, err)
		}
		if present {
			params[k] = v
		}
	}

	return NavigatePayload{
		Target:  w.Target,
		Params:  params,
		EventID: w.EventID,
		Confirm: w.Confirm,
	}, nil
}

// scalar renders a JSON scalar the way it appears in a URL. Numbers keep
// their literal text; null reports not present.
func scalar(raw json.RawMessage) (string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false, err
	}
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case json.Number:
		return t.String(), true, nil
	case bool:
		return strconv.FormatBool(t), true, nil
	default:
		return "", false, fmt.Errorf("unsupported value type %T", v)
	}
}
