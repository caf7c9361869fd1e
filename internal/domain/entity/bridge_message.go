package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MessageKind is the value of a bridge message's "type" field.
type MessageKind string

const (
	// MessageKindTitle reports a document title change.
	MessageKindTitle MessageKind = "title"
	// MessageKindNavigate asks the host to follow an intercepted link.
	MessageKindNavigate MessageKind = "navigate"
	// MessageKindLoaded announces that the injected script has run.
	MessageKindLoaded MessageKind = "loaded"
	// MessageKindUnknown covers any type the host does not understand.
	MessageKindUnknown MessageKind = "unknown"
)

var (
	// ErrEmptyBatch is returned when a bridge payload carries no message.
	ErrEmptyBatch = errors.New("bridge payload is empty")
	// ErrNotArray is returned when a bridge payload is not a JSON array.
	ErrNotArray = errors.New("bridge payload is not an array")
)

// BridgeMessage is a message posted by the injected page script.
// The set of implementations is closed: TitleMessage, NavigateMessage,
// LoadedMessage and UnknownMessage.
type BridgeMessage interface {
	Kind() MessageKind
	// Wire returns the JSON-serialisable form of the message.
	Wire() WireMessage
	sealed()
}

// TitleMessage reports the current document title.
type TitleMessage struct {
	Title string
}

// NavigateMessage carries the resolved href of an intercepted link.
type NavigateMessage struct {
	URL string
}

// LoadedMessage is sent once after the injected script runs.
type LoadedMessage struct {
	Title string
	URL   string
}

// UnknownMessage is any message whose type is missing or unrecognised.
type UnknownMessage struct {
	Type string
}

func (TitleMessage) Kind() MessageKind    { return MessageKindTitle }
func (NavigateMessage) Kind() MessageKind { return MessageKindNavigate }
func (LoadedMessage) Kind() MessageKind   { return MessageKindLoaded }
func (UnknownMessage) Kind() MessageKind  { return MessageKindUnknown }

func (TitleMessage) sealed()    {}
func (NavigateMessage) sealed() {}
func (LoadedMessage) sealed()   {}
func (UnknownMessage) sealed()  {}

// Wire implements BridgeMessage.
func (m TitleMessage) Wire() WireMessage {
	return WireMessage{Type: string(MessageKindTitle), Title: m.Title}
}

// Wire implements BridgeMessage.
func (m NavigateMessage) Wire() WireMessage {
	return WireMessage{Type: string(MessageKindNavigate), URL: m.URL}
}

// Wire implements BridgeMessage.
func (m LoadedMessage) Wire() WireMessage {
	return WireMessage{Type: string(MessageKindLoaded), Title: m.Title, URL: m.URL}
}

// Wire implements BridgeMessage.
func (m UnknownMessage) Wire() WireMessage {
	return WireMessage{Type: m.Type}
}

// WireMessage is the JSON object exchanged across the page/host boundary.
type WireMessage struct {
	Type  string `json:"type" jsonschema:"enum=title,enum=navigate,enum=loaded,description=Message kind"`
	Title string `json:"title,omitempty" jsonschema:"description=Document title (title and loaded messages)"`
	URL   string `json:"url,omitempty" jsonschema:"description=Link target (navigate) or page location (loaded)"`
}

// wireFields keeps each field raw so that wrongly typed values degrade to
// "absent" instead of failing the whole message.
type wireFields struct {
	Type  json.RawMessage `json:"type"`
	Title json.RawMessage `json:"title"`
	URL   json.RawMessage `json:"url"`
}

// DecodeBatch parses a bridge payload and returns its first message along
// with the number of messages the batch carried. Only the first element is
// ever decoded.
func DecodeBatch(payload []byte) (BridgeMessage, int, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, 0, ErrEmptyBatch
	}
	if trimmed[0] != '[' {
		return nil, 0, ErrNotArray
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(trimmed, &batch); err != nil {
		return nil, 0, fmt.Errorf("decode bridge batch: %w", err)
	}
	if len(batch) == 0 {
		return nil, 0, ErrEmptyBatch
	}

	return DecodeMessage(batch[0]), len(batch), nil
}

// DecodeMessage converts one JSON value into a BridgeMessage.
// Anything that is not an object with a known string type decodes to
// UnknownMessage.
func DecodeMessage(raw json.RawMessage) BridgeMessage {
	var fields wireFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return UnknownMessage{}
	}

	msgType, _ := stringField(fields.Type)
	title, _ := stringField(fields.Title)
	url, _ := stringField(fields.URL)

	switch MessageKind(msgType) {
	case MessageKindTitle:
		return TitleMessage{Title: title}
	case MessageKindNavigate:
		return NavigateMessage{URL: url}
	case MessageKindLoaded:
		return LoadedMessage{Title: title, URL: url}
	default:
		return UnknownMessage{Type: msgType}
	}
}

// EncodeBatch serialises messages in the array form the host expects.
func EncodeBatch(msgs ...BridgeMessage) ([]byte, error) {
	wire := make([]WireMessage, 0, len(msgs))
	for _, m := range msgs {
		wire = append(wire, m.Wire())
	}
	return json.Marshal(wire)
}

func stringField(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
