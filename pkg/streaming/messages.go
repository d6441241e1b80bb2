// Package streaming defines the envelopes used to stream CZML documents
// over a WebSocket.
package streaming

import "encoding/json"

// Message types.
const (
	TypeStartDocument = "start_document"
	TypePacket        = "packet"
	TypeEndDocument   = "end_document"
	TypeAck           = "ack"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartDocumentPayload names the document that the following packets belong to.
type StartDocumentPayload struct {
	Name    string `json:"name"`
	Packets int    `json:"packets"`
}

// EndDocumentPayload closes a document.
type EndDocumentPayload struct {
	Name string `json:"name"`
}

// NewEnvelope marshals payload into an envelope of the given type.
func NewEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
