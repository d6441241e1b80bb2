// Package websocket streams CZML documents packet by packet to a WebSocket
// server.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/OCAP2/czml/pkg/czml"
	"github.com/OCAP2/czml/pkg/streaming"
)

var errClosed = errors.New("websocket backend closed")

// Config holds WebSocket backend configuration.
type Config struct {
	URL    string
	Secret string
}

// Backend streams documents over a WebSocket. It implements storage.Backend
// but not storage.Reader.
type Backend struct {
	conn *connection
	cfg  Config

	// one document in flight at a time
	saveMu sync.Mutex
}

// New creates a WebSocket backend. A nil logger uses slog.Default.
func New(cfg Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		conn: newConnection(logger),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.dial(b.cfg.URL, b.cfg.Secret)
}

// Close disconnects from the WebSocket server.
func (b *Backend) Close() error {
	return b.conn.close()
}

// Save sends start_document and waits for its ack, streams one packet
// message per packet, then sends end_document and waits for its ack.
// Packets are marshaled before anything is sent so an invalid document
// never opens a stream.
func (b *Backend) Save(ctx context.Context, name string, doc *czml.Document) (string, error) {
	packets := doc.Packets()
	encoded := make([][]byte, len(packets))
	for i := range packets {
		data, err := json.Marshal(&packets[i])
		if err != nil {
			return "", fmt.Errorf("%w: packet %d (id %q): %w", czml.ErrMarshal, i, packets[i].ID, err)
		}
		encoded[i], err = json.Marshal(streaming.Envelope{Type: streaming.TypePacket, Payload: data})
		if err != nil {
			return "", fmt.Errorf("marshal packet envelope: %w", err)
		}
	}

	start, err := streaming.NewEnvelope(streaming.TypeStartDocument,
		streaming.StartDocumentPayload{Name: name, Packets: len(packets)})
	if err != nil {
		return "", fmt.Errorf("marshal start_document: %w", err)
	}
	end, err := streaming.NewEnvelope(streaming.TypeEndDocument, streaming.EndDocumentPayload{Name: name})
	if err != nil {
		return "", fmt.Errorf("marshal end_document: %w", err)
	}

	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	b.conn.mu.Lock()
	b.conn.openDocument = start
	b.conn.mu.Unlock()
	defer func() {
		b.conn.mu.Lock()
		b.conn.openDocument = nil
		b.conn.mu.Unlock()
	}()

	if err := b.conn.sendAndWait(ctx, start, streaming.TypeStartDocument, ackTimeout); err != nil {
		return "", err
	}
	for _, data := range encoded {
		if err := b.conn.send(ctx, data); err != nil {
			return "", err
		}
	}
	if err := b.conn.sendAndWait(ctx, end, streaming.TypeEndDocument, ackTimeout); err != nil {
		return "", err
	}
	return b.cfg.URL, nil
}
