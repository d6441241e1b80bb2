package czml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Document is an ordered list of packets. Packets are only ever appended; the
// output keeps push order and does not merge packets sharing an id.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	packets []Packet
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Push appends p.
func (d *Document) Push(p Packet) {
	d.packets = append(d.packets, p)
}

// Len is the number of packets.
func (d *Document) Len() int {
	return len(d.packets)
}

// Packets returns a copy of the packet list.
func (d *Document) Packets() []Packet {
	out := make([]Packet, len(d.packets))
	copy(out, d.packets)
	return out
}

// MarshalJSON encodes the document as a JSON array of packets.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the document to w one packet at a time. Failures of w are
// returned wrapping ErrWrite; packets that cannot be encoded wrap ErrMarshal.
func (d *Document) Encode(w io.Writer) error {
	return d.encode(w)
}

// EncodeIndent is like Encode but indents the output.
func (d *Document) EncodeIndent(w io.Writer, indent string) error {
	var compact bytes.Buffer
	if err := d.encode(&compact); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	out.WriteByte('\n')
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (d *Document) encode(w io.Writer) error {
	if err := write(w, []byte{'['}); err != nil {
		return err
	}
	for i := range d.packets {
		data, err := json.Marshal(&d.packets[i])
		if err != nil {
			return fmt.Errorf("%w: packet %d (id %q): %w", ErrMarshal, i, d.packets[i].ID, err)
		}
		if i > 0 {
			data = append([]byte{','}, data...)
		}
		if err := write(w, data); err != nil {
			return err
		}
	}
	return write(w, []byte{']'})
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
