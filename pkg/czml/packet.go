package czml

// DocumentPacketID is the id of the packet that carries document-wide settings.
const DocumentPacketID = "document"

// Version is the CZML version written by NewDocumentPacket.
const Version = "1.0"

// Packet describes one entity, or an update to one. Every field is optional
// and left out of the output when unset; an id-only packet encodes as
// {"id": "..."}.
//
// Packets sharing an id are written as separate array elements; merging them
// is the client's job.
type Packet struct {
	ID           string         `json:"id,omitempty"`
	Delete       *bool          `json:"delete,omitempty"`
	Name         *string        `json:"name,omitempty"`
	Parent       *string        `json:"parent,omitempty"`
	Description  *StringValue   `json:"description,omitempty"`
	Clock        *Clock         `json:"clock,omitempty"`
	Version      *string        `json:"version,omitempty"`
	Availability []TimeInterval `json:"availability,omitempty"`
	Properties   map[string]any `json:"properties,omitempty"`
	Position     *Position      `json:"position,omitempty"`
	Orientation  *Orientation   `json:"orientation,omitempty"`
	ViewFrom     *ViewFrom      `json:"viewFrom,omitempty"`
	Billboard    *Billboard     `json:"billboard,omitempty"`
	Polyline     *Polyline      `json:"polyline,omitempty"`
}

// NewDocumentPacket returns the conventional first packet of a document.
func NewDocumentPacket(name string, clock *Clock) Packet {
	return Packet{
		ID:      DocumentPacketID,
		Name:    &name,
		Version: Ptr(Version),
		Clock:   clock,
	}
}
