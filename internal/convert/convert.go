// Package convert turns mission recordings into CZML documents.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/OCAP2/czml/internal/geo"
	"github.com/OCAP2/czml/internal/recording"
	"github.com/OCAP2/czml/pkg/czml"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ErrInvalidRecording is returned when a recording cannot be placed on a
// timeline.
var ErrInvalidRecording = errors.New("invalid recording")

// Options tunes the generated packets.
type Options struct {
	// BillboardImage is the icon URI for entity billboards. Empty omits the image.
	BillboardImage string
	// InterpolationDegree applies to sampled positions and orientations.
	InterpolationDegree int
	// FireLineDuration is how long a fired-shot line stays visible. Zero means
	// one capture interval.
	FireLineDuration time.Duration
}

// Stats counts what a conversion produced.
type Stats struct {
	Packets int
	Samples int
	Skipped int
}

// Converter builds CZML documents from recordings. It is safe for concurrent
// use.
type Converter struct {
	projector *geo.Projector
	opts      Options
	logger    *slog.Logger

	packets   metric.Int64Counter
	samples   metric.Int64Counter
	documents metric.Int64Counter
	duration  metric.Float64Histogram
}

// New creates a converter. A nil logger discards logs and a nil meter
// disables metrics.
func New(projector *geo.Projector, opts Options, logger *slog.Logger, meter metric.Meter) (*Converter, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if meter == nil {
		meter = noop.Meter{}
	}
	if opts.InterpolationDegree < 1 {
		opts.InterpolationDegree = 1
	}

	c := &Converter{projector: projector, opts: opts, logger: logger}

	var err error
	if c.packets, err = meter.Int64Counter("czml.packets",
		metric.WithDescription("Packets written to CZML documents")); err != nil {
		return nil, fmt.Errorf("failed to create packets counter: %w", err)
	}
	if c.samples, err = meter.Int64Counter("czml.samples",
		metric.WithDescription("Time-tagged position samples written")); err != nil {
		return nil, fmt.Errorf("failed to create samples counter: %w", err)
	}
	if c.documents, err = meter.Int64Counter("czml.documents",
		metric.WithDescription("CZML documents built")); err != nil {
		return nil, fmt.Errorf("failed to create documents counter: %w", err)
	}
	if c.duration, err = meter.Float64Histogram("czml.export.duration",
		metric.WithDescription("Time spent converting a recording"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	return c, nil
}

// timeline maps capture frames to seconds from the document epoch.
type timeline struct {
	epoch czml.Time
	start time.Time
	delay time.Duration
}

func (tl timeline) offset(frame int) float64 {
	return (time.Duration(frame) * tl.delay).Seconds()
}

func (tl timeline) at(frame int) time.Time {
	return tl.start.Add(time.Duration(frame) * tl.delay)
}

// interval covers frames first..last, widened to one capture when they match.
func (tl timeline) interval(first, last int) czml.TimeInterval {
	if last <= first {
		return czml.Interval(tl.at(first), tl.at(first).Add(tl.delay))
	}
	return czml.Interval(tl.at(first), tl.at(last))
}

// Convert builds the document for rec: the document packet first, then one
// packet per entity, then one per fired shot.
func (c *Converter) Convert(ctx context.Context, rec *recording.Recording) (*czml.Document, Stats, error) {
	began := time.Now()
	var stats Stats

	if rec.CaptureDelay <= 0 {
		return nil, stats, fmt.Errorf("%w: capture delay %v", ErrInvalidRecording, rec.CaptureDelay)
	}

	start := rec.StartTime()
	if start.IsZero() {
		c.logger.Warn("Recording has no start time, using zero time", "mission", rec.MissionName)
	}
	tl := timeline{epoch: czml.TimeOf(start), start: start, delay: rec.CaptureInterval()}

	doc := czml.New()
	clock := czml.DefaultClock(tl.interval(0, rec.LastFrame()))
	doc.Push(czml.NewDocumentPacket(rec.MissionName, clock))
	stats.Packets++

	entities := make([]recording.Entity, 0, len(rec.Entities))
	for _, e := range rec.Entities {
		if len(e.Positions) > 0 {
			entities = append(entities, e)
		}
	}
	sort.SliceStable(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })

	var fired []czml.Packet
	for i := range entities {
		e := &entities[i]
		states, err := e.Samples()
		if err != nil {
			c.logger.Warn("Skipping entity", "id", e.ID, "name", e.Name, "error", err)
			stats.Skipped++
			continue
		}
		doc.Push(c.entityPacket(e, states, tl))
		stats.Packets++
		stats.Samples += len(states)

		shots, err := e.FiredEvents()
		if err != nil {
			c.logger.Warn("Skipping fired events", "id", e.ID, "error", err)
			stats.Skipped++
			continue
		}
		for n, shot := range shots {
			p, err := c.firedPacket(e, n, shot, states, tl)
			if err != nil {
				c.logger.Debug("Skipping fired event", "id", e.ID, "frame", shot.Frame, "error", err)
				stats.Skipped++
				continue
			}
			fired = append(fired, p)
		}
	}
	for _, p := range fired {
		doc.Push(p)
		stats.Packets++
	}

	c.packets.Add(ctx, int64(stats.Packets))
	c.samples.Add(ctx, int64(stats.Samples))
	c.documents.Add(ctx, 1)
	c.duration.Record(ctx, time.Since(began).Seconds())

	c.logger.Info("Converted recording",
		"mission", rec.MissionName,
		"packets", stats.Packets,
		"samples", stats.Samples,
		"skipped", stats.Skipped)

	return doc, stats, nil
}

// EntityID is the packet id for a recording entity.
func EntityID(id uint16) string {
	return fmt.Sprintf("entity-%d", id)
}

func (c *Converter) interpolation(tl timeline) *czml.Interpolatable {
	return &czml.Interpolatable{
		Epoch:                     czml.Ptr(tl.epoch),
		InterpolationAlgorithm:    czml.Ptr(czml.InterpolationLinear),
		InterpolationDegree:       czml.Ptr(c.opts.InterpolationDegree),
		ForwardExtrapolationType:  czml.Ptr(czml.ExtrapolationHold),
		BackwardExtrapolationType: czml.Ptr(czml.ExtrapolationHold),
	}
}

func (c *Converter) entityPacket(e *recording.Entity, states []recording.PositionState, tl timeline) czml.Packet {
	positions := make([]czml.Sample[czml.Cartographic], 0, len(states))
	headings := make([]czml.Sample[czml.UnitQuaternion], 0, len(states))
	for _, s := range states {
		t := tl.offset(s.Frame)
		positions = append(positions, czml.At(t, c.projector.Project(s.X, s.Y, s.Z)))
		headings = append(headings, czml.At(t, geo.BearingToQuaternion(s.Bearing)))
	}

	billboard := &czml.Billboard{
		Color:          sideColor(e.Side),
		VerticalOrigin: czml.Ptr(czml.VerticalOriginCenter),
	}
	if c.opts.BillboardImage != "" {
		billboard.Image = czml.Uri(c.opts.BillboardImage)
	}

	return czml.Packet{
		ID:           EntityID(e.ID),
		Name:         czml.Ptr(e.Name),
		Description:  czml.LiteralString(describe(e)),
		Availability: []czml.TimeInterval{tl.interval(states[0].Frame, states[len(states)-1].Frame)},
		Properties: map[string]any{
			"side":     e.Side,
			"type":     e.Type,
			"class":    e.Class,
			"role":     e.Role,
			"group":    e.Group,
			"isPlayer": e.IsPlayer == 1,
		},
		Position: &czml.Position{
			Interpolatable:      c.interpolation(tl),
			CartographicDegrees: czml.Samples(positions...),
		},
		Orientation: &czml.Orientation{
			Interpolatable: c.interpolation(tl),
			UnitQuaternion: czml.Samples(headings...),
		},
		Billboard: billboard,
	}
}

var errNoShooterPosition = errors.New("no shooter position at or before frame")

func (c *Converter) firedPacket(e *recording.Entity, n int, shot recording.FiredEvent, states []recording.PositionState, tl timeline) (czml.Packet, error) {
	from, ok := stateAt(states, shot.Frame)
	if !ok {
		return czml.Packet{}, errNoShooterPosition
	}
	line, err := geo.LineFromPoints([][]float64{{from.X, from.Y}, {shot.X, shot.Y}})
	if err != nil {
		return czml.Packet{}, err
	}

	shown := tl.interval(shot.Frame, shot.Frame)
	if c.opts.FireLineDuration > 0 {
		shown = czml.Interval(tl.at(shot.Frame), tl.at(shot.Frame).Add(c.opts.FireLineDuration))
	}

	return czml.Packet{
		ID:           fmt.Sprintf("%s-fired-%d", EntityID(e.ID), n),
		Parent:       czml.Ptr(EntityID(e.ID)),
		Availability: []czml.TimeInterval{shown},
		Properties: map[string]any{
			"frame":    shot.Frame,
			"distance": geo.LineLength(line),
		},
		Polyline: &czml.Polyline{
			Positions: czml.Ptr(c.projector.ProjectLine(line, from.Z)),
			ArcType:   czml.Ptr(czml.ArcTypeNone),
			Width:     czml.Ptr(1.0),
			Material:  czml.SolidColor(sideColor(e.Side)),
		},
	}, nil
}

// stateAt returns the last state at or before frame.
func stateAt(states []recording.PositionState, frame int) (recording.PositionState, bool) {
	i := sort.Search(len(states), func(i int) bool { return states[i].Frame > frame })
	if i == 0 {
		return recording.PositionState{}, false
	}
	return states[i-1], true
}

func describe(e *recording.Entity) string {
	parts := []string{e.Side}
	if e.Type == recording.TypeVehicle {
		parts = append(parts, e.Class)
	} else {
		parts = append(parts, e.Role, e.Group)
	}
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(p)
	}
	return b.String()
}

func sideColor(side string) *czml.Color {
	switch strings.ToUpper(side) {
	case "WEST", "BLUFOR":
		return czml.SolidRgba(0, 76, 153, 255)
	case "EAST", "OPFOR":
		return czml.SolidRgba(128, 0, 0, 255)
	case "GUER", "INDEPENDENT":
		return czml.SolidRgba(0, 128, 0, 255)
	case "CIV", "CIVILIAN":
		return czml.SolidRgba(102, 0, 128, 255)
	default:
		return czml.SolidRgba(178, 153, 0, 255)
	}
}
