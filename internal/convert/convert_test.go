package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/OCAP2/czml/internal/geo"
	"github.com/OCAP2/czml/internal/recording"
	"github.com/OCAP2/czml/pkg/czml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func loadMission(t *testing.T) *recording.Recording {
	t.Helper()
	rec, err := recording.Load(filepath.Join("..", "recording", "testdata", "mission.json"))
	require.NoError(t, err)
	return rec
}

func newConverter(t *testing.T, opts Options) *Converter {
	t.Helper()
	p, err := geo.NewProjector(0, 0, 0)
	require.NoError(t, err)
	c, err := New(p, opts, nil, nil)
	require.NoError(t, err)
	return c
}

// encode renders doc and decodes it back into generic packets.
func encode(t *testing.T, doc *czml.Document) []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	var packets []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &packets))
	return packets
}

func TestConvert_PacketOrderAndStats(t *testing.T) {
	c := newConverter(t, Options{})
	doc, stats, err := c.Convert(context.Background(), loadMission(t))
	require.NoError(t, err)

	assert.Equal(t, Stats{Packets: 4, Samples: 6, Skipped: 0}, stats)
	require.Equal(t, 4, doc.Len())

	ids := make([]string, 0, doc.Len())
	for _, p := range doc.Packets() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"document", "entity-0", "entity-1", "entity-0-fired-0"}, ids)
}

func TestConvert_DocumentPacket(t *testing.T) {
	c := newConverter(t, Options{})
	doc, _, err := c.Convert(context.Background(), loadMission(t))
	require.NoError(t, err)

	packets := encode(t, doc)
	assert.Equal(t, map[string]any{
		"id":      "document",
		"name":    "Op Thunder",
		"version": "1.0",
		"clock": map[string]any{
			"interval":    "2024-03-01T18:30:00Z/2024-03-01T18:30:03Z",
			"currentTime": "2024-03-01T18:30:00Z",
			"multiplier":  1.0,
			"range":       "LOOP_STOP",
			"step":        "SYSTEM_CLOCK_MULTIPLIER",
		},
	}, packets[0])
}

func TestConvert_EntityPacket(t *testing.T) {
	c := newConverter(t, Options{BillboardImage: "icons/man.png", InterpolationDegree: 2})
	doc, _, err := c.Convert(context.Background(), loadMission(t))
	require.NoError(t, err)

	p := encode(t, doc)[1]
	assert.Equal(t, "entity-0", p["id"])
	assert.Equal(t, "Alpha 1-1", p["name"])
	assert.Equal(t, map[string]any{"string": "WEST | Rifleman | Alpha 1"}, p["description"])
	assert.Equal(t, []any{"2024-03-01T18:30:01Z/2024-03-01T18:30:03Z"}, p["availability"])

	props := p["properties"].(map[string]any)
	assert.Equal(t, "WEST", props["side"])
	assert.Equal(t, true, props["isPlayer"])

	pos := p["position"].(map[string]any)
	assert.Equal(t, "2024-03-01T18:30:00Z", pos["epoch"])
	assert.Equal(t, "LINEAR", pos["interpolationAlgorithm"])
	assert.Equal(t, 2.0, pos["interpolationDegree"])
	assert.Equal(t, "HOLD", pos["forwardExtrapolationType"])
	assert.Equal(t, "HOLD", pos["backwardExtrapolationType"])
	assert.NotContains(t, pos, "forwardExtrapolationDuration")

	flat := pos["cartographicDegrees"].([]any)
	require.Len(t, flat, 3*4)
	assert.Equal(t, 1.0, flat[0])
	assert.Equal(t, 2.0, flat[4])
	assert.Equal(t, 3.0, flat[8])
	assert.Equal(t, 1.5, flat[3])

	quats := p["orientation"].(map[string]any)["unitQuaternion"].([]any)
	assert.Len(t, quats, 3*5)

	bb := p["billboard"].(map[string]any)
	assert.Equal(t, map[string]any{"uri": "icons/man.png"}, bb["image"])
	assert.Equal(t, "CENTER", bb["verticalOrigin"])
	assert.Equal(t, map[string]any{"rgba": []any{0.0, 76.0, 153.0, 255.0}}, bb["color"])
}

func TestConvert_VehicleWithoutImage(t *testing.T) {
	c := newConverter(t, Options{})
	doc, _, err := c.Convert(context.Background(), loadMission(t))
	require.NoError(t, err)

	p := encode(t, doc)[2]
	assert.Equal(t, "entity-1", p["id"])
	assert.Equal(t, map[string]any{"string": "UNKNOWN | car"}, p["description"])
	assert.NotContains(t, p["billboard"].(map[string]any), "image")
	assert.Len(t, p["position"].(map[string]any)["cartographicDegrees"], 3*4)
}

func TestConvert_FiredPacket(t *testing.T) {
	c := newConverter(t, Options{FireLineDuration: 5 * time.Second})
	doc, _, err := c.Convert(context.Background(), loadMission(t))
	require.NoError(t, err)

	p := encode(t, doc)[3]
	assert.Equal(t, "entity-0", p["parent"])
	assert.Equal(t, []any{"2024-03-01T18:30:02Z/2024-03-01T18:30:07Z"}, p["availability"])

	line := p["polyline"].(map[string]any)
	assert.Equal(t, "NONE", line["arcType"])
	assert.Len(t, line["positions"].(map[string]any)["cartographicDegrees"], 2*3)
	assert.Equal(t, map[string]any{"solidColor": map[string]any{
		"color": map[string]any{"rgba": []any{0.0, 76.0, 153.0, 255.0}},
	}}, line["material"])

	// shooter at (110, 200) on frame 2, target at (300, 400)
	props := p["properties"].(map[string]any)
	assert.InDelta(t, 275.86, props["distance"].(float64), 0.01)
}

func TestConvert_SkipsMalformedAndPlaceholders(t *testing.T) {
	rec := loadMission(t)
	rec.Entities = append(rec.Entities,
		recording.Entity{ID: 7, Type: recording.TypeUnit},
		recording.Entity{ID: 8, Type: recording.TypeUnit, Positions: [][]any{{"bad"}}},
		recording.Entity{ID: 9, Type: recording.TypeUnit, StartFrameNum: 3,
			Positions:   [][]any{{[]any{1.0, 1.0}, 0.0, 1.0}},
			FramesFired: [][]any{{1.0, []any{5.0, 5.0}}}},
	)

	var logs bytes.Buffer
	p, err := geo.NewProjector(0, 0, 0)
	require.NoError(t, err)
	c, err := New(p, Options{}, slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})), nil)
	require.NoError(t, err)

	doc, stats, err := c.Convert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 5, doc.Len())
	assert.Contains(t, logs.String(), "Skipping entity")
	assert.Contains(t, logs.String(), "Skipping fired event")
}

func TestConvert_InvalidCaptureDelay(t *testing.T) {
	rec := loadMission(t)
	rec.CaptureDelay = 0

	_, _, err := newConverter(t, Options{}).Convert(context.Background(), rec)
	assert.ErrorIs(t, err, ErrInvalidRecording)
}

func TestConvert_EmptyRecording(t *testing.T) {
	rec := &recording.Recording{MissionName: "empty", CaptureDelay: 1}
	doc, stats, err := newConverter(t, Options{}).Convert(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, Stats{Packets: 1}, stats)
	packets := encode(t, doc)
	clock := packets[0]["clock"].(map[string]any)
	assert.Equal(t, "0001-01-01T00:00:00Z/0001-01-01T00:00:01Z", clock["interval"])
}

func TestConvert_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	p, err := geo.NewProjector(0, 0, 0)
	require.NoError(t, err)
	c, err := New(p, Options{}, nil, mp.Meter("test"))
	require.NoError(t, err)

	_, _, err = c.Convert(context.Background(), loadMission(t))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	got := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			got[m.Name] = data.DataPoints[0].Value
		case metricdata.Histogram[float64]:
			got[m.Name] = int64(data.DataPoints[0].Count)
		}
	}
	assert.Equal(t, map[string]int64{
		"czml.packets":         4,
		"czml.samples":         6,
		"czml.documents":       1,
		"czml.export.duration": 1,
	}, got)
}

func TestStateAt(t *testing.T) {
	states := []recording.PositionState{{Frame: 2, X: 1}, {Frame: 4, X: 2}, {Frame: 6, X: 3}}

	_, ok := stateAt(states, 1)
	assert.False(t, ok)

	s, ok := stateAt(states, 4)
	require.True(t, ok)
	assert.Equal(t, 2.0, s.X)

	s, ok = stateAt(states, 5)
	require.True(t, ok)
	assert.Equal(t, 2.0, s.X)

	s, ok = stateAt(states, 100)
	require.True(t, ok)
	assert.Equal(t, 3.0, s.X)
}
