package recording

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PlainJSON(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "mission.json"))
	require.NoError(t, err)

	assert.Equal(t, "Op Thunder", rec.MissionName)
	assert.Equal(t, "altis", rec.WorldName)
	assert.Equal(t, 3, rec.EndFrame)
	assert.Equal(t, time.Second, rec.CaptureInterval())
	require.Len(t, rec.Entities, 2)
	assert.Equal(t, TypeUnit, rec.Entities[0].Type)
	assert.Equal(t, TypeVehicle, rec.Entities[1].Type)
}

func TestLoad_GzipDetectedByContent(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "mission.json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	// extension deliberately says plain json
	path := filepath.Join(t.TempDir(), "mission.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	rec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Op Thunder", rec.MissionName)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Decode(bytes.NewReader([]byte("{not json")))
	assert.Error(t, err)

	_, err = Decode(bytes.NewReader(nil))
	assert.Error(t, err)

	_, err = Decode(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	assert.Error(t, err)
}

func TestEntity_Samples_Soldier(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "mission.json"))
	require.NoError(t, err)

	states, err := rec.Entities[0].Samples()
	require.NoError(t, err)
	require.Len(t, states, 3)

	assert.Equal(t, PositionState{Frame: 1, X: 100, Y: 200, Z: 1.5, Bearing: 90, Alive: true}, states[0])
	assert.Equal(t, 2, states[1].Frame)
	assert.Equal(t, 3, states[2].Frame)
	assert.False(t, states[2].Alive)
}

func TestEntity_Samples_VehicleFrameRanges(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "mission.json"))
	require.NoError(t, err)

	states, err := rec.Entities[1].Samples()
	require.NoError(t, err)
	require.Len(t, states, 3)

	assert.Equal(t, 0, states[0].Frame)
	assert.Equal(t, 1, states[1].Frame)
	assert.Equal(t, states[0].X, states[1].X)
	assert.Equal(t, 2, states[2].Frame)
	assert.Equal(t, 520.0, states[2].X)
	assert.Equal(t, 185.0, states[2].Bearing)
}

func TestEntity_Samples_TwoDimensionalPoint(t *testing.T) {
	e := Entity{Type: TypeUnit, StartFrameNum: 4, Positions: [][]any{{[]any{1.0, 2.0}, 0.0, 1.0}}}
	states, err := e.Samples()
	require.NoError(t, err)
	assert.Equal(t, []PositionState{{Frame: 4, X: 1, Y: 2, Alive: true}}, states)
}

func TestEntity_Samples_Malformed(t *testing.T) {
	tests := map[string][]any{
		"short row":       {[]any{1.0, 2.0}},
		"point not list":  {"x", 0.0, 1.0},
		"point too short": {[]any{1.0}, 0.0, 1.0},
	}
	for name, row := range tests {
		t.Run(name, func(t *testing.T) {
			e := Entity{Positions: [][]any{row}}
			_, err := e.Samples()
			assert.ErrorIs(t, err, ErrMalformedRow)
		})
	}
}

func TestEntity_FiredEvents(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "mission.json"))
	require.NoError(t, err)

	fired, err := rec.Entities[0].FiredEvents()
	require.NoError(t, err)
	assert.Equal(t, []FiredEvent{{Frame: 2, X: 300, Y: 400, Z: 2}}, fired)

	bad := Entity{FramesFired: [][]any{{"two", []any{1.0, 2.0}}}}
	_, err = bad.FiredEvents()
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestRecording_StartTime(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-01T18:30:00", time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)},
		{"2024-03-01T18:30:00.250Z", time.Date(2024, 3, 1, 18, 30, 0, 250e6, time.UTC)},
		{"2024-03-01 18:30:00.5", time.Date(2024, 3, 1, 18, 30, 0, 500e6, time.UTC)},
		{"garbage", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rec := Recording{Times: []Time{{SystemTimeUTC: tt.raw}}}
			assert.True(t, tt.want.Equal(rec.StartTime()), "got %v", rec.StartTime())
		})
	}

	assert.True(t, (&Recording{}).StartTime().IsZero())
}

func TestRecording_LastFrame(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "mission.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, rec.LastFrame())

	rec.EndFrame = 0
	assert.Equal(t, 3, rec.LastFrame())
}
