// Package recording reads OCAP mission recordings, the JSON documents the
// ocap2-web frontend replays.
package recording

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRow is returned when a positions or framesFired row does not
// have the expected shape.
var ErrMalformedRow = errors.New("malformed recording row")

// Entity types.
const (
	TypeUnit    = "unit"
	TypeVehicle = "vehicle"
)

// Recording is the root of a mission recording.
// Note: Markers uses capital M as written by the recorder.
type Recording struct {
	AddonVersion     string   `json:"addonVersion"`
	ExtensionVersion string   `json:"extensionVersion"`
	ExtensionBuild   string   `json:"extensionBuild"`
	MissionName      string   `json:"missionName"`
	MissionAuthor    string   `json:"missionAuthor"`
	WorldName        string   `json:"worldName"`
	EndFrame         int      `json:"endFrame"`
	CaptureDelay     float32  `json:"captureDelay"`
	Tags             string   `json:"tags"`
	Times            []Time   `json:"times"`
	Entities         []Entity `json:"entities"`
	Events           [][]any  `json:"events"`
	Markers          [][]any  `json:"Markers"`
}

// Time relates a capture frame to wall-clock and in-game time.
type Time struct {
	Date           string  `json:"date"`
	FrameNum       int     `json:"frameNum"`
	SystemTimeUTC  string  `json:"systemTimeUTC"`
	Time           float32 `json:"time"`
	TimeMultiplier float32 `json:"timeMultiplier"`
}

// Entity is a soldier or vehicle.
type Entity struct {
	ID            uint16  `json:"id"`
	Name          string  `json:"name"`
	Group         string  `json:"group,omitempty"`
	Side          string  `json:"side"`
	IsPlayer      int     `json:"isPlayer"`
	Type          string  `json:"type"`
	Role          string  `json:"role,omitempty"`
	Class         string  `json:"class,omitempty"`
	StartFrameNum int     `json:"startFrameNum"`
	Positions     [][]any `json:"positions"`
	FramesFired   [][]any `json:"framesFired"`
}

// PositionState is one decoded positions row.
type PositionState struct {
	Frame   int
	X, Y, Z float64
	Bearing float64
	Alive   bool
}

// FiredEvent is a shot fired by an entity toward a target position.
type FiredEvent struct {
	Frame   int
	X, Y, Z float64
}

// CaptureInterval is the wall-clock length of one frame.
func (r *Recording) CaptureInterval() time.Duration {
	return time.Duration(float64(r.CaptureDelay) * float64(time.Second))
}

// LastFrame is EndFrame, or the highest frame any entity reports when the
// header omits it.
func (r *Recording) LastFrame() int {
	last := r.EndFrame
	for i := range r.Entities {
		states, err := r.Entities[i].Samples()
		if err != nil || len(states) == 0 {
			continue
		}
		if f := states[len(states)-1].Frame; f > last {
			last = f
		}
	}
	return last
}

var systemTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// StartTime is the wall-clock time of the first recorded frame, or the zero
// time when the recording carries none.
func (r *Recording) StartTime() time.Time {
	if len(r.Times) == 0 {
		return time.Time{}
	}
	raw := r.Times[0].SystemTimeUTC
	for _, layout := range systemTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Samples decodes the positions rows. Soldier rows are one per frame from
// StartFrameNum; vehicle rows carry an explicit [start, end] frame range and
// yield a state for each end of it.
func (e *Entity) Samples() ([]PositionState, error) {
	out := make([]PositionState, 0, len(e.Positions))
	frame := e.StartFrameNum
	for i, row := range e.Positions {
		if len(row) < 3 {
			return nil, fmt.Errorf("entity %d position %d: %w", e.ID, i, ErrMalformedRow)
		}
		x, y, z, ok := point(row[0])
		if !ok {
			return nil, fmt.Errorf("entity %d position %d: %w", e.ID, i, ErrMalformedRow)
		}
		bearing, _ := number(row[1])
		state, _ := number(row[2])
		s := PositionState{Frame: frame, X: x, Y: y, Z: z, Bearing: bearing, Alive: state != 0}

		if e.Type == TypeVehicle && len(row) >= 5 {
			if start, end, ok := frameRange(row[4]); ok {
				s.Frame = start
				out = append(out, s)
				if end > start {
					s.Frame = end
					out = append(out, s)
				}
				frame = end + 1
				continue
			}
		}
		out = append(out, s)
		frame++
	}
	return out, nil
}

// FiredEvents decodes framesFired rows of the form [frame, [x, y, z]].
func (e *Entity) FiredEvents() ([]FiredEvent, error) {
	out := make([]FiredEvent, 0, len(e.FramesFired))
	for i, row := range e.FramesFired {
		if len(row) < 2 {
			return nil, fmt.Errorf("entity %d fired %d: %w", e.ID, i, ErrMalformedRow)
		}
		f, ok := number(row[0])
		if !ok {
			return nil, fmt.Errorf("entity %d fired %d: %w", e.ID, i, ErrMalformedRow)
		}
		x, y, z, ok := point(row[1])
		if !ok {
			return nil, fmt.Errorf("entity %d fired %d: %w", e.ID, i, ErrMalformedRow)
		}
		out = append(out, FiredEvent{Frame: int(f), X: x, Y: y, Z: z})
	}
	return out, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func point(v any) (x, y, z float64, ok bool) {
	arr, isArr := v.([]any)
	if !isArr || len(arr) < 2 {
		return 0, 0, 0, false
	}
	if x, ok = number(arr[0]); !ok {
		return 0, 0, 0, false
	}
	if y, ok = number(arr[1]); !ok {
		return 0, 0, 0, false
	}
	if len(arr) > 2 {
		z, _ = number(arr[2])
	}
	return x, y, z, true
}

func frameRange(v any) (start, end int, ok bool) {
	arr, isArr := v.([]any)
	if !isArr || len(arr) < 2 {
		return 0, 0, false
	}
	s, ok1 := number(arr[0])
	e, ok2 := number(arr[1])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return int(s), int(e), true
}
