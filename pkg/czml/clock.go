package czml

// Clock sets the client's time range, playback speed and looping behaviour.
// It belongs on the document packet.
type Clock struct {
	Interval    *TimeInterval `json:"interval,omitempty"`
	CurrentTime *Time         `json:"currentTime,omitempty"`
	Multiplier  *float64      `json:"multiplier,omitempty"`
	Range       *ClockRange   `json:"range,omitempty"`
	Step        *ClockStep    `json:"step,omitempty"`
}

// DefaultClock returns a clock over interval with every documented default
// written out: current time at the start, multiplier 1, LOOP_STOP and
// SYSTEM_CLOCK_MULTIPLIER.
func DefaultClock(interval TimeInterval) *Clock {
	return &Clock{
		Interval:    &interval,
		CurrentTime: Ptr(interval.Start),
		Multiplier:  Ptr(1.0),
		Range:       Ptr(ClockRangeLoopStop),
		Step:        Ptr(ClockStepSystemClockMultiplier),
	}
}
