package main

import (
	"time"

	"github.com/OCAP2/czml/pkg/czml"
)

// sampleDocument is a single packet carrying a fully specified clock.
func sampleDocument() *czml.Document {
	start := czml.Date(2014, time.July, 8, 9, 10, 11)
	stop := czml.Date(2015, time.June, 7, 3, 8, 4)

	doc := czml.New()
	doc.Push(czml.Packet{
		ID:   "1",
		Name: czml.Ptr("test"),
		Clock: &czml.Clock{
			Interval:    &czml.TimeInterval{Start: start, Stop: stop},
			CurrentTime: czml.Ptr(start),
			Multiplier:  czml.Ptr(1.0),
			Range:       czml.Ptr(czml.ClockRangeUnbounded),
			Step:        czml.Ptr(czml.ClockStepSystemClockMultiplier),
		},
	})
	return doc
}
