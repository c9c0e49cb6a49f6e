package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"card-manager/core/event"
)

// Subscribe is the frame sent after connecting.
type Subscribe struct {
	Action  string   `json:"action"`
	Symbols []string `json:"symbols"`
}

// Decode parses one frame into events. A frame holds a single event object or an
// array of them. Events without a reason are realtime pushes.
func Decode(data []byte) ([]event.Event, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var events []event.Event
	if data[0] == '[' {
		if err := dec.Decode(&events); err != nil {
			return nil, fmt.Errorf("failed to decode frame: %w", err)
		}
	} else {
		var ev event.Event
		if err := dec.Decode(&ev); err != nil {
			return nil, fmt.Errorf("failed to decode frame: %w", err)
		}
		events = []event.Event{ev}
	}

	for i := range events {
		if events[i].Reason == "" {
			events[i].Reason = event.ReasonRealtime
		}
	}
	return events, nil
}
