package telemetry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Trace is a labeled span with a start/end time and a sequence of events.
type Trace struct {
	Labels    Labels      `json:"labels"`
	StartTime int64       `json:"start_time"`
	EndTime   int64       `json:"end_time"`
	Events    TraceEvents `json:"events"`
}

// IncomingTrace is a trace whose start time may be absent.
type IncomingTrace struct {
	Labels    Labels      `json:"labels"`
	StartTime *int64      `json:"start_time"`
	EndTime   int64       `json:"end_time"`
	Events    TraceEvents `json:"events"`
}

// Record fills a missing start time with the current wall clock.
func (in IncomingTrace) Record() Trace {
	start := time.Now().UnixNano()
	if in.StartTime != nil {
		start = *in.StartTime
	}
	return Trace{
		Labels:    in.Labels,
		StartTime: start,
		EndTime:   in.EndTime,
		Events:    in.Events,
	}
}

// String renders the trace as `<start> <end> {labels} {events}`.
func (t Trace) String() string {
	start := time.Unix(0, t.StartTime).UTC().Format(time.RFC3339Nano)
	end := time.Unix(0, t.EndTime).UTC().Format(time.RFC3339Nano)
	return fmt.Sprintf("%s %s %s %s", start, end, t.Labels, t.Events)
}

// TraceEvents is the ordered event sequence of a trace.
type TraceEvents []TraceEvent

func (es TraceEvents) String() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TraceEvent is one point inside a trace.
type TraceEvent struct {
	Name      string         `json:"name"`
	Type      TraceEventType `json:"type"`
	Timestamp int64          `json:"timestamp"`
}

func (e TraceEvent) String() string {
	date := time.Unix(0, e.Timestamp).UTC().Format(time.RFC3339Nano)
	return fmt.Sprintf("%s %s %s", date, e.Name, e.Type)
}

// TraceEventType is the kind of a trace event.
type TraceEventType int

const (
	EventStart TraceEventType = iota
	EventEnd
	EventAnnotation
)

func (t TraceEventType) String() string {
	switch t {
	case EventStart:
		return "Start"
	case EventEnd:
		return "End"
	case EventAnnotation:
		return "Annotation"
	}
	return fmt.Sprintf("TraceEventType(%d)", int(t))
}

// MarshalJSON encodes the event type as its name.
func (t TraceEventType) MarshalJSON() ([]byte, error) {
	switch t {
	case EventStart, EventEnd, EventAnnotation:
		return json.Marshal(t.String())
	}
	return nil, fmt.Errorf("unknown trace event type %d", int(t))
}

// UnmarshalJSON decodes an event type from its name.
func (t *TraceEventType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Start":
		*t = EventStart
	case "End":
		*t = EventEnd
	case "Annotation":
		*t = EventAnnotation
	default:
		return fmt.Errorf("unknown trace event type %q", name)
	}
	return nil
}
