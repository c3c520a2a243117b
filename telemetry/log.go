package telemetry

import (
	"fmt"
	"time"
)

// Log is a labeled message at a nanosecond timestamp.
type Log struct {
	Timestamp int64  `json:"timestamp"`
	Labels    Labels `json:"labels"`
	Message   string `json:"message"`
}

// IncomingLog is a log whose timestamp may be absent.
type IncomingLog struct {
	Timestamp *int64 `json:"timestamp"`
	Labels    Labels `json:"labels"`
	Message   string `json:"message"`
}

// Record fills a missing timestamp with the current wall clock.
func (in IncomingLog) Record() Log {
	ts := time.Now().UnixNano()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	return Log{
		Timestamp: ts,
		Labels:    in.Labels,
		Message:   in.Message,
	}
}

// String renders the log as `<rfc3339> {labels} <message>`.
func (l Log) String() string {
	date := time.Unix(0, l.Timestamp).UTC().Format(time.RFC3339Nano)
	return fmt.Sprintf("%s %s %s", date, l.Labels, l.Message)
}
