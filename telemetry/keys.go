package telemetry

import (
	"fmt"

	"github.com/telemstore/telemstore/store"
)

// Secondary families. Logs and traces use a subset of the metric families;
// only the indexed dimensions differ.
const (
	FamilyName      = "name"
	FamilyTimestamp = store.TimestampFamily
	FamilyLabels    = "labels"
)

// padTimestamp zero-pads a nanosecond timestamp to 20 characters so
// decimal lexical order equals numeric order over non-negative int64.
func padTimestamp(ts int64) string {
	return fmt.Sprintf("%0*d", store.TimestampFieldWidth, ts)
}

func namePostingKey(name, primary string) string {
	return namePrefix(name) + primary
}

func namePrefix(name string) string {
	return fmt.Sprintf("name|%s|", name)
}

func timestampPostingKey(ts int64, primary string) string {
	return fmt.Sprintf("timestamp|%s|%s", padTimestamp(ts), primary)
}

func labelPostingKey(l Label, primary string) string {
	return labelPrefix(l) + primary
}

func labelPrefix(l Label) string {
	return fmt.Sprintf("label|%s:%s|", l.Key, l.Value)
}
