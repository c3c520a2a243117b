package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A missing timestamp is backfilled with the current wall clock.
func TestIncomingMetric_TimestampBackfill(t *testing.T) {
	before := time.Now().UnixNano()
	m := IncomingMetric{Name: "cpu", Value: 0.5}.Record()
	after := time.Now().UnixNano()

	assert.GreaterOrEqual(t, m.Timestamp, before)
	assert.LessOrEqual(t, m.Timestamp, after)
}

func TestIncomingMetric_TimestampKept(t *testing.T) {
	ts := int64(1_000_000_000)
	m := IncomingMetric{Name: "cpu", Timestamp: &ts, Value: 0.5}.Record()
	assert.Equal(t, ts, m.Timestamp)
}

func TestIncomingLog_TimestampBackfill(t *testing.T) {
	before := time.Now().UnixNano()
	l := IncomingLog{Message: "hello"}.Record()
	after := time.Now().UnixNano()

	assert.GreaterOrEqual(t, l.Timestamp, before)
	assert.LessOrEqual(t, l.Timestamp, after)
}

func TestIncomingTrace_StartTimeBackfill(t *testing.T) {
	before := time.Now().UnixNano()
	tr := IncomingTrace{EndTime: 42}.Record()
	after := time.Now().UnixNano()

	assert.GreaterOrEqual(t, tr.StartTime, before)
	assert.LessOrEqual(t, tr.StartTime, after)
	assert.Equal(t, int64(42), tr.EndTime)
}

func TestMetric_String(t *testing.T) {
	m := Metric{
		Timestamp: 0,
		Name:      "cpu_usage",
		Labels:    Labels{{Key: "host", Value: "localhost"}},
		Value:     0.5,
	}
	assert.Equal(t, `1970-01-01T00:00:00Z cpu_usage{host="localhost"} 0.5`, m.String())
}

func TestTraceEventType_JSON(t *testing.T) {
	event := TraceEvent{Name: "handler", Type: EventAnnotation, Timestamp: 7}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"handler","type":"Annotation","timestamp":7}`, string(data))

	var decoded TraceEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event, decoded)
}

func TestTraceEventType_JSONUnknown(t *testing.T) {
	var e TraceEvent
	err := json.Unmarshal([]byte(`{"name":"x","type":"Bogus","timestamp":1}`), &e)
	assert.Error(t, err)
}

func TestIncomingMetric_JSONNullTimestamp(t *testing.T) {
	var in IncomingMetric
	require.NoError(t, json.Unmarshal([]byte(`{"name":"cpu","labels":[],"value":1}`), &in))
	assert.Nil(t, in.Timestamp)
}
