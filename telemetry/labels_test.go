package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telemstore/telemstore/store"
)

func TestLabels_KeyForm(t *testing.T) {
	labels := Labels{
		{Key: "host", Value: "localhost"},
		{Key: "region", Value: "eu-west"},
	}
	assert.Equal(t, `host="localhost",region="eu-west"`, labels.KeyForm())
}

// Append order is part of primary-key identity.
func TestLabels_KeyFormPreservesOrder(t *testing.T) {
	a := Labels{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	b := Labels{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}
	assert.NotEqual(t, a.KeyForm(), b.KeyForm())
}

func TestLabels_String(t *testing.T) {
	labels := Labels{{Key: "severity", Value: "info"}}
	assert.Equal(t, `{severity="info"}`, labels.String())
}

func TestLabel_Validate(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		ok    bool
	}{
		{"clean", Label{Key: "host", Value: "localhost"}, true},
		{"pipe in value", Label{Key: "host", Value: "a|b"}, false},
		{"colon in value", Label{Key: "host", Value: "a:b"}, false},
		{"pipe in key", Label{Key: "ho|st", Value: "a"}, false},
		{"colon in key", Label{Key: "ho:st", Value: "a"}, false},
		{"unicode ok", Label{Key: "región", Value: "münchen"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.label.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, store.ErrReservedByte)
			}
		})
	}
}
