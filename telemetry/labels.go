// Package telemetry holds the record kinds the store ingests — metrics,
// logs and traces — their label model, their conjunctive queries, and the
// adapters that bind each kind to the index engine.
package telemetry

import (
	"fmt"
	"strings"

	"github.com/telemstore/telemstore/store"
)

// Label is one key/value pair attached to a record.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String renders the label as `key="value"`.
func (l Label) String() string {
	return fmt.Sprintf("%s=%q", l.Key, l.Value)
}

// Validate rejects labels carrying the key-grammar separators. A value like
// "a|b" could otherwise impersonate another record's primary key.
func (l Label) Validate() error {
	if strings.ContainsAny(l.Key, "|:") {
		return fmt.Errorf("%w: label key %q", store.ErrReservedByte, l.Key)
	}
	if strings.ContainsAny(l.Value, "|:") {
		return fmt.Errorf("%w: label value %q", store.ErrReservedByte, l.Value)
	}
	return nil
}

// Labels is an ordered sequence of labels. Append order is preserved and is
// part of a record's primary-key identity; queries match labels
// individually and order-independently.
type Labels []Label

// String renders the labels as `{k1="v1", k2="v2"}`.
func (ls Labels) String() string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// KeyForm is the canonical key-form used inside primary keys:
// `k1="v1",k2="v2"` in append order.
func (ls Labels) KeyForm() string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = fmt.Sprintf("%s=%q", l.Key, l.Value)
	}
	return strings.Join(parts, ",")
}

// Validate checks every label.
func (ls Labels) Validate() error {
	for _, l := range ls {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateName rejects record and field names carrying grammar separators.
func validateName(name string) error {
	if strings.ContainsAny(name, "|:") {
		return fmt.Errorf("%w: name %q", store.ErrReservedByte, name)
	}
	return nil
}
