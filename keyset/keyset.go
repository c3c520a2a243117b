// Package keyset provides the primary-key sets exchanged between the
// storage backends and the query executor, plus the conjunctive
// intersection used to combine per-index candidate sets.
package keyset

import "sort"

// Set is an unordered set of primary keys.
type Set map[string]struct{}

// New returns a Set containing the given keys.
func New(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts a key into the set.
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether the key is in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the keys in lexical order. Used by callers that need a
// deterministic iteration order, primarily tests and multi-get fan-out.
func (s Set) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Accumulator combines candidate sets conjunctively. It semantically starts
// as the universe of primary keys but never materializes it: the first
// candidate set is adopted wholesale, every later one intersects. The
// explicit initialized flag keeps "first predicate matched nothing" distinct
// from "no predicate applied yet".
type Accumulator struct {
	init bool
	set  Set
}

// Intersect folds a candidate set into the accumulator.
func (a *Accumulator) Intersect(candidates Set) {
	if !a.init {
		a.init = true
		a.set = candidates
		if a.set == nil {
			a.set = Set{}
		}
		return
	}
	for k := range a.set {
		if !candidates.Has(k) {
			delete(a.set, k)
		}
	}
}

// Initialized reports whether any candidate set has been folded in.
func (a *Accumulator) Initialized() bool {
	return a.init
}

// Result returns the surviving keys. An accumulator that never saw a
// candidate set yields the empty set.
func (a *Accumulator) Result() Set {
	if a.set == nil {
		return Set{}
	}
	return a.set
}
