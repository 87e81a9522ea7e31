package domain

import (
	"strings"
	"time"
)

// Record is a schema-complete set of named numeric values for a topic.
// Scalar fields are float64, compound fields are map[string]float64.
// Nested levels are Record values.
type Record map[string]any

// PartialRecord maps dotted field paths to scalar values produced by
// extraction before fallback completion.
type PartialRecord map[string]float64

// TopicRecord is a completed record together with the time it was produced.
// It is replaced wholesale on every refresh, never mutated in place.
type TopicRecord struct {
	Topic      string
	Record     Record
	ProducedAt time.Time
}

// Float returns the scalar value at a dotted field path.
func (r Record) Float(path string) (float64, bool) {
	value, ok := r.lookup(path)
	if !ok {
		return 0, false
	}
	scalar, ok := value.(float64)
	return scalar, ok
}

// Compound returns the compound value at a dotted field path.
func (r Record) Compound(path string) (map[string]float64, bool) {
	value, ok := r.lookup(path)
	if !ok {
		return nil, false
	}
	compound, ok := value.(map[string]float64)
	return compound, ok
}

// Section returns all compound children under a dotted field path, keyed by
// child name. Used for groups like state rankings where each child is a
// compound field.
func (r Record) Section(path string) (map[string]map[string]float64, bool) {
	value, ok := r.lookup(path)
	if !ok {
		return nil, false
	}
	nested, ok := value.(Record)
	if !ok {
		return nil, false
	}

	section := make(map[string]map[string]float64, len(nested))
	for name, child := range nested {
		compound, ok := child.(map[string]float64)
		if !ok {
			return nil, false
		}
		section[name] = compound
	}
	return section, true
}

func (r Record) lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")

	current := r
	for i, part := range parts {
		value, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return value, true
		}
		current, ok = value.(Record)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func (r Record) setPath(path string, value any) {
	parts := strings.Split(path, ".")

	current := r
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(Record)
		if !ok {
			next = Record{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
