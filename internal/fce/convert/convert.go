// Package convert holds the total, pure functions that translate a
// field's in-memory representation across a tier boundary. Absence of a
// converter for a (field, tier) pair means identity conversion: the
// schema package substitutes its own type-erased identity converter
// when a field descriptor leaves its Shared or Store converter nil.
package convert

import (
	"fmt"
	"time"
)

// Pair is a pure, deterministic, side-effect-free round trip between an
// in-memory value of type T and a tier's wire representation W. The
// schema package wraps a Pair in a type-erased Converter before a field
// descriptor holds it.
type Pair[T any, W any] struct {
	ToWire		func(T) (W, error)
	FromWire	func(W) (T, error)
}

// Identity returns the no-op converter: wire and in-memory forms coincide.
func Identity[T any]() Pair[T, T] {
	return Pair[T, T]{
		ToWire:		func(v T) (T, error) { return v, nil },
		FromWire:	func(v T) (T, error) { return v, nil },
	}
}

// TimeISO8601 converts a time.Time to and from its RFC3339 (ISO-8601)
// string form, the shared-cache wire encoding used for
// date fields. Millisecond resolution round-trips exactly.
func TimeISO8601() Pair[time.Time, string] {
	return Pair[time.Time, string]{
		ToWire: func(t time.Time) (string, error) {
			return t.UTC().Format(time.RFC3339Nano), nil
		},
		FromWire: func(s string) (time.Time, error) {
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return time.Time{}, fmt.Errorf("convert: parse ISO-8601 %q: %w", s, err)
			}
			return t.UTC(), nil
		},
	}
}

// BoolFlag converts a bool to and from the "1"/"0" wire form the shared
// cache stores booleans as.
func BoolFlag() Pair[bool, string] {
	return Pair[bool, string]{
		ToWire: func(b bool) (string, error) {
			if b {
				return "1", nil
			}
			return "0", nil
		},
		FromWire: func(s string) (bool, error) {
			switch s {
			case "1":
				return true, nil
			case "0":
				return false, nil
			default:
				return false, fmt.Errorf("convert: invalid bool wire value %q", s)
			}
		},
	}
}

// IntDecimal converts an int to and from its base-10 string form.
func IntDecimal() Pair[int, string] {
	return Pair[int, string]{
		ToWire: func(i int) (string, error) {
			return fmt.Sprintf("%d", i), nil
		},
		FromWire: func(s string) (int, error) {
			var i int
			if _, err := fmt.Sscanf(s, "%d", &i); err != nil {
				return 0, fmt.Errorf("convert: parse int %q: %w", s, err)
			}
			return i, nil
		},
	}
}
