package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// OverrideState distinguishes a field that was never set from one that was
// explicitly reset back to the global default.
type OverrideState uint8

const (
	OverrideUnset OverrideState = iota
	OverrideSet
	OverrideReset
)

func (s OverrideState) String() string {
	switch s {
	case OverrideSet:
		return "set"
	case OverrideReset:
		return "reset"
	default:
		return "unset"
	}
}

// Override is one optional customer-level value. On the wire an absent key is
// Unset, JSON null is Reset and anything else is Set.
type Override[T any] struct {
	state OverrideState
	value T
}

// Set returns an override carrying v.
func Set[T any](v T) Override[T] {
	return Override[T]{state: OverrideSet, value: v}
}

// Reset returns an override that explicitly defers to the global default.
func Reset[T any]() Override[T] {
	return Override[T]{state: OverrideReset}
}

func (o Override[T]) State() OverrideState { return o.state }
func (o Override[T]) IsSet() bool { return o.state == OverrideSet }
func (o Override[T]) IsReset() bool { return o.state == OverrideReset }

// IsZero lets encoding/json omit unset fields through the omitzero option.
func (o Override[T]) IsZero() bool { return o.state == OverrideUnset }

// Get returns the stored value and whether one is present.
func (o Override[T]) Get() (T, bool) {
	if o.state != OverrideSet {
		var zero T
		return zero, false
	}
	return o.value, true
}

func (o Override[T]) MarshalJSON() ([]byte, error) {
	if o.state != OverrideSet {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON never fails: a value that does not decode into T is dropped
// and the field reads as Unset, so one bad key cannot poison the whole map.
func (o *Override[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*o = Reset[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		// ids written by form posts arrive quoted
		if u, ok := any(&v).(*uint); ok && len(trimmed) > 0 && trimmed[0] == '"' {
			var text string
			if json.Unmarshal(trimmed, &text) == nil {
				if n, perr := strconv.ParseUint(strings.TrimSpace(text), 10, 0); perr == nil {
					*u = uint(n)
					*o = Set(v)
					return nil
				}
			}
		}
		// numeric dimensions stored without quotes
		if s, ok := any(&v).(*string); ok && len(trimmed) > 0 && trimmed[0] != '"' && trimmed[0] != '{' && trimmed[0] != '[' {
			*s = string(trimmed)
			*o = Set(v)
			return nil
		}
		*o = Override[T]{}
		return nil
	}
	*o = Set(v)
	return nil
}
