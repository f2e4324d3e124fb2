package filter

import (
	"encoding/json"
	"fmt"
)

// TriState is a criterion that is either not applied or applied with a value
type TriState int

const (
	Unset TriState = iota
	True
	False
)

// Of returns the applied tri-state for b
func Of(b bool) TriState {
	if b {
		return True
	}
	return False
}

// IsSet reports whether the criterion is applied
func (t TriState) IsSet() bool {
	return t != Unset
}

// Value returns the boolean value of an applied criterion; Unset reports false
func (t TriState) Value() bool {
	return t == True
}

// Matches reports whether v satisfies the criterion
func (t TriState) Matches(v bool) bool {
	if t == Unset {
		return true
	}
	return t.Value() == v
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// MarshalJSON encodes Unset as null and the applied states as booleans
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, true or false
func (t *TriState) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("tri-state: %w", err)
	}
	if v == nil {
		*t = Unset
		return nil
	}
	*t = Of(*v)
	return nil
}
