// Package optional provides a field wrapper for PATCH payloads that tells an
// absent JSON key apart from an explicit null and from a concrete value.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds an optionally present, optionally null T.
//
//	{}             -> Set=false
//	{"f": null}    -> Set=true, Null=true
//	{"f": "x"}     -> Set=true, Null=false, V="x"
type Value[T any] struct {
	V    T
	Set  bool
	Null bool
}

// Of returns a set, non-null Value.
func Of[T any](v T) Value[T] {
	return Value[T]{V: v, Set: true}
}

// Null returns a set Value carrying an explicit null.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Present reports whether the field carries a concrete value.
func (v Value[T]) Present() bool { return v.Set && !v.Null }

// Get returns the value and whether it is present.
func (v Value[T]) Get() (T, bool) { return v.V, v.Present() }

// Ptr returns nil for null, a pointer to the value otherwise. Callers must
// check Set first.
func (v Value[T]) Ptr() *T {
	if v.Null {
		return nil
	}
	out := v.V
	return &out
}

func (v *Value[T]) UnmarshalJSON(b []byte) error {
	v.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		v.Null = true
		var zero T
		v.V = zero
		return nil
	}
	v.Null = false
	return json.Unmarshal(b, &v.V)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// Validatable exposes the value to validator custom type funcs: nil unless
// present, so "omitempty" rules skip absent and null fields.
func (v Value[T]) Validatable() any {
	if !v.Present() {
		return nil
	}
	return v.V
}
