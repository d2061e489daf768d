package entity

import "github.com/oksasatya/todo-api/pkg/optional"

// setValue copies a present value into cols. Nulls on non-nullable columns
// are rejected by the application layer before they get here.
func setValue[T any](cols map[string]any, col string, v optional.Value[T]) {
	if val, ok := v.Get(); ok {
		cols[col] = val
	}
}

// setNullable writes NULL for an explicit null.
func setNullable[T any](cols map[string]any, col string, v optional.Value[T]) {
	if !v.Set {
		return
	}
	if v.Null {
		cols[col] = nil
		return
	}
	cols[col] = v.V
}
