// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic
helpers used when shaping API responses.

Both helpers return a non-nil slice so that empty collections encode as []
rather than null.
*/
package slice

// Map applies transform to every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// NonNil returns input, or an empty slice when input is nil.
func NonNil[T any](input []T) []T {
	if input == nil {
		return []T{}
	}
	return input
}
