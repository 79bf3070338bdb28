// Package util provides common utility functions.
package util

//go:generate go tool errtrace -w .

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return &v }
