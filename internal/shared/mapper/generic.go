// Package mapper holds small generic helpers for converting between layers.
package mapper

// MapSlice applies mapFunc to every element. A nil input yields an empty slice so
// JSON responses render [] instead of null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// IndexBy builds a lookup map keyed by key(item).
func IndexBy[T any, K comparable](items []T, key func(T) K) map[K]T {
	result := make(map[K]T, len(items))
	for _, item := range items {
		result[key(item)] = item
	}
	return result
}
