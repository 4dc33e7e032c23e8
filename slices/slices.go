// Package slices complements the standard slices package with the few
// helpers this module relies on.
package slices

import (
	"sort"

	"github.com/a-peyrard/singlet/fn"
)

// Map transforms every element of the slice using the given mapper.
func Map[F any, T any](original []F, mapper func(F) T) []T {
	result := make([]T, len(original))
	for i, item := range original {
		result[i] = mapper(item)
	}
	return result
}

// Filter returns a new slice containing only the elements for which the
// predicate returns true.
func Filter[T any](slice []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// SortBy sorts the slice in place using the given comparator. The sort is
// stable, so equal elements keep their relative order.
func SortBy[T any](slice []T, comparator fn.Comparator[T]) {
	sort.SliceStable(slice, func(i, j int) bool {
		return comparator(slice[i], slice[j]) == fn.Less
	})
}
