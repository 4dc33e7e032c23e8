package slices

import (
	"strconv"
	"strings"
	"testing"

	"github.com/a-peyrard/singlet/fn"
	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Run("it should transform every element", func(t *testing.T) {
		// GIVEN
		input := []int{1, 2, 3}

		// WHEN
		result := Map(input, strconv.Itoa)

		// THEN
		assert.Equal(t, []string{"1", "2", "3"}, result)
	})

	t.Run("it should return an empty slice for an empty input", func(t *testing.T) {
		// GIVEN
		var input []string

		// WHEN
		result := Map(input, strings.ToUpper)

		// THEN
		assert.Empty(t, result)
	})
}

func TestFilter(t *testing.T) {
	t.Run("it should keep only matching elements", func(t *testing.T) {
		// GIVEN
		input := []string{"engine", "car", "wheel", "cab"}
		predicate := func(s string) bool {
			return len(s) == 3
		}

		// WHEN
		result := Filter(input, predicate)

		// THEN
		assert.Equal(t, []string{"car", "cab"}, result)
	})

	t.Run("it should return nil when nothing matches", func(t *testing.T) {
		// GIVEN
		input := []int{1, 3, 5}
		predicate := func(n int) bool {
			return n%2 == 0
		}

		// WHEN
		result := Filter(input, predicate)

		// THEN
		assert.Empty(t, result)
	})
}

func TestSortBy(t *testing.T) {
	t.Run("it should sort using the comparator", func(t *testing.T) {
		// GIVEN
		input := []string{"wheel", "car", "engine"}

		// WHEN
		SortBy(input, fn.Comparing(func(s string) string { return s }))

		// THEN
		assert.Equal(t, []string{"car", "engine", "wheel"}, input)
	})

	t.Run("it should keep the relative order of equal elements", func(t *testing.T) {
		// GIVEN
		type pair struct {
			key   int
			label string
		}
		input := []pair{{2, "b"}, {1, "a"}, {2, "a"}, {1, "b"}}

		// WHEN
		SortBy(input, fn.Comparing(func(p pair) int { return p.key }))

		// THEN
		assert.Equal(t, []pair{{1, "a"}, {1, "b"}, {2, "b"}, {2, "a"}}, input)
	})
}
