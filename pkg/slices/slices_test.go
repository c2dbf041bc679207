package slices

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	data := []string{"alpha1", "alpha2", "bravo1", "bravo2"}

	// Index of first element
	result := Index(data, "alpha1")
	require.Equal(t, 0, result)

	// Index of last element
	result = Index(data, "bravo2")
	require.Equal(t, 3, result)

	// Index of something that does not exist in the slice
	result = Index(data, "not there")
	require.Equal(t, -1, result)

	// Empty slice should not contain anything
	result = Index([]string{}, "anything")
	require.Equal(t, -1, result)
	data = nil
	result = Index(data, "")
	require.Equal(t, -1, result)
}

func TestContains(t *testing.T) {
	data := []string{"alpha1", "alpha2", "bravo1", "bravo2"}

	require.True(t, Contains(data, "alpha1"))
	require.True(t, Contains(data, "bravo2"))
	require.False(t, Contains(data, "not there"))
	require.False(t, Contains([]string{}, "anything"))

	data = nil
	require.False(t, Contains(data, ""))
}

func TestMap(t *testing.T) {
	data := []int{1, 2, 3}

	result := Map(data, strconv.Itoa)
	require.Equal(t, []string{"1", "2", "3"}, result)

	require.Nil(t, Map([]int(nil), strconv.Itoa))
}

func TestSelect(t *testing.T) {
	data := []string{"alpha1", "alpha2", "bravo1", "bravo2"}

	result := Select(data, func(s string) bool { return strings.HasPrefix(s, "alpha") })
	require.Equal(t, []string{"alpha1", "alpha2"}, result)

	result = Select(data, func(s string) bool { return false })
	require.Empty(t, result)
}
