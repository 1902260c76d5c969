package sample

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(n int) []string {
	scenes := make([]string, n)
	for i := range scenes {
		scenes[i] = fmt.Sprintf("scene%04d_00", i)
	}
	return scenes
}

func TestInterval_SmallCatalogReturnsAllSorted(t *testing.T) {
	catalog := []string{"scene0002_00", "scene0000_00", "scene0001_00"}

	got := Interval(catalog, 10)

	assert.Equal(t, []string{"scene0000_00", "scene0001_00", "scene0002_00"}, got)
	// Input must not be reordered.
	assert.Equal(t, []string{"scene0002_00", "scene0000_00", "scene0001_00"}, catalog)
}

func TestInterval_StrideOverHundred(t *testing.T) {
	catalog := catalogOf(100)

	got := Interval(catalog, 10)

	require.Len(t, got, 10)
	for i, id := range got {
		assert.Equal(t, fmt.Sprintf("scene%04d_00", i*10), id)
	}
}

func TestInterval_TruncatesAfterStriding(t *testing.T) {
	// 7 scenes, n=3: stride floor(7/3)=2 picks indices 0,2,4,6 (4 scenes),
	// then truncation keeps the first 3.
	got := Interval(catalogOf(7), 3)

	assert.Equal(t, []string{"scene0000_00", "scene0002_00", "scene0004_00"}, got)
}

func TestInterval_SortsBeforeStriding(t *testing.T) {
	catalog := catalogOf(10)
	reversed := make([]string, len(catalog))
	for i, id := range catalog {
		reversed[len(catalog)-1-i] = id
	}

	assert.Equal(t, Interval(catalog, 4), Interval(reversed, 4))
}

func TestInterval_Deterministic(t *testing.T) {
	catalog := catalogOf(137)
	assert.Equal(t, Interval(catalog, 50), Interval(catalog, 50))
}

func TestRandom_Deterministic(t *testing.T) {
	catalog := catalogOf(200)

	first := Random(catalog, 50, 42)
	second := Random(catalog, 50, 42)

	require.Len(t, first, 50)
	assert.Equal(t, first, second)
}

func TestRandom_NoReplacement(t *testing.T) {
	catalog := catalogOf(100)

	got := Random(catalog, 60, 7)

	seen := make(map[string]bool, len(got))
	for _, id := range got {
		assert.False(t, seen[id], "duplicate draw: %s", id)
		seen[id] = true
	}
}

func TestRandom_ShortCatalogReturnsAll(t *testing.T) {
	catalog := []string{"scene0005_00", "scene0001_00"}

	got := Random(catalog, 50, 42)

	// Degraded result keeps the catalog's own order.
	assert.Equal(t, catalog, got)
}

func TestRandom_DoesNotMutateCatalog(t *testing.T) {
	catalog := catalogOf(20)
	want := append([]string(nil), catalog...)

	Random(catalog, 5, 1)

	assert.Equal(t, want, catalog)
}
