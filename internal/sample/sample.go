// Package sample selects a bounded evaluation subset from a scene catalog,
// either by deterministic interval striding or by seeded random draw.
package sample

import (
	"math/rand"
	"sort"
)

// Interval returns up to n scenes picked at a fixed stride over the sorted
// catalog. The input is sorted first (the stride is defined over sorted
// order, not discovery order); when the catalog already fits within n the
// whole sorted catalog is returned. Stride is floor(len/n), minimum 1, and
// the picked slice is truncated to n after striding.
//
// The result is a pure function of (catalog, n): identical inputs always
// yield identical output.
func Interval(catalog []string, n int) []string {
	sorted := append([]string(nil), catalog...)
	sort.Strings(sorted)

	if len(sorted) <= n {
		return sorted
	}

	stride := len(sorted) / n
	if stride < 1 {
		stride = 1
	}
	picked := make([]string, 0, n+1)
	for i := 0; i < len(sorted); i += stride {
		picked = append(picked, sorted[i])
	}
	if len(picked) > n {
		picked = picked[:n]
	}
	return picked
}

// Random returns n scenes drawn without replacement using a generator
// seeded with seed, so the same (catalog, n, seed) triple always yields the
// same sequence. Output order follows the draw, not sorted order. When the
// catalog holds fewer than n scenes the whole catalog is returned as-is;
// the caller reports the shortfall.
func Random(catalog []string, n int, seed int64) []string {
	if len(catalog) <= n {
		return append([]string(nil), catalog...)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(catalog))
	picked := make([]string, n)
	for i := 0; i < n; i++ {
		picked[i] = catalog[perm[i]]
	}
	return picked
}
