package engine

import (
	"strconv"

	"github.com/tartampluch/go-calendar/internal/config"
)

// ToolbarYear returns the year most represented in years. Ties go to the
// earliest of the tied years. No years gives an empty label.
func ToolbarYear(years []int) string {
	if len(years) == 0 {
		return config.EmptyToolbar
	}

	counts := make(map[int]int, 2)
	for _, y := range years {
		counts[y]++
	}

	best, bestCount := 0, 0
	for y, c := range counts {
		if c > bestCount || (c == bestCount && y < best) {
			best, bestCount = y, c
		}
	}
	return strconv.Itoa(best)
}
