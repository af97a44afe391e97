package scroll

import (
	"math"
	"slices"

	"github.com/tartampluch/go-calendar/internal/config"
)

// Visibility is the set of tags currently on screen. It is owned by the view's
// timeline and is not safe for concurrent use.
type Visibility struct {
	tags map[int]struct{}
}

// NewVisibility returns an empty set.
func NewVisibility() *Visibility {
	return &Visibility{tags: make(map[int]struct{})}
}

// Appear marks tag as visible.
func (v *Visibility) Appear(tag int) {
	v.tags[tag] = struct{}{}
}

// Disappear marks tag as hidden.
func (v *Visibility) Disappear(tag int) {
	delete(v.tags, tag)
}

// Contains reports whether tag is visible.
func (v *Visibility) Contains(tag int) bool {
	_, ok := v.tags[tag]
	return ok
}

// ContainsRange reports whether every tag of [first, last] is visible.
func (v *Visibility) ContainsRange(first, last int) bool {
	for t := first; t <= last; t++ {
		if !v.Contains(t) {
			return false
		}
	}
	return first <= last
}

// Earliest returns the smallest visible tag.
func (v *Visibility) Earliest() (int, bool) {
	earliest := math.MaxInt
	for t := range v.tags {
		earliest = min(earliest, t)
	}
	return earliest, len(v.tags) > 0
}

// Tags returns the visible tags in ascending order.
func (v *Visibility) Tags() []int {
	out := make([]int, 0, len(v.tags))
	for t := range v.tags {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Len is the number of visible tags.
func (v *Visibility) Len() int {
	return len(v.tags)
}

// Clear hides everything.
func (v *Visibility) Clear() {
	clear(v.tags)
}

// Snap rounds tag to the nearest week boundary of a strip: round((t-1)/7)*7+1.
func Snap(tag int) int {
	return int(math.Round(float64(tag-1)/config.DaysPerWeek))*config.DaysPerWeek + 1
}

// WeekOf returns the first tag of the week holding tag.
func WeekOf(tag int) int {
	return (tag-1)/config.DaysPerWeek*config.DaysPerWeek + 1
}

// Position returns the 0-based column of tag inside its week.
func Position(tag int) int {
	return (tag - 1) % config.DaysPerWeek
}
