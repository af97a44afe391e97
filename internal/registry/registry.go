// Package registry maps calendar dates to the small integer tags virtualized
// views use as scroll and identity keys.
package registry

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
)

// ErrNotFound reports a lookup outside the registry window. In correct usage
// every date comes from the registry's own range, so this is an invariant violation.
var ErrNotFound = errors.New(config.ErrInvariant)

// Unit is the step between two consecutive tags.
type Unit int

const (
	Days Unit = iota
	Months
)

func (u Unit) String() string {
	if u == Months {
		return "months"
	}
	return "days"
}

// Registry is an immutable bidirectional date↔tag map over N consecutive units.
// Tags run 1..N in date order. Month registries key every month by its 1st.
type Registry struct {
	unit   Unit
	byDate map[calendar.Date]int
	byTag  []calendar.Date // byTag[k-1] is the date of tag k
}

// New builds a registry of count units starting at start.
func New(start calendar.Date, count int, unit Unit) (*Registry, error) {
	if count < 1 {
		return nil, fmt.Errorf("%s: %d", config.ErrEmptyRegistry, count)
	}
	if unit == Months {
		start = start.FirstOfMonth()
	}

	r := &Registry{
		unit:   unit,
		byDate: make(map[calendar.Date]int, count),
		byTag:  make([]calendar.Date, 0, count),
	}

	for k := 1; k <= count; k++ {
		var d calendar.Date
		if unit == Months {
			d = start.AddMonths(k - 1)
		} else {
			d = start.AddDays(k - 1)
		}
		r.byDate[d] = k
		r.byTag = append(r.byTag, d)
	}
	return r, nil
}

// TagFor returns the tag of d. Month registries accept any day of the month.
func (r *Registry) TagFor(d calendar.Date) (int, error) {
	if r.unit == Months {
		d = d.FirstOfMonth()
	}
	tag, ok := r.byDate[d]
	if !ok {
		return 0, fmt.Errorf("%s %s: %w", config.ErrDateNotFound, d, ErrNotFound)
	}
	return tag, nil
}

// DateFor returns the date of tag.
func (r *Registry) DateFor(tag int) (calendar.Date, error) {
	if tag < 1 || tag > len(r.byTag) {
		return calendar.Date{}, fmt.Errorf("%s %d: %w", config.ErrTagNotFound, tag, ErrNotFound)
	}
	return r.byTag[tag-1], nil
}

// Contains reports whether d falls inside the window.
func (r *Registry) Contains(d calendar.Date) bool {
	_, err := r.TagFor(d)
	return err == nil
}

// Len is the number of tags.
func (r *Registry) Len() int {
	return len(r.byTag)
}

// Unit returns the step between tags.
func (r *Registry) Unit() Unit {
	return r.unit
}

// First returns the date of tag 1.
func (r *Registry) First() calendar.Date {
	return r.byTag[0]
}

// Last returns the date of tag Len().
func (r *Registry) Last() calendar.Date {
	return r.byTag[len(r.byTag)-1]
}
