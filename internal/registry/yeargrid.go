package registry

import (
	"fmt"

	"github.com/tartampluch/go-calendar/internal/config"
)

// CellKind classifies a year-grid cell.
type CellKind int

const (
	Spacer CellKind = iota
	YearLabel
	MonthCell
)

func (k CellKind) String() string {
	switch k {
	case YearLabel:
		return "year"
	case MonthCell:
		return "month"
	default:
		return "spacer"
	}
}

// YearGrid addresses a three-column grid holding, per year, one label row
// (label + two spacers) followed by the twelve months.
//
//	id(y, m) = (y - base)*15 + m + 3
//	m        = (id-1) mod 15 - 2
//	y        = base + (id-1) div 15
type YearGrid struct {
	BaseYear int
	Years    int
}

// NewYearGrid creates a grid of years rows blocks starting at baseYear.
func NewYearGrid(baseYear, years int) (YearGrid, error) {
	if years < 1 {
		return YearGrid{}, fmt.Errorf("%s: %d", config.ErrEmptyRegistry, years)
	}
	return YearGrid{BaseYear: baseYear, Years: years}, nil
}

// BuildID returns the cell id of (y, m). m may be a slot value in -2..0.
func (g YearGrid) BuildID(y, m int) int {
	return (y-g.BaseYear)*config.YearGridCells + m + config.YearGridOffset
}

// YM inverts BuildID.
func (g YearGrid) YM(id int) (year, month int) {
	year = g.BaseYear + (id-1)/config.YearGridCells
	month = (id-1)%config.YearGridCells - 2
	return year, month
}

// Kind classifies id.
func (g YearGrid) Kind(id int) CellKind {
	_, m := g.YM(id)
	switch {
	case m == config.YearLabelSlot:
		return YearLabel
	case m >= 1 && m <= config.MonthsPerYear:
		return MonthCell
	default:
		return Spacer
	}
}

// Cells is the number of ids in the grid; ids run 1..Cells().
func (g YearGrid) Cells() int {
	return g.Years * config.YearGridCells
}

// Contains reports whether id addresses a cell of the grid.
func (g YearGrid) Contains(id int) bool {
	return id >= 1 && id <= g.Cells()
}

// MonthsTag converts (y, m) to the tag of a month list that starts in January of BaseYear.
func (g YearGrid) MonthsTag(y, m int) int {
	return (y-g.BaseYear)*config.MonthsPerYear + m
}

// FromMonthsTag inverts MonthsTag.
func (g YearGrid) FromMonthsTag(tag int) (year, month int) {
	year = g.BaseYear + (tag-1)/config.MonthsPerYear
	month = (tag-1)%config.MonthsPerYear + 1
	return year, month
}
