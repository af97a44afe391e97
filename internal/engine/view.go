// Package engine holds the view models of the three calendar levels (year grid,
// month list, week strip) and the Model that wires them together.
//
// View-model methods must be called on the model's timeline. Background loops
// (debounce, visibility polling, navigation queue, today ticker) only ever
// schedule work back onto it.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/scroll"
)

// ViewKind names a calendar level.
type ViewKind int

const (
	WeekKind ViewKind = iota
	MonthsKind
	YearKind
)

func (k ViewKind) String() string {
	switch k {
	case MonthsKind:
		return "months"
	case YearKind:
		return "year"
	default:
		return "week"
	}
}

// Renderer is the drawing layer. It receives scroll commands and redraw requests
// and reports cell visibility back through the views' CellAppeared/CellDisappeared.
type Renderer interface {
	ScrollTo(view uuid.UUID, tag int, anchor scroll.Anchor)
	Refresh(view uuid.UUID)
}

// NopRenderer discards every command. Headless hosts use it.
type NopRenderer struct{}

func (NopRenderer) ScrollTo(uuid.UUID, int, scroll.Anchor) {}
func (NopRenderer) Refresh(uuid.UUID)                      {}

// viewBase carries what every level shares: identity, visibility and the renderer.
type viewBase struct {
	id       uuid.UUID
	kind     ViewKind
	renderer Renderer
	strict   bool
	visible  bool
}

func newViewBase(kind ViewKind, r Renderer, strict bool) viewBase {
	if r == nil {
		r = NopRenderer{}
	}
	return viewBase{id: uuid.New(), kind: kind, renderer: r, strict: strict}
}

// ID identifies the view towards the renderer and the navigation queue.
func (v *viewBase) ID() uuid.UUID {
	return v.id
}

// Name is the view's kind, used in logs.
func (v *viewBase) Name() string {
	return v.kind.String()
}

// Kind returns the view's level.
func (v *viewBase) Kind() ViewKind {
	return v.kind
}

// Visible reports whether the view is on screen.
func (v *viewBase) Visible() bool {
	return v.visible
}

func (v *viewBase) scrollTo(tag int, anchor scroll.Anchor) {
	slog.Debug(config.MsgScrollCommand,
		config.LogKeyView, v.Name(),
		config.LogKeyTag, tag,
		config.LogKeyAnchor, anchor.String(),
		config.LogKeyComponent, config.CompEngine)
	v.renderer.ScrollTo(v.id, tag, anchor)
}

func (v *viewBase) refresh() {
	v.renderer.Refresh(v.id)
}

func (v *viewBase) logVisibility(appear bool) {
	msg := config.MsgViewDisappear
	if appear {
		msg = config.MsgViewAppear
	}
	slog.Debug(msg,
		config.LogKeyView, v.Name(),
		config.LogKeyViewID, v.id,
		config.LogKeyComponent, config.CompEngine)
}

// invariant reports a registry lookup that cannot fail in correct usage.
// Strict models panic; others log and let the caller skip the operation.
func (v *viewBase) invariant(err error) error {
	err = fmt.Errorf("%s: %w", v.Name(), err)
	if v.strict {
		panic(err)
	}
	slog.Error(config.ErrInvariant,
		config.LogKeyView, v.Name(),
		config.LogKeyError, err,
		config.LogKeyComponent, config.CompEngine)
	return err
}

// scroller adapts a view to scroll.Scroller.
type scroller struct {
	v *viewBase
}

func (s scroller) ScrollTo(tag int, anchor scroll.Anchor) {
	s.v.scrollTo(tag, anchor)
}
