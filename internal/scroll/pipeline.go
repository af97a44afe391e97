// Package scroll keeps a horizontally paged week strip aligned to week
// boundaries and its selection on screen.
//
// A Pipeline receives raw scroll samples and selection requests. Samples are
// debounced and snapped; selections are reconciled by polling visibility until
// the selected week is fully shown. Only one of the two runs at a time.
package scroll

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/timeline"
)

// Anchor tells the renderer which edge of the viewport a tag is aligned to.
type Anchor int

const (
	Leading Anchor = iota
	Top
	Center
)

func (a Anchor) String() string {
	switch a {
	case Top:
		return "top"
	case Center:
		return "center"
	default:
		return "leading"
	}
}

// Scroller issues scroll commands to whatever draws the strip.
type Scroller interface {
	ScrollTo(tag int, anchor Anchor)
}

// State is the pipeline's phase.
type State int

const (
	// Idle: subscribed to scroll samples.
	Idle State = iota
	// Reconciling: a selection pass is polling visibility.
	Reconciling
	// PendingRebuild: reconciling, with a newer selection parked.
	PendingRebuild
)

func (s State) String() string {
	switch s {
	case Reconciling:
		return "reconciling"
	case PendingRebuild:
		return "pending_rebuild"
	default:
		return "idle"
	}
}

// Options tunes a Pipeline. Zero durations fall back to the config defaults,
// except Timeout where a negative value means unbounded.
type Options struct {
	Name         string
	Len          int
	Quiet        time.Duration
	PollInterval time.Duration
	Timeout      time.Duration
	OnSelect     func(tag int)
}

// sample is a scroll offset stamped with the generation it was taken in.
type sample struct {
	origin Origin
	gen    uint64
}

// Pipeline is the per-strip scroll reconciler. Every exported method except
// Close must be called on the pipeline's timeline.
type Pipeline struct {
	name     string
	n        int
	tl       timeline.Dispatcher
	scroller Scroller
	onSelect func(int)
	poll     time.Duration
	timeout  time.Duration

	vis      *Visibility
	debounce *Debouncer[sample]

	// timeline-owned
	state    State
	selected int
	parked   int
	gen      uint64
	visible  bool
}

// NewPipeline creates a pipeline for a strip of opts.Len tags.
func NewPipeline(tl timeline.Dispatcher, scroller Scroller, opts Options) *Pipeline {
	if opts.Quiet <= 0 {
		opts.Quiet = config.DebounceQuiet
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = config.VisibilityPollInterval
	}
	switch {
	case opts.Timeout == 0:
		opts.Timeout = config.VisibilityTimeout
	case opts.Timeout < 0:
		opts.Timeout = 0
	}

	p := &Pipeline{
		name:     opts.Name,
		n:        opts.Len,
		tl:       tl,
		scroller: scroller,
		onSelect: opts.OnSelect,
		poll:     opts.PollInterval,
		timeout:  opts.Timeout,
		vis:      NewVisibility(),
	}
	p.debounce = NewDebouncer(opts.Quiet, func(s sample) {
		tl.Do(func() { p.snap(s) })
	})
	return p
}

// Visibility exposes the strip's visible set.
func (p *Pipeline) Visibility() *Visibility {
	return p.vis
}

// State returns the current phase.
func (p *Pipeline) State() State {
	return p.state
}

// Selected returns the selected tag, 0 when nothing is selected.
func (p *Pipeline) Selected() int {
	return p.selected
}

// Len is the strip length.
func (p *Pipeline) Len() int {
	return p.n
}

// CellAppeared records tag as on screen.
func (p *Pipeline) CellAppeared(tag int) {
	p.vis.Appear(tag)
}

// CellDisappeared records tag as off screen.
func (p *Pipeline) CellDisappeared(tag int) {
	p.vis.Disappear(tag)
}

// Appear arms the pipeline. A selection made while hidden is reconciled now.
func (p *Pipeline) Appear() {
	if p.visible {
		return
	}
	p.visible = true
	p.state = Idle
	slog.Debug(config.MsgViewAppear,
		config.LogKeyView, p.name,
		config.LogKeyComponent, config.CompScroll)

	if p.selected > 0 {
		p.reconcile(p.selected)
	}
}

// Disappear cancels the debounce and any running pass.
func (p *Pipeline) Disappear() {
	if !p.visible {
		return
	}
	p.visible = false
	p.gen++
	p.debounce.Cancel()
	p.state = Idle
	p.parked = 0
	slog.Debug(config.MsgViewDisappear,
		config.LogKeyView, p.name,
		config.LogKeyGen, p.gen,
		config.LogKeyComponent, config.CompScroll)
}

// Close stops the debouncer for good. Safe from any goroutine.
func (p *Pipeline) Close() {
	p.debounce.Stop()
}

// Sample feeds a scroll offset. Samples are only accepted while Idle.
func (p *Pipeline) Sample(o Origin) {
	if !p.visible {
		return
	}
	if p.state != Idle {
		slog.Debug(config.MsgSampleDropped,
			config.LogKeyView, p.name,
			config.LogKeyComponent, config.CompScroll)
		return
	}
	p.debounce.Push(sample{origin: o, gen: p.gen})
}

// Select makes tag the selection and scrolls until its week is visible. While
// a pass is running the request is parked; the latest parked request wins.
func (p *Pipeline) Select(tag int) {
	if tag < 1 || tag > p.n {
		slog.Error(config.ErrTagNotFound,
			config.LogKeyView, p.name,
			config.LogKeyTag, tag,
			config.LogKeyComponent, config.CompScroll)
		return
	}

	if p.state != Idle {
		p.parked = tag
		p.state = PendingRebuild
		slog.Debug(config.MsgSelectParked,
			config.LogKeyView, p.name,
			config.LogKeyTag, tag,
			config.LogKeyComponent, config.CompScroll)
		return
	}

	p.setSelected(tag)
	if p.visible {
		p.reconcile(tag)
	}
}

// Deselect clears the selection without scrolling.
func (p *Pipeline) Deselect() {
	p.selected = 0
	p.parked = 0
}

func (p *Pipeline) setSelected(tag int) {
	p.selected = tag
	if p.onSelect != nil {
		p.onSelect(tag)
	}
}

// snap aligns the strip on the week nearest to the earliest visible tag and
// moves the selection to the same weekday of that week. A sample taken before
// the last selection or disappearance is dropped, even if its timer had
// already fired.
func (p *Pipeline) snap(s sample) {
	if s.gen != p.gen {
		slog.Debug(config.MsgStaleCompletion,
			config.LogKeyView, p.name,
			config.LogKeyGen, s.gen,
			config.LogKeyComponent, config.CompScroll)
		return
	}
	if !p.visible || p.state != Idle {
		return
	}
	earliest, ok := p.vis.Earliest()
	if !ok {
		return
	}

	target := min(Snap(earliest), WeekOf(p.n))
	p.scroller.ScrollTo(target, Leading)

	pos := 0
	if p.selected > 0 {
		pos = Position(p.selected)
	}
	sel := min(target+pos, p.n)

	slog.Debug(config.MsgSnap,
		config.LogKeyView, p.name,
		config.LogKeyTarget, target,
		config.LogKeyTag, sel,
		config.LogKeyOffset, s.origin.X,
		config.LogKeyComponent, config.CompScroll)

	p.setSelected(sel)
	p.reconcile(sel)
}

// reconcile starts a visibility pass for tag. The sample subscription is
// cancelled until the pass finishes.
func (p *Pipeline) reconcile(tag int) {
	p.gen++
	p.debounce.Cancel()
	p.state = Reconciling

	slog.Debug(config.MsgSelect,
		config.LogKeyView, p.name,
		config.LogKeyTag, tag,
		config.LogKeyGen, p.gen,
		config.LogKeyComponent, config.CompScroll)

	p.attempt(p.gen, tag, time.Now())
}

func (p *Pipeline) attempt(gen uint64, tag int, started time.Time) {
	if gen != p.gen {
		slog.Debug(config.MsgStaleCompletion,
			config.LogKeyView, p.name,
			config.LogKeyGen, gen,
			config.LogKeyComponent, config.CompScroll)
		return
	}

	first := WeekOf(tag)
	last := min(first+config.DaysPerWeek-1, p.n)
	if p.vis.ContainsRange(first, last) {
		slog.Debug(config.MsgReconciled,
			config.LogKeyView, p.name,
			config.LogKeyTag, tag,
			config.LogKeyComponent, config.CompScroll)
		p.finish()
		return
	}

	waited := time.Since(started)
	if p.timeout > 0 && waited >= p.timeout {
		slog.Warn(config.MsgReconcileAbort,
			config.LogKeyView, p.name,
			config.LogKeyTag, tag,
			config.LogKeyWaited, waited.Milliseconds(),
			config.LogKeyComponent, config.CompScroll)
		p.finish()
		return
	}

	p.scroller.ScrollTo(first, Leading)
	time.AfterFunc(p.poll, func() {
		p.tl.Do(func() { p.attempt(gen, tag, started) })
	})
}

// finish re-arms the sample subscription, or starts the parked selection.
func (p *Pipeline) finish() {
	next := p.parked
	p.parked = 0
	p.state = Idle

	if next > 0 {
		p.setSelected(next)
		if p.visible {
			p.reconcile(next)
		}
	}
}
