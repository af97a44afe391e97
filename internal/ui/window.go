package ui

import (
	"fmt"
	"log/slog"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/grid"
	"github.com/tartampluch/go-calendar/internal/scroll"
)

// viewport is the drawing layer of the main window: one week of the strip,
// plus the months that week touches. The month list and the year grid have
// no widgets of their own; their scroll commands are only logged by the model.
type viewport struct {
	app    *CalendarApp
	first  int   // first strip tag on screen, 0 before the first scroll
	months []int // month tags covered by the shown week
}

var _ engine.Renderer = (*viewport)(nil)

func (v *viewport) ScrollTo(view uuid.UUID, tag int, _ scroll.Anchor) {
	m := v.app.Model
	if m == nil || view != m.Week.ID() {
		return
	}
	first, _ := grid.WeekBounds(tag)
	v.show(first)
}

func (v *viewport) Refresh(uuid.UUID) {
	v.app.refreshLabels()
}

// last is the last strip tag on screen.
func (v *viewport) last() int {
	_, last := grid.WeekBounds(v.first)
	return min(last, v.app.Model.Week.Len())
}

// show moves the window to the week starting at first and reports the cell
// changes to the views.
func (v *viewport) show(first int) {
	m := v.app.Model
	if first < 1 || first > m.Week.Len() || first == v.first {
		return
	}

	if v.first > 0 {
		for tag := v.first; tag <= v.last(); tag++ {
			m.Week.CellDisappeared(tag)
		}
	}
	for _, tag := range v.months {
		m.Months.CellDisappeared(tag)
	}
	v.months = v.months[:0]

	v.first = first
	for tag := first; tag <= v.last(); tag++ {
		m.Week.CellAppeared(tag)

		d, err := m.Week.DateFor(tag)
		if err != nil {
			continue
		}
		// Strip days before the month list's first month have no month cell.
		mt, err := m.Months.TagFor(d)
		if err != nil || slices.Contains(v.months, mt) {
			continue
		}
		v.months = append(v.months, mt)
		m.Months.CellAppeared(mt)
	}
	v.app.refreshLabels()
}

// buildWindow creates the main window: toolbar year, a week row and the today controls.
func (app *CalendarApp) buildWindow() {
	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))

	app.toolbar = widget.NewLabelWithStyle(config.EmptyToolbar, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	app.todayLabel = widget.NewLabel("")

	week := container.NewGridWithColumns(config.DaysPerWeek)
	app.headings = make([]*widget.Label, config.DaysPerWeek)
	app.days = make([]*widget.Label, config.DaysPerWeek)
	for i := range app.headings {
		app.headings[i] = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
		week.Add(app.headings[i])
	}
	for i := range app.days {
		app.days[i] = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
		week.Add(app.days[i])
	}

	app.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { app.stepWeek(-1) })
	app.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { app.stepWeek(1) })
	app.todayBtn = widget.NewButton(app.GetMsg(config.TKeyBtnToday), app.showToday)

	app.Window.SetContent(container.NewBorder(
		container.NewBorder(nil, nil, app.prevBtn, app.nextBtn, app.toolbar),
		container.NewVBox(app.todayLabel, app.todayBtn),
		nil, nil,
		week,
	))
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.Window.SetCloseIntercept(func() {
		if app.Tray != nil {
			app.Window.Hide()
			return
		}
		app.App.Quit()
	})

	app.refreshLabels()
}

// stepWeek scrolls the row by one week, the way a swipe on the strip would,
// and lets the strip snap its selection onto the new week.
func (app *CalendarApp) stepWeek(delta int) {
	if app.view.first == 0 {
		return
	}
	app.view.show(app.view.first + delta*config.DaysPerWeek)
	app.Model.Week.Sample(scroll.Origin{X: float64(app.view.first-1) * config.WeekCellWidth})
}

// showToday selects today in the strip.
func (app *CalendarApp) showToday() {
	if err := app.Model.GoToday(engine.WeekKind); err != nil {
		slog.Error(config.ErrDateNotFound,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
	}
}

// showInitial opens the strip on Initial through the navigation queue, or on
// today when no date was requested.
func (app *CalendarApp) showInitial() {
	if app.Initial == (calendar.Date{}) {
		app.showToday()
		return
	}
	if err := app.Model.OpenWeek(app.Initial); err != nil {
		slog.Error(config.ErrDateNotFound,
			config.LogKeyDate, app.Initial.String(),
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		app.showToday()
	}
}

// todayText is the localized "Today is ..." line.
func (app *CalendarApp) todayText() string {
	if app.Model == nil {
		return ""
	}
	d := app.Model.Today.Date()
	date := fmt.Sprintf(config.DateDisplay, d.Day, app.Localizer.MonthName(d.Month), d.Year)
	return app.Localizer.MsgWith(config.TKeyLblToday, map[string]any{"Date": date})
}

// refreshLabels redraws every label from the model. Runs on the fyne thread.
func (app *CalendarApp) refreshLabels() {
	if app.Window == nil || app.Model == nil {
		return
	}

	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.toolbar.SetText(app.Model.ToolbarLabel())
	app.todayBtn.SetText(app.GetMsg(config.TKeyBtnToday))
	if txt := app.todayText(); txt != app.todayLabel.Text {
		app.todayLabel.SetText(txt)
		app.RefreshTrayMenu()
	}

	for i, h := range app.Model.Week.DayHeadings() {
		app.headings[i].SetText(h)
	}

	for _, lbl := range app.days {
		lbl.Importance = widget.MediumImportance
		lbl.TextStyle = fyne.TextStyle{}
		lbl.SetText("")
	}
	if app.view.first == 0 {
		return
	}

	sel := app.Model.Week.Selected()
	for tag := app.view.first; tag <= app.view.last(); tag++ {
		lbl := app.days[grid.Column(tag)]
		if tag == sel {
			lbl.Importance = widget.HighImportance
		}
		lbl.TextStyle = fyne.TextStyle{Bold: app.Model.Week.IsToday(tag)}
		lbl.SetText(app.Model.Week.DayLabel(tag))
	}
}
