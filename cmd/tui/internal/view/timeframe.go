package view

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const inputLayout = "02/01/2006"

// Timeframe is a preset or custom date range.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = map[Timeframe]string{
	TimeframeThisWeek:  "Esta semana",
	TimeframeLastWeek:  "Semana passada",
	TimeframeThisMonth: "Este mês",
	TimeframeLastMonth: "Mês passado",
	TimeframeAll:       "Todo o período",
	TimeframeCustom:    "Período personalizado",
}

func (t Timeframe) String() string {
	if label, ok := timeframeLabels[t]; ok {
		return label
	}

	return "Desconhecido"
}

// Range resolves a preset relative to now. Weeks start on Monday.
func (t Timeframe) Range(now time.Time) (time.Time, time.Time) {
	monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch t {
	case TimeframeThisWeek:
		return dayBounds(monday, now)
	case TimeframeLastWeek:
		return dayBounds(monday.AddDate(0, 0, -7), monday.AddDate(0, 0, -1))
	case TimeframeThisMonth:
		return dayBounds(firstOfMonth, now)
	case TimeframeLastMonth:
		return dayBounds(firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1))
	}

	return time.Time{}, time.Time{}
}

// dayBounds widens a range to cover whole days, in UTC.
func dayBounds(start, end time.Time) (time.Time, time.Time) {
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
}

// TimeframeSelectedMsg carries the chosen range. Start and End are zero when All is set.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// TimeframePicker asks for a preset and, for custom ranges, the two dates.
type TimeframePicker struct {
	minFrame Timeframe
	custom   bool
	form     *huh.Form
	err      error
	now      func() time.Time
}

// NewTimeframePicker offers the presets from minFrame onwards.
func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	m := TimeframePicker{minFrame: minFrame, now: time.Now}
	m.form = m.presetForm()

	return m
}

func (m TimeframePicker) presetForm() *huh.Form {
	options := make([]huh.Option[Timeframe], 0, TimeframeCustom-m.minFrame+1)
	for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
		options = append(options, huh.NewOption(tf.String(), tf))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Key("timeframe").
				Title("Selecione o período").
				Options(options...),
		),
	).WithShowHelp(false)
}

func customForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("start").Title("Início").Placeholder("DD/MM/AAAA").CharLimit(10).Validate(validDate),
			huh.NewInput().Key("end").Title("Fim").Placeholder("DD/MM/AAAA").CharLimit(10).Validate(validDate),
		),
	).WithShowHelp(false)
}

func validDate(s string) error {
	if _, err := time.Parse(inputLayout, s); err != nil {
		return errors.New("use DD/MM/AAAA")
	}

	return nil
}

func (m TimeframePicker) Init() tea.Cmd {
	return m.form.Init()
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.custom {
		m.Reset()
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.custom {
		return m.submitCustom()
	}

	tf, _ := m.form.Get("timeframe").(Timeframe)

	switch tf {
	case TimeframeCustom:
		m.custom = true
		m.form = customForm()

		return m, m.form.Init()
	case TimeframeAll:
		return m, selected(TimeframeSelectedMsg{All: true})
	}

	start, end := tf.Range(m.now())

	return m, selected(TimeframeSelectedMsg{Start: start, End: end})
}

func (m TimeframePicker) submitCustom() (TimeframePicker, tea.Cmd) {
	start, _ := time.Parse(inputLayout, m.form.GetString("start"))
	end, _ := time.Parse(inputLayout, m.form.GetString("end"))

	if end.Before(start) {
		m.err = errors.New("a data final é anterior à inicial")
		m.form = customForm()

		return m, m.form.Init()
	}

	m.err = nil
	start, end = dayBounds(start, end)

	return m, selected(TimeframeSelectedMsg{Start: start, End: end})
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) View() string {
	view := m.form.View()
	if m.custom {
		view = "Informe o período (Esc volta)\n\n" + view
	}

	if m.err != nil {
		view += "\n" + errorStyle(fmt.Sprintf("Erro: %v", m.err))
	}

	return view
}

// IsSelecting reports whether the picker is showing the presets.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

func (m *TimeframePicker) Reset() {
	m.custom = false
	m.err = nil
	m.form = m.presetForm()
}
