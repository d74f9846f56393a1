package tui

import (
	"playcoach/internal/present"
	"playcoach/internal/situation"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case resultMsg:
		return m.settle(msg), nil

	case spinner.TickMsg:
		if !m.controller.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		m.uiLog.Info("quitting", zap.Uint64("issued", m.controller.Latest()))
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Reset):
		return m.reset(), nil
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	field, onField := m.focusedField()
	if key.Matches(msg, m.keys.Activate) {
		switch {
		case m.focus == m.submitIndex():
			return m.submit()
		case m.focus == m.resetIndex():
			return m.reset(), nil
		case field.Kind() == situation.KindFlag:
			m.toggle(field)
			return m, nil
		case field.Kind() == situation.KindChoice:
			m.cycle(field)
			return m, nil
		default:
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	if !onField {
		return m, nil
	}
	switch field.Kind() {
	case situation.KindFlag:
		if key.Matches(msg, m.keys.Toggle) {
			m.toggle(field)
		}
		return m, nil
	case situation.KindChoice:
		if key.Matches(msg, m.keys.Toggle, m.keys.Cycle) {
			m.cycle(field)
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput routes msg to the focused text input and writes its value
// back into the form.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	field, ok := m.focusedField()
	if !ok || !hasInput(field) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if value := m.inputs[m.focus].Value(); value != before {
		if err := m.form.SetField(field, value); err != nil {
			m.formLog.Warn("field rejected", zap.Stringer("field", field), zap.Error(err))
		} else {
			m.formLog.Debug("field changed", zap.Stringer("field", field), zap.String("value", value))
		}
	}
	return m, cmd
}

func (m *Model) toggle(field situation.Field) {
	if err := m.form.Toggle(field); err != nil {
		m.formLog.Warn("toggle rejected", zap.Stringer("field", field), zap.Error(err))
		return
	}
	on, _ := m.form.Situation().Flag(field)
	m.formLog.Debug("field changed", zap.Stringer("field", field), zap.Bool("value", on))
}

func (m *Model) cycle(field situation.Field) {
	next := m.form.Situation().HalfInning.Next()
	if err := m.form.SetField(field, string(next)); err != nil {
		m.formLog.Warn("choice rejected", zap.Stringer("field", field), zap.Error(err))
		return
	}
	m.formLog.Debug("field changed", zap.Stringer("field", field), zap.String("value", string(next)))
}

// submit starts a request when the form is submittable and nothing is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	snap, ok := m.form.Snapshot()
	if !present.ActionsFor(m.controller.State(), ok).SubmitEnabled {
		m.uiLog.Debug("submit ignored", zap.Bool("submittable", ok), zap.Bool("busy", m.controller.Busy()))
		return m, nil
	}
	if m.recommender == nil {
		m.uiLog.Error("no recommender configured")
		return m, nil
	}

	ticket := m.controller.Begin(snap)
	m.subLog.Info("submitting situation",
		zap.Uint64("seq", ticket.Seq),
		zap.String("request_id", ticket.ID),
		zap.String("situation", snap.Summary()),
	)
	for _, w := range snap.RangeWarnings() {
		m.formLog.Debug("range warning", zap.String("warning", w))
	}
	m.refreshPanel()
	return m, tea.Batch(m.spinner.Tick, recommend(m.ctx, m.recommender, ticket))
}

// settle applies a finished request. Results for superseded requests are dropped.
func (m Model) settle(msg resultMsg) Model {
	if !m.controller.Settle(msg.seq, msg.rec, msg.err) {
		m.subLog.Debug("discarding stale result",
			zap.Uint64("seq", msg.seq),
			zap.Uint64("latest", m.controller.Latest()),
		)
		return m
	}
	m.refreshPanel()
	return m
}

// reset restores the default form unless a request is in flight.
func (m Model) reset() Model {
	if !present.ActionsFor(m.controller.State(), false).ResetEnabled {
		return m
	}
	m.form.Reset()
	m.syncInputs()
	m.formLog.Debug("form reset")
	return m
}
