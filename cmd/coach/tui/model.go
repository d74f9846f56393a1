// Package tui is the interactive coach terminal: a situation form on the
// left, the recommendation panel on the right, and a status banner on top.
// The service call runs as a tea.Cmd; its result returns to Update as a
// resultMsg tagged with the request sequence number.
package tui

import (
	"context"
	"fmt"

	"playcoach/cmd/coach/ui"
	"playcoach/internal/logging"
	"playcoach/internal/present"
	"playcoach/internal/recommendation"
	"playcoach/internal/situation"
	"playcoach/internal/submission"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the interactive model.
type Options struct {
	// Context is the program-level context. Quitting cancels it, which
	// aborts any request still in flight.
	Context     context.Context
	Recommender submission.Recommender
	// Controller is created when nil.
	Controller *submission.Controller
	Styles     ui.Styles
	Logger     *logging.Logger
	// Endpoint is shown in the header.
	Endpoint string
}

// resultMsg carries a finished service call back to Update.
type resultMsg struct {
	seq uint64
	rec recommendation.Recommendation
	err error
}

var placeholders = map[situation.Field]string{
	situation.FieldOffenseTeam:  "E.g. Wildcats",
	situation.FieldDefenseTeam:  "E.g. Falcons",
	situation.FieldContextNotes: "Pitcher tendencies, weather factors, hitter scouting notes...",
}

// Model is the Bubble Tea model for the coach TUI.
type Model struct {
	ctx         context.Context
	cancel      context.CancelFunc
	recommender submission.Recommender
	controller  *submission.Controller
	form        *situation.Form

	fields []situation.Field
	inputs []textinput.Model // parallel to fields; only text and numeric entries are used
	focus  int

	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   ui.Styles
	layout   ui.LayoutConfig
	endpoint string

	// panelKey identifies what the viewport currently shows.
	panelKey string
	quitting bool

	formLog *zap.Logger
	subLog  *zap.Logger
	uiLog   *zap.Logger
}

// New builds the model. The form starts from situation defaults with the
// first field focused.
func New(opts Options) Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	controller := opts.Controller
	if controller == nil {
		controller = submission.NewController()
	}

	m := Model{
		ctx:         ctx,
		cancel:      cancel,
		recommender: opts.Recommender,
		controller:  controller,
		form:        situation.NewForm(),
		fields:      situation.Fields(),
		styles:      opts.Styles,
		keys:        defaultKeyMap(),
		help:        help.New(),
		endpoint:    opts.Endpoint,
		formLog:     logger.For(logging.CategoryForm),
		subLog:      logger.For(logging.CategorySubmission),
		uiLog:       logger.For(logging.CategoryUI),
	}

	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		if !hasInput(f) {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[f]
		ti.CharLimit = 64
		if f == situation.FieldContextNotes {
			ti.CharLimit = 1000
		}
		ti.Width = 30
		m.inputs[i] = ti
	}
	m.syncInputs()
	m.setFocus(0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = m.styles.Spinner
	m.spinner = sp

	m.viewport = viewport.New(60, 20)
	m.refreshPanel()

	subLog := m.subLog
	controller.OnChange(func(s submission.State) {
		subLog.Debug("submission state changed",
			zap.Stringer("phase", s.Phase),
			zap.Uint64("seq", s.Seq),
			zap.String("request_id", s.RequestID),
		)
	})

	return m
}

// Run starts the interactive program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current submission state.
func (m Model) State() submission.State {
	return m.controller.State()
}

// Situation returns the form's current document.
func (m Model) Situation() situation.Situation {
	return m.form.Situation()
}

func hasInput(f situation.Field) bool {
	k := f.Kind()
	return k == situation.KindText || k == situation.KindNumeric
}

func (m Model) submitIndex() int { return len(m.fields) }
func (m Model) resetIndex() int  { return len(m.fields) + 1 }
func (m Model) focusCount() int  { return len(m.fields) + 2 }

// focusedField returns the field under focus, or false when a button is focused.
func (m Model) focusedField() (situation.Field, bool) {
	if m.focus < len(m.fields) {
		return m.fields[m.focus], true
	}
	return 0, false
}

func (m *Model) setFocus(i int) {
	n := m.focusCount()
	i = ((i % n) + n) % n
	if m.focus < len(m.inputs) && hasInput(m.fields[m.focus]) {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if i < len(m.inputs) && hasInput(m.fields[i]) {
		m.inputs[i].Focus()
	}
}

// syncInputs copies the form document into the inputs, e.g. after a reset.
func (m *Model) syncInputs() {
	doc := m.form.Situation()
	for i, f := range m.fields {
		if hasInput(f) {
			m.inputs[i].SetValue(doc.Value(f))
		}
	}
}

// refreshPanel re-renders the viewport when the visible state changed.
// The busy panel is drawn live with the spinner and bypasses the viewport.
func (m *Model) refreshPanel() {
	st := m.controller.State()
	panel := present.PanelFor(st)
	if _, busy := panel.(present.Busy); busy {
		return
	}

	key := fmt.Sprintf("%d/%s/%d", st.Seq, st.Phase, m.viewport.Width)
	if key == m.panelKey {
		return
	}
	m.panelKey = key

	md := present.Markdown(panel)
	out, err := present.RenderMarkdown(md, m.viewport.Width, m.styles.Theme.GlamourStyle())
	if err != nil {
		m.uiLog.Warn("markdown render failed", zap.Error(err))
		out = md
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m *Model) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.layout = ui.NewLayoutConfig(width, height)
	formWidth, panelWidth := m.layout.PaneWidths()

	inputWidth := formWidth - ui.LabelWidth - 14
	if inputWidth < 8 {
		inputWidth = 8
	}
	for i, f := range m.fields {
		if hasInput(f) {
			m.inputs[i].Width = inputWidth
		}
	}

	panelHeight := m.layout.BodyHeight()
	if m.layout.IsCompact {
		panelHeight /= 2
	}
	m.viewport.Width = ui.PanelContentWidth(panelWidth)
	m.viewport.Height = ui.PanelContentHeight(panelHeight)
	m.help.Width = width
	m.panelKey = ""
	m.refreshPanel()
}

// recommend performs the service call off the event loop.
func recommend(ctx context.Context, r submission.Recommender, t submission.Ticket) tea.Cmd {
	return func() tea.Msg {
		rec, err := r.Recommend(ctx, t.Request)
		return resultMsg{seq: t.Seq, rec: rec, err: err}
	}
}
