package play

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shici/internal/quiz"
)

// Model is the Bubble Tea model for one player's quiz sittings.
type Model struct {
	opts Options

	screen    Screen
	nameInput textinput.Model
	nameError string
	player    string

	session  quiz.Session
	flipped  bool
	clock    time.Time
	fatal    string
	notices  []string
	shortBy  int
	quitting bool

	clientAddr string
	addrReady  bool

	result  quiz.Result
	results []quiz.Result
	review  table.Model
}

// NewModel constructs a quiz model. When opts.Player is set the name screen is skipped.
func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = quiz.NewRand()
	}
	if opts.AutoAdvance <= 0 {
		opts.AutoAdvance = DefaultAutoAdvance
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}

	input := textinput.New()
	input.Placeholder = "请输入你的名字"
	input.CharLimit = 32
	input.Focus()

	review := table.New(
		table.WithColumns(reviewColumns(defaultWidth)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithWidth(defaultWidth),
		table.WithHeight(10),
	)
	review.SetStyles(tableStyles(opts.NoColor))

	m := Model{
		opts:      opts,
		screen:    ScreenName,
		nameInput: input,
		review:    review,
		clock:     opts.Now(),
	}
	if opts.Lookup == nil {
		m.addrReady = true
	}
	if name := strings.TrimSpace(opts.Player); name != "" {
		m, _ = m.startQuiz(name)
	}
	return m
}

// Init starts the address lookup and, if a quiz is already running, the clock.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{lookupCmd(m.opts.Context, m.opts.Lookup)}
	switch m.screen {
	case ScreenName:
		cmds = append(cmds, textinput.Blink)
	case ScreenQuestion:
		cmds = append(cmds, tick(m.opts.TickInterval, m.session.ID))
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.review.SetWidth(typed.Width)
		m.review.SetHeight(max(typed.Height-12, 3))
		m.review.SetColumns(reviewColumns(typed.Width))
		return m, nil
	case lookupMsg:
		m.clientAddr = typed.addr
		m.addrReady = true
		if m.screen == ScreenResults && m.result.ClientAddr == PendingAddrText {
			m.result.ClientAddr = typed.addr
			if last := len(m.results) - 1; last >= 0 && m.results[last].SessionID == m.result.SessionID {
				m.results[last].ClientAddr = typed.addr
			}
		}
		return m, nil
	case tickMsg:
		if typed.sessionID != m.session.ID || m.session.Finished() {
			return m, nil
		}
		m.clock = m.opts.Now()
		return m, tick(m.opts.TickInterval, m.session.ID)
	case advanceMsg:
		return m.autoAdvance(typed)
	case tea.KeyMsg:
		switch m.screen {
		case ScreenName:
			return m.updateName(typed)
		case ScreenQuestion:
			return m.updateQuestion(typed)
		case ScreenResults:
			return m.updateResults(typed)
		}
	}
	if m.screen == ScreenName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case ScreenQuestion:
		return renderQuestion(m)
	case ScreenResults:
		return renderResults(m)
	default:
		return renderName(m)
	}
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Session returns the current session.
func (m Model) Session() quiz.Session { return m.session }

// Results returns every finished results sheet in order.
func (m Model) Results() []quiz.Result {
	out := make([]quiz.Result, len(m.results))
	copy(out, m.results)
	return out
}

// Notices returns messages shown to the player outside the quiz itself.
func (m Model) Notices() []string {
	out := make([]string, len(m.notices))
	copy(out, m.notices)
	return out
}

// lookupMsg delivers the resolved client address.
type lookupMsg struct {
	addr string
}

// tickMsg refreshes the elapsed time display of one session.
type tickMsg struct {
	sessionID string
}

// advanceMsg moves past an answered question unless the player already navigated.
type advanceMsg struct {
	sessionID string
	position  int
}

// lookupCmd resolves the client address off the event loop.
func lookupCmd(ctx context.Context, lookup AddrFunc) tea.Cmd {
	if lookup == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		return lookupMsg{addr: lookup(ctx)}
	}
}

// tick emits a clock tick for a session after interval.
func tick(interval time.Duration, sessionID string) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{sessionID: sessionID} })
}

// scheduleAdvance emits an advanceMsg after delay.
func scheduleAdvance(delay time.Duration, session quiz.Session) tea.Cmd {
	msg := advanceMsg{sessionID: session.ID, position: session.Position()}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}
