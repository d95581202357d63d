package play

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shici/internal/quiz"
)

// startQuiz generates a fresh quiz for name and enters the question screen.
func (m Model) startQuiz(name string) (Model, tea.Cmd) {
	m.player = name
	m.nameError = ""
	m.flipped = false
	m.fatal = ""
	m.shortBy = 0

	questions := quiz.Generate(m.opts.Poems, m.opts.Rand, m.opts.Quiz)
	session, err := quiz.NewSession(name, questions, m.opts.Now())
	if err != nil {
		m.fatal = NoQuestionsText
		m.screen = ScreenResults
		m.session = quiz.Session{}
		return m, nil
	}
	if short := m.opts.expectedQuestions() - len(questions); short > 0 {
		m.shortBy = short
	}
	m.session = session
	m.clock = m.opts.Now()
	m.screen = ScreenQuestion
	return m, tick(m.opts.TickInterval, session.ID)
}

// updateName handles the name entry screen.
func (m Model) updateName(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.nameError = NameRequiredText
			return m, nil
		}
		m.nameInput.Blur()
		return m.startQuiz(name)
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(key)
	if strings.TrimSpace(m.nameInput.Value()) != "" {
		m.nameError = ""
	}
	return m, cmd
}

// updateQuestion handles answering and navigation.
func (m Model) updateQuestion(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3", "4", "a", "b", "c", "d", "A", "B", "C", "D":
		return m.answer(OptionIndex(key.String()))
	case "n", "right", "l":
		return m.moveTo(m.session.Advance()), nil
	case "p", "left", "h":
		return m.moveTo(m.session.Retreat()), nil
	case "enter":
		next := m.session.Next(m.opts.Now())
		if next.Finished() {
			return m.finish(next)
		}
		return m.moveTo(next), nil
	case "f":
		return m.finish(m.session.Finish(m.opts.Now()))
	case " ":
		m.flipped = !m.flipped
		return m, nil
	}
	return m, nil
}

// updateResults handles the results screen.
func (m Model) updateResults(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "r":
		if m.player == "" {
			return m, nil
		}
		return m.startQuiz(m.player)
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		m.review.Focus()
		m.review, cmd = m.review.Update(key)
		return m, cmd
	}
	return m, nil
}

// answer submits an option and schedules the automatic advance.
func (m Model) answer(index int) (tea.Model, tea.Cmd) {
	next, err := m.session.SubmitOption(index)
	if err != nil {
		return m, nil
	}
	m.session = next
	return m, scheduleAdvance(m.opts.AutoAdvance, next)
}

// autoAdvance moves on after an answer unless the player already navigated.
func (m Model) autoAdvance(msg advanceMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenQuestion || msg.sessionID != m.session.ID || msg.position != m.session.Position() {
		return m, nil
	}
	next := m.session.Next(m.opts.Now())
	if next.Finished() {
		return m.finish(next)
	}
	return m.moveTo(next), nil
}

// moveTo switches to a new position, hiding the source card when it changes.
func (m Model) moveTo(next quiz.Session) Model {
	if next.Position() != m.session.Position() {
		m.flipped = false
	}
	m.session = next
	return m
}

// finish builds the results sheet for a finished session.
func (m Model) finish(finished quiz.Session) (tea.Model, tea.Cmd) {
	m.session = finished
	m.clock = m.opts.Now()
	addr := m.clientAddr
	if !m.addrReady {
		addr = PendingAddrText
	}
	m.result = quiz.Summarize(finished, addr, m.clock)
	m.results = append(m.results, m.result)
	m.review.SetRows(reviewRows(m.result.Review))
	m.review.GotoTop()
	m.screen = ScreenResults
	if m.opts.OnFinish != nil {
		if err := m.opts.OnFinish(m.result); err != nil {
			m.notices = append(m.notices, fmt.Sprintf("保存成绩失败: %v", err))
		}
	}
	return m, nil
}

// OptionIndex maps 1-4, a-d and A-D to option positions, or -1.
func OptionIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	ch := key[0]
	switch {
	case ch >= '1' && ch <= '4':
		return int(ch - '1')
	case ch >= 'a' && ch <= 'd':
		return int(ch - 'a')
	case ch >= 'A' && ch <= 'D':
		return int(ch - 'A')
	}
	return -1
}
