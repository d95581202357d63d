package play

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shici/internal/corpus"
	"shici/internal/quiz"
)

// Palette.
var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("244")
	colorHint    = lipgloss.Color("39")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorWarn    = lipgloss.Color("220")
	colorCard    = lipgloss.Color("180")
)

// renderName renders the name entry screen.
func renderName(m Model) string {
	lines := []string{
		stylize("诗词接龙", m.opts.NoColor, colorTitle),
		"",
		"你的名字：" + m.nameInput.View(),
	}
	if m.nameError != "" {
		lines = append(lines, stylize(m.nameError, m.opts.NoColor, colorWrong))
	}
	lines = append(lines, "", stylize("回车开始 · esc 退出", m.opts.NoColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderQuestion renders the current question with its options.
func renderQuestion(m Model) string {
	session := m.session
	question := session.Current()
	noColor := m.opts.NoColor

	header := fmt.Sprintf("%s | 用时 %s | 得分 %d | IP %s",
		m.player, quiz.FormatClock(session.Elapsed(m.clock)), session.Score(), m.addrText())
	progress := fmt.Sprintf("第 %d / %d 题 · %s", session.Position()+1, session.Len(), question.Direction.Hint())

	lines := []string{
		stylize(header, noColor, colorTitle),
		stylize(progress, noColor, colorHint),
		"",
		"  「" + question.Prompt + "」",
		"",
	}
	for i, option := range question.Options {
		lines = append(lines, renderOption(question, i, option, noColor))
	}
	lines = append(lines, "", renderCard(m, question))
	if m.shortBy > 0 {
		lines = append(lines, stylize(ShortfallText(session.Len(), m.opts.expectedQuestions()), noColor, colorWarn))
	}
	footer := "1-4 作答 · n/p 下一题/上一题 · 回车 下一题 · f 交卷 · 空格 翻看出处 · q 退出"
	if session.AtLast() {
		footer = "1-4 作答 · p 上一题 · 回车/f 交卷 · 空格 翻看出处 · q 退出"
	}
	lines = append(lines, "", stylize(footer, noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderOption renders one lettered option, marking the outcome once answered.
func renderOption(question quiz.Question, index int, option string, noColor bool) string {
	label := "  " + OptionLabel(index) + ". " + option
	if !question.Answered {
		return label
	}
	switch {
	case option == question.Answer:
		return stylize(label+"  ✓", noColor, colorCorrect)
	case option == question.UserAnswer:
		return stylize(label+"  ✗", noColor, colorWrong)
	default:
		return stylize(label, noColor, colorMuted)
	}
}

// renderCard shows the source poem when flipped.
func renderCard(m Model, question quiz.Question) string {
	if !m.flipped {
		return stylize("［空格翻看出处］", m.opts.NoColor, colorMuted)
	}
	if question.PoemIndex < 0 || question.PoemIndex >= len(m.opts.Poems) {
		return ""
	}
	card := SourceText(m.opts.Poems[question.PoemIndex])
	if m.opts.NoColor {
		return card
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCard).
		Padding(0, 1).
		Render(card)
}

// SourceText names a poem as 《title》 〔dynasty〕 author.
func SourceText(poem corpus.Poem) string {
	parts := []string{"《" + poem.Title + "》"}
	if poem.Dynasty != "" {
		parts = append(parts, "〔"+poem.Dynasty+"〕")
	}
	if poem.Author != "" {
		parts = append(parts, poem.Author)
	}
	return strings.Join(parts, " ")
}

// renderResults renders the results sheet.
func renderResults(m Model) string {
	noColor := m.opts.NoColor
	if m.fatal != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			stylize(m.fatal, noColor, colorWrong),
			"",
			stylize("q 退出", noColor, colorMuted))
	}
	result := m.result
	lines := []string{
		stylize("答题结果", noColor, colorTitle),
		"",
		"姓名：" + result.Player,
		"IP 地址：" + result.ClientAddr,
		"结束时间：" + result.FinishedAt.Format(quiz.EndTimeLayout),
		"得分：" + strconv.Itoa(result.Score) + " / " + strconv.Itoa(result.Total),
		"用时：" + quiz.FormatClock(result.Elapsed),
		"",
	}
	if result.Review.Perfect {
		lines = append(lines, stylize(quiz.PerfectText, noColor, colorCorrect))
	} else {
		lines = append(lines, stylize("错题回顾", noColor, colorHint), m.review.View())
	}
	if m.shortBy > 0 {
		lines = append(lines, stylize(ShortfallText(result.Total, m.opts.expectedQuestions()), noColor, colorWarn))
	}
	for _, notice := range m.notices {
		lines = append(lines, stylize(notice, noColor, colorWarn))
	}
	lines = append(lines, "", stylize("r 再来一次 · q 退出", noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// addrText returns the client address or the pending label.
func (m Model) addrText() string {
	if !m.addrReady {
		return PendingAddrText
	}
	return m.clientAddr
}

// ShortfallText explains a quiz that came out shorter than configured.
func ShortfallText(got, want int) string {
	return fmt.Sprintf("题库可用诗句不足，本次仅生成 %d / %d 题。", got, want)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
