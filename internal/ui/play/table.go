package play

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"shici/internal/quiz"
)

// defaultWidth is assumed until the terminal reports its size.
const defaultWidth = 80

// tableStyles returns review table styles.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// reviewColumns sizes the review columns for the terminal width.
func reviewColumns(width int) []table.Column {
	if width <= 0 {
		width = defaultWidth
	}
	text := max((width-12)/3, 10)
	return []table.Column{
		{Title: "题号", Width: 4},
		{Title: "题目", Width: text},
		{Title: "你的答案", Width: text},
		{Title: "正确答案", Width: text},
	}
}

// reviewRows converts missed questions into table rows.
func reviewRows(review quiz.Review) []table.Row {
	rows := make([]table.Row, 0, len(review.Items))
	for _, item := range review.Items {
		rows = append(rows, table.Row{
			strconv.Itoa(item.Index + 1),
			item.Prompt,
			item.Given(),
			item.Answer,
		})
	}
	return rows
}
