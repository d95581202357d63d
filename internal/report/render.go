package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"shici/internal/ledger"
	"shici/internal/quiz"
)

// RenderString renders a component into a string.
func RenderString(ctx context.Context, component templ.Component) (string, error) {
	var builder strings.Builder
	if err := component.Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// ResultPage is the standalone document for one results sheet.
func ResultPage(result quiz.Result) templ.Component {
	return Page("答题结果 - "+result.Player, ResultSheet(result))
}

// HistoryPage is the standalone document for the history listing.
func HistoryPage(entries []ledger.Entry) templ.Component {
	return Page("历史成绩", HistoryTable(entries))
}

// WriteResultFile writes a results sheet page to path.
func WriteResultFile(ctx context.Context, path string, result quiz.Result) error {
	html, err := RenderString(ctx, ResultPage(result))
	if err != nil {
		return fmt.Errorf("render result sheet: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write result sheet: %w", err)
	}
	return nil
}
