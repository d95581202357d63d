package play

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives the model on a terminal until the player quits and returns the final model.
func Run(ctx context.Context, model Model, in io.Reader, out io.Writer) (Model, error) {
	options := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if in != nil {
		options = append(options, tea.WithInput(in))
	}
	if out != nil {
		options = append(options, tea.WithOutput(out))
	}
	final, err := tea.NewProgram(model, options...).Run()
	if err != nil {
		return model, fmt.Errorf("run quiz ui: %w", err)
	}
	finished, ok := final.(Model)
	if !ok {
		return model, fmt.Errorf("run quiz ui: unexpected model %T", final)
	}
	return finished, nil
}
