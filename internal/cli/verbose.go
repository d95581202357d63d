package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const verbosePrefix = "[verbose]"

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleSession
	styleStore
	styleError
)

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

type verbosePalette struct {
	enabled  bool
	renderer *lipgloss.Renderer
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor || !shouldUseStyling(writer) {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: true, renderer: lipgloss.NewRenderer(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return isTerminal(writer)
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return p.renderer.NewStyle().Faint(true).Foreground(lipgloss.Color("8")).Render(text)
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	base := p.renderer.NewStyle().Bold(true)
	switch style {
	case styleSession:
		return base.Foreground(lipgloss.Color("4")).Render(text)
	case styleStore:
		return base.Foreground(lipgloss.Color("2")).Render(text)
	case styleError:
		return base.Foreground(lipgloss.Color("1")).Render(text)
	default:
		return text
	}
}
