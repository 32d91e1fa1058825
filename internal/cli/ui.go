package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Exported styles are shared by the picker and the serve banner.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// marker is the leading glyph of a status line and how its text is styled.
type marker struct {
	icon string
	tint lipgloss.Style
	text *lipgloss.Style
}

var (
	markSuccess = marker{icon: iconSuccess, tint: lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = marker{icon: iconError, tint: lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = marker{icon: iconWarning, tint: StyleWarning, text: &StyleWarning}
	markInfo    = marker{icon: iconInfo, tint: lipgloss.NewStyle().Foreground(colorGray)}
)

func (m marker) println(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if m.text != nil {
		msg = m.text.Render(msg)
	}
	fmt.Fprintln(w, m.tint.Render(m.icon)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) { markSuccess.println(w, format, args...) }
func printError(w io.Writer, format string, args ...any)   { markError.println(w, format, args...) }
func printWarning(w io.Writer, format string, args ...any) { markWarning.println(w, format, args...) }
func printInfo(w io.Writer, format string, args ...any)    { markInfo.println(w, format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintf(w, "  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

// printStats prints "<count> <noun> · fresh|cached".
func printStats(w io.Writer, count int, noun string, cached bool) {
	origin := markInfo.tint.Render(iconFresh)
	if cached {
		origin = markSuccess.tint.Render(iconCached)
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("%d %s", count, noun))+sep+origin)
}

// renderTable draws rows under headers with a rounded border. The first
// column is highlighted.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleHighlight
			default:
				return StyleDim
			}
		}).
		Render()
}

// joinOrDash joins values with commas, or returns a dash for none.
func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "—"
	}
	return strings.Join(values, ", ")
}
