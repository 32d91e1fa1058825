package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TapPickerModel - Interactive tap selection for ambiguous names
// =============================================================================

// TapPickerModel is the bubbletea model that lets the user choose which
// tap's formula a bare name refers to.
type TapPickerModel struct {
	Name       string   // The ambiguous bare name
	Candidates []string // Fully-qualified candidates
	Cursor     int
	Selected   string // Chosen candidate, empty until enter is pressed
	Height     int
	Offset     int
}

// NewTapPickerModel creates a picker over the candidates of an ambiguous name.
func NewTapPickerModel(name string, candidates []string) TapPickerModel {
	return TapPickerModel{
		Name:       name,
		Candidates: candidates,
		Height:     10,
	}
}

func (m TapPickerModel) Init() tea.Cmd {
	return nil
}

func (m TapPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Candidates) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Candidates[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 3)
	}
	return m, nil
}

func (m TapPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Several taps provide %q", m.Name)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Candidates))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		tapName, _, _ := tap.SplitQualified(m.Candidates[i])
		rows = append(rows, []string{cursor, m.Candidates[i], tapName})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Formula", "Tap").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))))

	return b.String()
}

// =============================================================================
// Picker Helpers
// =============================================================================

// pickFormula runs the picker on in/out and returns the chosen full name, or
// "" when the user quit without choosing.
func pickFormula(in io.Reader, out io.Writer, amb *brewerrors.AmbiguousFormulaError) (string, error) {
	p := tea.NewProgram(
		NewTapPickerModel(amb.Name, amb.Candidates),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	return final.(TapPickerModel).Selected, nil
}

// withPicker calls fn with names. When interactive is set and fn reports an
// ambiguous root name, the user picks a tap and fn is retried with the
// qualified name. Ambiguous transitive names are returned unchanged.
func (c *CLI) withPicker(cmd *cobra.Command, interactive bool, names []string, fn func([]string) error) error {
	names = slices.Clone(names)
	for {
		err := fn(names)
		var amb *brewerrors.AmbiguousFormulaError
		if !interactive || !errors.As(err, &amb) {
			return err
		}
		i := slices.Index(names, amb.Name)
		if i < 0 {
			return err
		}
		choice, perr := pickFormula(cmd.InOrStdin(), cmd.ErrOrStderr(), amb)
		if perr != nil {
			return perr
		}
		if choice == "" {
			return err
		}
		c.Logger.Debug("picked formula", "name", amb.Name, "choice", choice)
		names[i] = choice
	}
}
