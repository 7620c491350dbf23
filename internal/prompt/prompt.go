// Package prompt implements the interactive pickers used when a scan is
// started from a terminal without an ecosystem or report format.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCancelled is returned when the picker is closed without a selection.
var ErrCancelled = errors.New("selection cancelled")

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// Model is the bubbletea model behind Choose.
type Model struct {
	title    string
	options  []string
	cursor   int
	chosen   string
	quitting bool
}

// NewModel returns a picker over options with the cursor on the first entry.
func NewModel(title string, options []string) Model {
	return Model{title: title, options: options}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Select):
		if len(m.options) > 0 {
			m.chosen = m.options[m.cursor]
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(k, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")
	for i, o := range m.options {
		if i == m.cursor {
			sb.WriteString(selectedStyle.Render("> " + o))
		} else {
			sb.WriteString(optionStyle.Render("  " + o))
		}
		sb.WriteString("\n")
	}
	help := []string{}
	for _, b := range []key.Binding{keys.Up, keys.Down, keys.Select, keys.Quit} {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	sb.WriteString("\n")
	return sb.String()
}

// Chosen returns the selected option, or "" when nothing was selected.
func (m Model) Chosen() string { return m.chosen }

// Choose runs the picker on the terminal and returns the selected option.
func Choose(title string, options []string) (string, error) {
	return run(NewModel(title, options), os.Stdin, os.Stderr)
}

func run(m Model, in io.Reader, out io.Writer) (string, error) {
	final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("error running picker: %w", err)
	}
	chosen := final.(Model).Chosen()
	if chosen == "" {
		return "", ErrCancelled
	}
	return chosen, nil
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
