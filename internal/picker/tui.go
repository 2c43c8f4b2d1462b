package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// TUI is a Selector that runs a terminal picker with fuzzy filtering.
// Pressing enter when the filter matches nothing returns len(previews).
type TUI struct {
	Prompt string
	// Input and Output default to the process stdin and stderr, keeping
	// stdout free for scripting.
	Input  io.Reader
	Output io.Writer
}

func (t *TUI) Select(ctx context.Context, previews []string, preselect int) (int, bool, error) {
	if len(previews) == 0 {
		return 0, false, nil
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.Input != nil {
		opts = append(opts, tea.WithInput(t.Input))
	}
	if t.Output != nil {
		opts = append(opts, tea.WithOutput(t.Output))
	} else {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}

	final, err := tea.NewProgram(newModel(previews, preselect, t.Prompt), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return 0, false, ctx.Err()
		}
		return 0, false, fmt.Errorf("picker: %w", err)
	}

	m := final.(model)
	if !m.done {
		return 0, false, nil
	}
	return m.chosen, true, nil
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

const defaultRows = 10

type model struct {
	input    textinput.Model
	previews []string
	filtered []int
	cursor   int
	rows     int

	done   bool
	chosen int
}

func newModel(previews []string, preselect int, prompt string) model {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	if prompt != "" {
		ti.Prompt = prompt + " "
	}
	ti.Focus()

	all := make([]int, len(previews))
	for i := range previews {
		all[i] = i
	}

	m := model{
		input:    ti,
		previews: previews,
		filtered: all,
		rows:     defaultRows,
	}
	if preselect >= 0 && preselect < len(previews) {
		m.cursor = preselect
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// prompt line + trailing newline
		m.rows = max(msg.Height-2, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.done = true
			if len(m.filtered) == 0 {
				m.chosen = len(m.previews)
			} else {
				m.chosen = m.filtered[m.cursor]
			}
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != prev {
		m.refilter(q)
	}
	return m, cmd
}

func (m *model) refilter(query string) {
	m.cursor = 0
	if query == "" {
		m.filtered = make([]int, len(m.previews))
		for i := range m.previews {
			m.filtered[i] = i
		}
		return
	}
	matches := fuzzy.Find(query, m.previews)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(emptyStyle.Render("  no matches"))
		b.WriteString("\n")
		return b.String()
	}

	start := 0
	if m.cursor >= m.rows {
		start = m.cursor - m.rows + 1
	}
	end := min(start+m.rows, len(m.filtered))
	for i := start; i < end; i++ {
		idx := m.filtered[i]
		line := fmt.Sprintf("%s %s", indexStyle.Render(fmt.Sprintf("%3d", idx)), m.previews[idx])
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
