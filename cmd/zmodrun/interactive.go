package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zshmod/zsh-runtime/builtins"
	"github.com/zshmod/zsh-runtime/params"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	builtinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type replState int

const (
	stateSelectBuiltin replState = iota
	stateInputArgs
	stateShowResult
)

type replModel struct {
	harness   *harness
	err       error
	builtins  []string
	input     textinput.Model
	selected  int
	status    int32
	paramDump []string
	state     replState
}

func newReplModel(hn *harness) *replModel {
	var names []string
	for _, f := range hn.features {
		// Feature names are prefixed by kind; builtins carry "b:".
		if rest, ok := strings.CutPrefix(f, "b:"); ok {
			names = append(names, rest)
		}
	}

	ti := textinput.New()
	ti.Placeholder = "arguments"
	ti.Prompt = "args: "
	ti.Width = 40

	return &replModel{
		harness:  hn,
		builtins: names,
		input:    ti,
		state:    stateSelectBuiltin,
	}
}

func (m *replModel) Init() tea.Cmd {
	return nil
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectBuiltin && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectBuiltin && m.selected < len(m.builtins)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectBuiltin:
				if len(m.builtins) == 0 {
					return m, nil
				}
				m.input.SetValue("")
				m.input.Focus()
				m.state = stateInputArgs

			case stateInputArgs:
				m.dispatch()
				m.state = stateShowResult

			case stateShowResult:
				m.state = stateSelectBuiltin
				m.err = nil
			}

		case "esc":
			if m.state != stateSelectBuiltin {
				m.state = stateSelectBuiltin
				m.err = nil
			}
		}
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *replModel) dispatch() {
	name := m.builtins[m.selected]
	m.status = builtins.Dispatch(name, splitArgs(m.input.Value()))

	m.paramDump = nil
	for _, p := range []string{"GREETER_LAST", "GREETER_COUNT", "GREETER_PROMPTS"} {
		value, err := params.Any(p).GetString()
		if err != nil {
			continue
		}
		m.paramDump = append(m.paramDump, p+"="+value)
	}
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Module Workbench"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectBuiltin:
		if len(m.builtins) == 0 {
			b.WriteString("Module exports no builtins.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a builtin to dispatch:\n\n")
		for i, name := range m.builtins {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + name))
			} else {
				b.WriteString(cursor + builtinStyle.Render(name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter dispatch • q quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Dispatching %s\n\n", builtinStyle.Render(m.builtins[m.selected])))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter dispatch • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", builtinStyle.Render(m.builtins[m.selected])))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(fmt.Sprintf("status %d", m.status)))
			for _, line := range m.paramDump {
				b.WriteString("\n  " + line)
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively dispatch the module's builtins",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("repl requires a terminal")
			}

			hn := newHarness()
			if err := hn.load(); err != nil {
				return err
			}

			p := tea.NewProgram(newReplModel(hn), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return hn.unload()
		},
	}
}
