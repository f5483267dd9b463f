package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/js-runtime/capi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxEntries bounds the scrollback kept on screen.
const maxEntries = 50

const replOrigin = "<repl>"

type entry struct {
	source  string
	output  string
	failed  bool
	elapsed time.Duration
}

type interactiveModel struct {
	sess    *session
	input   textinput.Model
	entries []entry
	history []string
	histIdx int
	running bool
}

type evalMsg struct {
	source string
	res    result
}

func newInteractiveModel(sess *session) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("> ")
	ti.Placeholder = "JavaScript, or .stats .clear .exit"
	ti.Width = 80
	ti.Focus()

	return &interactiveModel{sess: sess, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.running {
				capi.IsolateTerminateExecution(m.sess.iso)
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+d":
			if m.input.Value() == "" && !m.running {
				return m, tea.Quit
			}

		case "enter":
			if m.running {
				return m, nil
			}
			return m.submit()

		case "up":
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.Reset()
			}
			return m, nil
		}

	case evalMsg:
		m.running = false
		e := entry{source: msg.source, output: msg.res.value, elapsed: msg.res.elapsed}
		if msg.res.err != nil {
			e.output = fmt.Sprintf("%+v", msg.res.err)
			e.failed = true
		}
		m.push(e)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) submit() (tea.Model, tea.Cmd) {
	source := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if source == "" {
		return m, nil
	}
	m.history = append(m.history, source)
	m.histIdx = len(m.history)

	switch source {
	case ".exit":
		return m, tea.Quit
	case ".clear":
		m.entries = nil
		return m, nil
	case ".stats":
		var b strings.Builder
		printStats(&b, m.sess.stats())
		m.push(entry{source: source, output: strings.TrimRight(b.String(), "\n")})
		return m, nil
	}

	m.running = true
	sess := m.sess
	return m, func() tea.Msg {
		return evalMsg{source: source, res: sess.eval(source, replOrigin, true)}
	}
}

func (m *interactiveModel) push(e entry) {
	m.entries = append(m.entries, e)
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("JS Runner"))
	b.WriteString(" ")
	b.WriteString(capi.Version())
	b.WriteString("\n\n")

	for _, e := range m.entries {
		b.WriteString(promptStyle.Render("> "))
		b.WriteString(e.source)
		b.WriteString("\n")
		if e.failed {
			b.WriteString(errorStyle.Render(e.output))
		} else {
			b.WriteString(resultStyle.Render(e.output))
		}
		if e.elapsed > 0 {
			b.WriteString(" ")
			b.WriteString(helpStyle.Render(e.elapsed.Round(time.Microsecond).String()))
		}
		b.WriteString("\n")
	}

	if m.running {
		b.WriteString(helpStyle.Render("running... ctrl+c terminates"))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter run • ↑/↓ history • ctrl+c quit"))

	return b.String()
}

func runInteractive(sess *session) error {
	p := tea.NewProgram(newInteractiveModel(sess))
	_, err := p.Run()
	return err
}
