package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	startedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
)

// lineMsg carries one newly-tailed job log line into the Update loop.
type lineMsg string

// tailErrMsg reports a fatal error from the background tailer.
type tailErrMsg error

// Model is a bubbletea program that renders a dispatchd job log as it
// grows, in the style of zjrosen/perles's logoverlay: a scrolling
// viewport plus a line buffer styled by record kind.
type Model struct {
	path     string
	lines    chan string
	errs     chan error
	viewport viewport.Model
	history  []string
	width    int
	height   int
}

// New builds a Model that will tail path once the bubbletea program
// starts. Call Program(path) to obtain a ready-to-run *tea.Program.
func New(path string) Model {
	return Model{
		path:     path,
		lines:    make(chan string, 256),
		errs:     make(chan error, 1),
		viewport: viewport.New(80, 20),
	}
}

// Program wraps a Model in a *tea.Program with the alt screen enabled, the
// way zjrosen/perles runs its overlay programs.
func Program(path string) *tea.Program {
	return tea.NewProgram(New(path), tea.WithAltScreen())
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(startTail(m.path, m.lines, m.errs), waitForLine(m.lines), waitForErr(m.errs))
}

func startTail(path string, lines chan string, errs chan error) tea.Cmd {
	return func() tea.Msg {
		go func() {
			if err := Tail(context.Background(), path, lines); err != nil {
				errs <- err
			}
		}()
		return nil
	}
}

func waitForLine(lines chan string) tea.Cmd {
	return func() tea.Msg {
		return lineMsg(<-lines)
	}
}

func waitForErr(errs chan error) tea.Cmd {
	return func() tea.Msg {
		return tailErrMsg(<-errs)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		m.refreshViewport()
	case lineMsg:
		m.history = append(m.history, styleLine(string(msg)))
		m.refreshViewport()
		return m, waitForLine(m.lines)
	case tailErrMsg:
		m.history = append(m.history, failedStyle.Render(fmt.Sprintf("tail error: %v", msg)))
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(strings.Join(m.history, ""))
	m.viewport.GotoBottom()
}

func styleLine(line string) string {
	switch {
	case strings.Contains(line, "failed"):
		return failedStyle.Render(line)
	case strings.Contains(line, "completed"):
		return completeStyle.Render(line)
	case strings.Contains(line, "started"):
		return startedStyle.Render(line)
	default:
		return line
	}
}

func (m Model) View() string {
	header := titleStyle.Render(fmt.Sprintf("dispatchd monitor: %s", m.path))
	footer := footerStyle.Render("q to quit")
	return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
}
