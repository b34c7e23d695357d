// Package tui implements the interactive chat session using bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moneypenny/penny/internal/assistant"
	"github.com/moneypenny/penny/internal/cli"
)

// Config holds what a chat session needs to run.
type Config struct {
	Assistant *assistant.Assistant
	UserID    int
	Greeting  string
}

type replyMsg struct {
	err      error
	response string
}

type chatModel struct {
	assistant *assistant.Assistant
	ctx       context.Context
	viewport  viewport.Model
	input     textinput.Model
	history   []string
	userID    int
	width     int
	height    int
	waiting   bool
	ready     bool
	quitting  bool
}

var (
	userLineStyle      = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	assistantLineStyle = cli.AssistantStyle
	statusStyle        = cli.SubtleStyle
)

func newChatModel(ctx context.Context, cfg Config) chatModel {
	input := textinput.New()
	input.Placeholder = "spent 500 on groceries..."
	input.Prompt = "› "
	input.CharLimit = 280
	input.Focus()

	history := []string{}
	if cfg.Greeting != "" {
		history = append(history, assistantLineStyle.Render("penny: "+cfg.Greeting))
	}

	return chatModel{
		assistant: cfg.Assistant,
		ctx:       ctx,
		userID:    cfg.UserID,
		input:     input,
		history:   history,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			if text == "exit" || text == "quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.history = append(m.history, userLineStyle.Render("you: ")+text)
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, m.ask(text)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.history = append(m.history, cli.FormatError(msg.err.Error()))
		} else {
			m.history = append(m.history, assistantLineStyle.Render("penny: ")+msg.response)
		}
		m.refreshViewport()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting chat..."
	}

	header := cli.FormatTitle("Penny") + "\n"
	status := statusStyle.Render("enter to send · esc to quit")
	if m.waiting {
		status = statusStyle.Render("thinking...")
	}
	footer := fmt.Sprintf("\n%s\n%s", m.input.View(), status)

	return header + m.viewport.View() + footer
}

func (m *chatModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.history, "\n\n"))
	m.viewport.GotoBottom()
}

// ask dispatches the message off the UI goroutine.
func (m chatModel) ask(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.assistant.ProcessMessage(m.ctx, text, m.userID)
		if err != nil {
			return replyMsg{err: err}
		}
		return replyMsg{response: reply.Response}
	}
}

// Run starts the chat session and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	program := tea.NewProgram(newChatModel(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
