// Package tui provides the interactive chat interface for aide.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
)

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// replyMsg carries the assistant's reply back into the update loop.
type replyMsg struct {
	reply string
	err   error
}

// ChatModel is the Bubble Tea model for the conversational interface.
type ChatModel struct {
	assistant driving.Assistant
	ctx       context.Context

	input    textinput.Model
	viewport viewport.Model

	transcript []string
	status     string
	waiting    bool
	ready      bool
}

// NewChat creates the chat model over the given assistant.
func NewChat(ctx context.Context, assistant driving.Assistant) ChatModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents, calendar, or email"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)

	return ChatModel{
		assistant: assistant,
		ctx:       ctx,
		input:     ti,
		viewport:  vp,
		status:    "Ready. Type a message and press Enter. Esc or Ctrl+C to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m ChatModel) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - hh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.transcript = append(m.transcript, userStyle.Render("You: ")+text)
			m.input.SetValue("")
			m.waiting = true
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, m.send(text)
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.transcript = append(m.transcript, assistantStyle.Render("Aide: ")+msg.reply)
			m.status = "Ready."
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send dispatches the message to the assistant off the update loop.
func (m ChatModel) send(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.assistant.Chat(m.ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

// View renders the TUI layout.
func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("aide chat")
	history := historyBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + history + "\n" + input + "\n" + status
}

func (m ChatModel) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	return strings.Join(m.transcript, "\n\n")
}

// Run starts the chat program and blocks until it exits.
func Run(ctx context.Context, assistant driving.Assistant) error {
	p := tea.NewProgram(NewChat(ctx, assistant), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat interface: %w", err)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
