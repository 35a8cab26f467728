// Package tui implements the interactive chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/devyanip/sarathi/internal/client"
)

// Theme holds the color scheme for the chat display.
type Theme struct {
	Persona lipgloss.Color
	User    lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Notice  lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Persona: lipgloss.Color("#FFAF5F"), // saffron
	User:    lipgloss.Color("#5FAFD7"), // light blue
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Notice:  lipgloss.Color("#D7AF00"), // amber
}

func (t Theme) personaStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Persona).Bold(true)
}

func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) noticeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Notice).Italic(true)
}

// chatLine is one rendered exchange entry.
type chatLine struct {
	speaker string
	text    string
	notice  bool
}

// startedMsg carries the conversation created at startup.
type startedMsg struct {
	conversationID string
	personaName    string
	starter        string
	err            error
}

// replyMsg carries the persona's reply to the last message.
type replyMsg struct {
	reply *client.ChatReply
	err   error
}

// Model is the bubbletea model for the chat session.
type Model struct {
	client         *client.Client
	conversationID string
	personaName    string
	lines          []chatLine
	input          textinput.Model
	spinner        spinner.Model
	theme          Theme
	width          int
	height         int
	waiting        bool
	starting       bool
	quitting       bool
	err            error
}

// NewModel creates a chat model talking to the given server.
func NewModel(c *client.Client) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask your question..."

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:   c,
		input:    ti,
		spinner:  sp,
		theme:    defaultTheme,
		width:    80,
		height:   24,
		starting: true,
	}
}

// Init starts the conversation and focuses the input.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startConversation(),
		m.input.Focus(),
		m.spinner.Tick,
	)
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}

	case startedMsg:
		m.starting = false
		if msg.err != nil {
			m.err = fmt.Errorf("failed to start conversation: %w", msg.err)
			return m, tea.Quit
		}
		m.conversationID = msg.conversationID
		m.personaName = msg.personaName
		if msg.starter != "" {
			m.lines = append(m.lines, chatLine{speaker: "", text: "Try: " + msg.starter, notice: true})
		}
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.lines = append(m.lines, chatLine{speaker: "", text: msg.err.Error(), notice: true})
			return m, nil
		}
		m.lines = append(m.lines, chatLine{speaker: m.personaName, text: msg.reply.Response})
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the typed message, if any.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting || m.starting {
		return m, nil
	}

	m.lines = append(m.lines, chatLine{speaker: "You", text: text})
	m.input.Reset()
	m.waiting = true

	return m, tea.Batch(m.sendMessage(text), m.spinner.Tick)
}

// View renders the chat display.
func (m Model) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m Model) renderContent() string {
	if m.quitting {
		return m.theme.hintStyle().Render("Namaste.\n")
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("✗ %s\n", m.err))
	}
	if m.starting {
		return fmt.Sprintf("%s Connecting...\n", m.spinner.View())
	}

	var b strings.Builder

	header := m.theme.personaStyle().Render(m.personaName) +
		m.theme.hintStyle().Render("  ("+m.conversationID+")")
	b.WriteString(header + "\n\n")

	wrap := lipgloss.NewStyle().Width(max(20, m.width-4))
	for _, line := range m.lines {
		switch {
		case line.notice:
			b.WriteString(m.theme.noticeStyle().Render(wrap.Render(line.text)) + "\n\n")
		case line.speaker == "You":
			b.WriteString(m.theme.userStyle().Render("You: ") + wrap.Render(line.text) + "\n\n")
		default:
			b.WriteString(m.theme.personaStyle().Render(line.speaker+": ") + wrap.Render(line.text) + "\n\n")
		}
	}

	if m.waiting {
		b.WriteString(m.spinner.View() + " thinking...\n\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.theme.hintStyle().Render("Enter to send • Esc to quit") + "\n")

	return b.String()
}

// startConversation creates the conversation on the server.
// Runs as a command to avoid blocking Update().
func (m Model) startConversation() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()

		started, err := c.StartConversation(ctx, nil)
		if err != nil {
			return startedMsg{err: err}
		}

		// The starter hint is cosmetic; ignore failures fetching it.
		var starter string
		if info, err := c.Persona(ctx); err == nil {
			starter = info.RandomStarter
		}

		return startedMsg{
			conversationID: started.ConversationID,
			personaName:    started.Persona.Name,
			starter:        starter,
		}
	}
}

// sendMessage sends one chat turn to the server.
func (m Model) sendMessage(text string) tea.Cmd {
	c := m.client
	conversationID := m.conversationID
	return func() tea.Msg {
		reply, err := c.Chat(context.Background(), conversationID, text)
		if err != nil {
			return replyMsg{err: err}
		}
		return replyMsg{reply: reply}
	}
}
