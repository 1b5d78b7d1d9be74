// Package tui implements the interactive terminal chat session.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driving"
)

// askTimeout bounds a single question from the TUI.
const askTimeout = 2 * time.Minute

// role identifies who produced a transcript line.
type role int

const (
	roleUser role = iota
	roleAssistant
	roleError
)

// message is one transcript entry.
type message struct {
	role role
	text string
}

// answerMsg delivers a completed answer to the update loop.
type answerMsg struct {
	text string
}

// answerErrMsg delivers a pipeline failure to the update loop.
type answerErrMsg struct {
	err error
}

// Model is the bubbletea model for the chat session.
type Model struct {
	chat driving.ChatService

	viewport viewport.Model
	input    textinput.Model

	messages []message
	language domain.Language
	waiting  bool
	ready    bool

	width  int
	height int
}

// New creates the chat model.
func New(chat driving.ChatService) Model {
	input := textinput.New()
	input.Placeholder = "Ask a legal question..."
	input.CharLimit = 2000
	input.Focus()

	m := Model{
		chat:     chat,
		input:    input,
		language: domain.LanguageEnglish,
	}

	if ok, reason := chat.Ready(); !ok {
		m.messages = append(m.messages, message{role: roleError, text: reason})
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.toggleLanguage()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case answerMsg:
		m.waiting = false
		m.append(message{role: roleAssistant, text: msg.text})
		return m, nil

	case answerErrMsg:
		m.waiting = false
		m.append(message{role: roleError, text: msg.err.Error()})
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting chat..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Lawgic"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter send · ctrl+l language · esc quit"))
	return b.String()
}

// Language returns the currently selected conversation language.
func (m Model) Language() domain.Language {
	return m.language
}

// Waiting reports whether a question is in flight.
func (m Model) Waiting() bool {
	return m.waiting
}

// submit sends the typed question through the pipeline.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.input.Reset()
	m.append(message{role: roleUser, text: text})
	m.waiting = true

	chat := m.chat
	query := domain.Query{Text: text, Language: m.language}
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		answer, err := chat.Ask(ctx, "", query)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerMsg{text: answer.Text}
	}
}

func (m *Model) toggleLanguage() {
	if m.language == domain.LanguageEnglish {
		m.language = domain.LanguageHindi
	} else {
		m.language = domain.LanguageEnglish
	}
}

func (m *Model) append(msg message) {
	m.messages = append(m.messages, msg)
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m *Model) layout() {
	// Title, input and help each take one line plus spacing.
	const chrome = 4
	height := m.height - chrome
	if height < 1 {
		height = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.input.Width = m.width - 4
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) statusLine() string {
	status := string(m.language)
	if m.waiting {
		status += " · thinking..."
	}
	return status
}

func (m Model) transcript() string {
	if len(m.messages) == 0 {
		return emptyStyle.Render("No messages yet. Ask about an act, a section or a procedure.")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.role {
		case roleUser:
			b.WriteString(userStyle.Render("You: "))
			b.WriteString(msg.text)
		case roleAssistant:
			b.WriteString(assistantStyle.Render("Lawgic: "))
			b.WriteString(msg.text)
		case roleError:
			b.WriteString(errorStyle.Width(width).Render(msg.text))
		}
	}
	return b.String()
}
