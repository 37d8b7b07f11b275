// Package tui renders the chat client: sidebar, message viewport and input
// bar, all driven by the conversation-state core. Every state mutation
// happens inside Update; the only work done off the event loop is the agent
// call itself, issued as a tea.Cmd.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatterpal/internal/domain"
	"chatterpal/internal/integrations/agent"
	"chatterpal/internal/markdown"
	"chatterpal/internal/usecase"
)

var suggestionChips = []string{
	"Tell me a joke",
	"How is your day?",
	"I need advice",
	"Let us chat about something fun",
}

// agentReplyMsg carries the agent outcome for an in-flight request back
// onto the event loop.
type agentReplyMsg struct {
	req usecase.SendRequest
	res agent.Result
	err error
}

// Model is the bubbletea model for the whole client.
type Model struct {
	svc      *usecase.ChatService
	input    textarea.Model
	viewport viewport.Model
	spin     spinner.Model
	width    int
	height   int
	ready    bool
}

func New(svc *usecase.ChatService) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message... (Enter to send)"
	ta.Focus()
	ta.CharLimit = 8000
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return &Model{svc: svc, input: ta, spin: sp}
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := m.height - chromeHeight
		if bodyHeight < minBodyHeight {
			bodyHeight = minBodyHeight
		}
		if !m.ready {
			m.viewport = viewport.New(m.chatWidth(), bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.chatWidth()
			m.viewport.Height = bodyHeight
		}
		m.input.SetWidth(m.chatWidth() - 2)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case agentReplyMsg:
		m.finish(msg)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.svc.InFlight() {
			m.refresh()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.svc.SetDraft(m.input.Value())
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		return m.send(m.input.Value())

	case "ctrl+n":
		if m.svc.NewConversation() {
			m.input.Reset()
			m.refresh()
		}
		return m, nil

	case "ctrl+d":
		if m.svc.DeleteConversation(m.svc.ActiveID()) {
			m.refresh()
		}
		return m, nil

	case "tab", "shift+tab":
		m.cycleConversation(msg.String() == "tab")
		m.refresh()
		return m, nil

	case "ctrl+s":
		m.svc.SetSampleMode(context.Background(), !m.svc.SampleMode())
		m.refresh()
		return m, nil

	case "ctrl+r":
		if req, ok := m.svc.BeginRetry(); ok {
			m.refresh()
			return m, tea.Batch(m.spin.Tick, m.invoke(req))
		}
		return m, nil

	case "f1", "f2", "f3", "f4":
		// Suggestion chips on the welcome screen.
		if active := m.svc.Active(); active == nil || len(active.Messages) == 0 {
			idx := int(msg.String()[1] - '1')
			return m.send(suggestionChips[idx])
		}
		return m, nil
	}

	if m.svc.InFlight() || m.svc.SampleMode() {
		// Input is disabled while a request is pending or the demo is shown;
		// the viewport still scrolls.
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.svc.SetDraft(m.input.Value())
	return m, cmd
}

func (m *Model) send(text string) (tea.Model, tea.Cmd) {
	req, ok := m.svc.BeginSend(text)
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.refresh()
	return m, tea.Batch(m.spin.Tick, m.invoke(req))
}

// invoke runs the network call off the event loop and feeds the outcome
// back as a message.
func (m *Model) invoke(req usecase.SendRequest) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		res, err := svc.Invoke(context.Background(), req)
		return agentReplyMsg{req: req, res: res, err: err}
	}
}

func (m *Model) finish(msg agentReplyMsg) {
	m.svc.FinishSend(msg.req.ConversationID, msg.res, msg.err)
}

func (m *Model) cycleConversation(forward bool) {
	convos := m.svc.Visible()
	if len(convos) == 0 {
		return
	}
	cur := 0
	for i, c := range convos {
		if c.ID == m.svc.ActiveID() {
			cur = i
			break
		}
	}
	if forward {
		cur = (cur + 1) % len(convos)
	} else {
		cur = (cur - 1 + len(convos)) % len(convos)
	}
	m.svc.SelectConversation(convos[cur].ID)
}

// refresh rebuilds the viewport content from the state core.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *Model) chatWidth() int {
	w := m.width - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) renderMessages() string {
	active := m.svc.Active()
	if active == nil || len(active.Messages) == 0 {
		return m.renderWelcome()
	}

	now := time.Now()
	var b strings.Builder
	for _, msg := range active.Messages {
		label := assistantLabelStyle.Render("Friend")
		body := renderBlocks(markdown.Render(msg.Content))
		if msg.Role == domain.RoleUser {
			label = userLabelStyle.Render("You")
			body = msg.Content
		}
		if msg.Error {
			body = errorTextStyle.Render(msg.Content)
		}
		ts := timestampStyle.Render(domain.RelativeTime(msg.Timestamp, now))
		b.WriteString(label + " " + ts + "\n" + body + "\n\n")
	}

	if m.svc.InFlight() {
		b.WriteString(m.spin.View() + statusStyle.Render("Friend Agent responding..."))
	} else if last := active.LastMessage(); last != nil && last.Error && last.Role == domain.RoleAssistant {
		b.WriteString(hintStyle.Render("Last reply failed. Press ctrl+r to retry."))
	}
	return b.String()
}

func (m *Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(welcomeStyle.Render("Hey! I am your AI friend."))
	b.WriteString("\n")
	b.WriteString(chipStyle.Render("What is on your mind? I am here to chat, share a laugh, give advice, or just keep you company."))
	b.WriteString("\n\n")
	for i, chip := range suggestionChips {
		b.WriteString(chipStyle.Render(fmt.Sprintf("F%d  %s", i+1, chip)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderSidebar() string {
	now := time.Now()
	var b strings.Builder
	b.WriteString(headerStyle.Render("ChatterPal"))
	b.WriteString("\n\n")
	convos := m.svc.Visible()
	if len(convos) == 0 {
		b.WriteString(convoMetaStyle.Render("No conversations yet"))
	}
	for _, c := range convos {
		title := c.Title
		if title == "" {
			title = domain.DefaultTitle
		}
		style := convoTitleStyle
		if c.ID == m.svc.ActiveID() {
			style = convoActiveStyle
		}
		b.WriteString(style.Render(domain.Truncate(title, sidebarWidth-4)))
		b.WriteString("\n")
		if last := c.LastMessage(); last != nil {
			b.WriteString(convoMetaStyle.Render(domain.Truncate(last.Content, previewLimit)))
			b.WriteString("\n")
		}
		b.WriteString(convoMetaStyle.Render(domain.RelativeTime(c.UpdatedAt, now)))
		b.WriteString("\n\n")
	}
	return sidebarStyle.Height(m.height).Render(b.String())
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	mode := "live"
	if m.svc.SampleMode() {
		mode = "sample data (read-only)"
	}
	header := headerStyle.Render("ChatterPal") + statusStyle.Render("● online | "+mode)

	hint := hintStyle.Render("enter send · ctrl+n new · ctrl+d delete · tab switch · ctrl+s sample · ctrl+r retry · ctrl+c quit")

	main := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.input.View(),
		hint,
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), main)
}
