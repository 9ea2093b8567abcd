package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/kwextract/client"
	"github.com/a-h/kwextract/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type TUICommand struct {
	ServerURL    string `help:"The URL of the keyword extraction server." env:"KWEXTRACT_SERVER_URL" default:"http://127.0.0.1:5000"`
	ServerAPIKey string `help:"The API key for the keyword extraction server." env:"KWEXTRACT_API_KEY" default:""`
}

func (c TUICommand) Run(ctx context.Context) (err error) {
	rsc := client.New(c.ServerURL, c.ServerAPIKey)
	p := tea.NewProgram(newModel(ctx, rsc))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Foreground).Bold(true).Padding(1)

const header = "Paste a Tamil or English paragraph and press enter."

// extractedMsg is sent when the server has responded to a paragraph.
type extractedMsg struct {
	text   string
	result models.ExtractResponse
	err    error
}

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	ctx      context.Context
	client   extractPoster
	width    int
	pending  bool

	// Rendered paragraphs and their results, oldest first.
	entries []string
}

func newModel(ctx context.Context, ep extractPoster) model {
	ta := textarea.New()
	ta.Placeholder = "Paste a paragraph..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 4000

	ta.SetHeight(3)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render(header))

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:      ctx,
		client:   ep,
		textarea: ta,
		viewport: vp,
		width:    80,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) extract(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.ExtractPost(m.ctx, models.ExtractRequest{Text: text})
		return extractedMsg{text: text, result: result, err: err}
	}
}

func (m *model) refresh() {
	content := headerStyle.Render(header)
	if len(m.entries) > 0 {
		content = strings.Join(m.entries, "\n")
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case extractedMsg:
		m.pending = false
		if msg.err != nil {
			m.entries = append(m.entries, renderError(msg.err, m.width))
		} else {
			m.entries = append(m.entries, renderResult(msg.text, msg.result))
		}
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())

			// Don't send empty paragraphs, or a second one while waiting.
			if v == "" || m.pending {
				return m, nil
			}

			m.textarea.Reset()
			m.pending = true
			m.entries = append(m.entries, renderParagraph(v, m.width))
			m.refresh()
			return m, m.extract(v)
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	status := ""
	if m.pending {
		status = languageStyle.Render("extracting...")
	}
	return fmt.Sprintf("%s\n%s\n%s",
		m.viewport.View(),
		status,
		m.textarea.View(),
	) + "\n\n"
}
