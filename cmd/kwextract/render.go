package main

import (
	"strings"

	"github.com/a-h/kwextract/language"
	"github.com/a-h/kwextract/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Dracula color scheme.
var (
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Comment     = lipgloss.Color("#6272a4")
	Cyan        = lipgloss.Color("#8be9fd")
	Green       = lipgloss.Color("#50fa7b")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(Purple).Bold(true)
	languageStyle  = lipgloss.NewStyle().Foreground(Comment)
	level1Style    = lipgloss.NewStyle().Foreground(Green).Bold(true)
	level2Style    = lipgloss.NewStyle().Foreground(Cyan)
	branchStyle    = lipgloss.NewStyle().Foreground(Comment)
	paragraphStyle = lipgloss.NewStyle().Foreground(Pink)
	errorStyle     = lipgloss.NewStyle().Foreground(Red)
)

var languageNames = map[language.Language]string{
	language.English: "English",
	language.Tamil:   "Tamil",
}

// renderResult draws the keywords as a tree under the title.
func renderResult(text string, result models.ExtractResponse) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(result.Title))
	sb.WriteString(" ")
	sb.WriteString(languageStyle.Render("(" + languageNames[language.Detect(text)] + ")"))
	sb.WriteString("\n")
	if len(result.Keywords) == 0 {
		sb.WriteString(branchStyle.Render("└── (no keywords)"))
		sb.WriteString("\n")
		return sb.String()
	}
	for i, group := range result.Keywords {
		last := i == len(result.Keywords)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		sb.WriteString(branchStyle.Render(branch))
		sb.WriteString(level1Style.Render(group.Level1))
		sb.WriteString("\n")
		for j, kw := range group.Level2 {
			leaf := "├── "
			if j == len(group.Level2)-1 {
				leaf = "└── "
			}
			sb.WriteString(branchStyle.Render(indent + leaf))
			sb.WriteString(level2Style.Render(kw))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderParagraph(text string, width int) string {
	return paragraphStyle.Render(wordwrap.String(strings.TrimSpace(text), width))
}

func renderError(err error, width int) string {
	return errorStyle.Render(wordwrap.String("error: "+err.Error(), width))
}
