package prompt

import "github.com/charmbracelet/lipgloss"

const (
	failureColorConstant = "9"
	cursorColorConstant  = "12"
)

type textStyle func(text string) string

// promptStyles decorates prompt fragments; plain styles keep piped output free of escape codes.
type promptStyles struct {
	label   textStyle
	hint    textStyle
	failure textStyle
	cursor  textStyle
}

func plainStyles() promptStyles {
	identity := func(text string) string { return text }
	return promptStyles{label: identity, hint: identity, failure: identity, cursor: identity}
}

func terminalStyles() promptStyles {
	labelStyle := lipgloss.NewStyle().Bold(true)
	hintStyle := lipgloss.NewStyle().Faint(true)
	failureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(failureColorConstant))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cursorColorConstant)).Bold(true)

	return promptStyles{
		label:   func(text string) string { return labelStyle.Render(text) },
		hint:    func(text string) string { return hintStyle.Render(text) },
		failure: func(text string) string { return failureStyle.Render(text) },
		cursor:  func(text string) string { return cursorStyle.Render(text) },
	}
}
