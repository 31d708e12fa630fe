package prompt

import (
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	keyUpConstant            = "up"
	keyUpAlternateConstant   = "k"
	keyDownConstant          = "down"
	keyDownAlternateConstant = "j"
	keyEnterConstant         = "enter"
	keyEscapeConstant        = "esc"
	keyInterruptConstant     = "ctrl+c"
	keyQuitConstant          = "q"
	cursorMarkerConstant     = "> "
	cursorPaddingConstant    = "  "
	selectionHintConstant    = "(arrows to move, enter to choose, esc to cancel)"
	noSelectionIndexConstant = -1
	selectionSummaryConstant = ": "
	newLineConstant          = "\n"
)

// Selector renders a choice among options and returns the chosen index.
type Selector interface {
	Select(label string, options []string) (int, error)
}

// BubbleTeaSelector renders an arrow-key driven list on a terminal.
type BubbleTeaSelector struct {
	input  io.Reader
	output io.Writer
	styles promptStyles
}

// NewBubbleTeaSelector constructs a selector bound to the given terminal streams.
func NewBubbleTeaSelector(input io.Reader, output io.Writer) *BubbleTeaSelector {
	return &BubbleTeaSelector{input: input, output: output, styles: terminalStyles()}
}

// Select runs the list until the user chooses or cancels.
func (selector *BubbleTeaSelector) Select(label string, options []string) (int, error) {
	if len(options) == 0 {
		return noSelectionIndexConstant, ErrNoOptions
	}

	program := tea.NewProgram(
		newSelectionModel(label, options, selector.styles),
		tea.WithInput(selector.input),
		tea.WithOutput(selector.output),
	)
	finalModel, runError := program.Run()
	if runError != nil {
		if errors.Is(runError, tea.ErrProgramKilled) {
			return noSelectionIndexConstant, ErrInputCancelled
		}
		return noSelectionIndexConstant, runError
	}

	return selectionResult(finalModel)
}

func selectionResult(finalModel tea.Model) (int, error) {
	model, isSelectionModel := finalModel.(selectionModel)
	if !isSelectionModel || model.cancelled || model.chosen == noSelectionIndexConstant {
		return noSelectionIndexConstant, ErrInputCancelled
	}
	return model.chosen, nil
}

type selectionModel struct {
	label     string
	options   []string
	cursor    int
	chosen    int
	cancelled bool
	styles    promptStyles
}

func newSelectionModel(label string, options []string, styles promptStyles) selectionModel {
	return selectionModel{
		label:   label,
		options: append([]string{}, options...),
		chosen:  noSelectionIndexConstant,
		styles:  styles,
	}
}

// Init implements tea.Model.
func (model selectionModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model selectionModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKeyMessage := message.(tea.KeyMsg)
	if !isKeyMessage {
		return model, nil
	}

	switch keyMessage.String() {
	case keyUpConstant, keyUpAlternateConstant:
		if model.cursor > 0 {
			model.cursor--
		}
	case keyDownConstant, keyDownAlternateConstant:
		if model.cursor < len(model.options)-1 {
			model.cursor++
		}
	case keyEnterConstant:
		model.chosen = model.cursor
		return model, tea.Quit
	case keyEscapeConstant, keyInterruptConstant, keyQuitConstant:
		model.cancelled = true
		return model, tea.Quit
	}
	return model, nil
}

// View implements tea.Model.
func (model selectionModel) View() string {
	var builder strings.Builder
	builder.WriteString(model.styles.label(model.label))

	if model.chosen != noSelectionIndexConstant {
		builder.WriteString(selectionSummaryConstant)
		builder.WriteString(model.options[model.chosen])
		builder.WriteString(newLineConstant)
		return builder.String()
	}
	if model.cancelled {
		builder.WriteString(newLineConstant)
		return builder.String()
	}

	builder.WriteString(" ")
	builder.WriteString(model.styles.hint(selectionHintConstant))
	builder.WriteString(newLineConstant)
	for optionIndex, option := range model.options {
		if optionIndex == model.cursor {
			builder.WriteString(model.styles.cursor(cursorMarkerConstant + option))
		} else {
			builder.WriteString(cursorPaddingConstant + option)
		}
		builder.WriteString(newLineConstant)
	}
	return builder.String()
}
