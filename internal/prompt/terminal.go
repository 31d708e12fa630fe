package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	labelSuffixConstant               = ": "
	defaultValueTemplateConstant      = "[%s]"
	validationFailureTemplateConstant = "  %s\n"
	optionTemplateConstant            = "  [%d] %s\n"
	choicePromptConstant              = "Choice: "
	invalidChoiceTemplateConstant     = "choose a number between 1 and %d"
	confirmYesHintConstant            = "[Y/n]"
	confirmNoHintConstant             = "[y/N]"
	confirmInvalidMessageConstant     = "answer yes or no"
	affirmativeShortConstant          = "y"
	affirmativeLongConstant           = "yes"
	negativeShortConstant             = "n"
	negativeLongConstant              = "no"
	lineDelimiterConstant             = '\n'
)

// TerminalPrompter reads answers line by line and writes prompts to an output stream.
//
// When constructed over a terminal it hides password input and renders
// selections with a BubbleTeaSelector; otherwise every prompt is line based.
type TerminalPrompter struct {
	reader         *bufio.Reader
	writer         io.Writer
	passwordReader func() ([]byte, error)
	selector       Selector
	styles         promptStyles
}

// NewTerminalPrompter constructs a prompter over the given input file, enabling
// masked passwords and list selection when the file is a terminal.
func NewTerminalPrompter(input *os.File, output io.Writer) *TerminalPrompter {
	prompter := NewIOPrompter(input, output)
	fileDescriptor := int(input.Fd())
	if !term.IsTerminal(fileDescriptor) {
		return prompter
	}

	prompter.passwordReader = func() ([]byte, error) {
		return readPasswordRestoringTerminal(fileDescriptor)
	}
	prompter.selector = NewBubbleTeaSelector(input, output)
	prompter.styles = terminalStyles()
	return prompter
}

// NewIOPrompter constructs a line-based prompter over arbitrary streams.
func NewIOPrompter(input io.Reader, output io.Writer) *TerminalPrompter {
	if output == nil {
		output = io.Discard
	}
	return &TerminalPrompter{
		reader: bufio.NewReader(input),
		writer: output,
		styles: plainStyles(),
	}
}

// AskText implements Prompter.
func (prompter *TerminalPrompter) AskText(request TextRequest) (string, error) {
	return prompter.askValidated(request, true, prompter.readLine)
}

// AskPassword implements Prompter.
func (prompter *TerminalPrompter) AskPassword(request TextRequest) (string, error) {
	if prompter.passwordReader == nil {
		return prompter.askValidated(request, false, prompter.readLine)
	}
	return prompter.askValidated(request, false, prompter.readHiddenLine)
}

// AskSelect implements Prompter.
func (prompter *TerminalPrompter) AskSelect(label string, options []string) (int, error) {
	if len(options) == 0 {
		return noSelectionIndexConstant, ErrNoOptions
	}
	if prompter.selector != nil {
		return prompter.selector.Select(label, options)
	}

	for {
		fmt.Fprintln(prompter.writer, prompter.styles.label(label))
		for optionIndex, option := range options {
			fmt.Fprintf(prompter.writer, optionTemplateConstant, optionIndex+1, option)
		}
		fmt.Fprint(prompter.writer, choicePromptConstant)

		answer, readError := prompter.readLine()
		if readError != nil {
			return noSelectionIndexConstant, readError
		}

		choice, parseError := strconv.Atoi(strings.TrimSpace(answer))
		if parseError != nil || choice < 1 || choice > len(options) {
			prompter.writeFailure(fmt.Sprintf(invalidChoiceTemplateConstant, len(options)))
			continue
		}
		return choice - 1, nil
	}
}

// AskConfirm implements Prompter.
func (prompter *TerminalPrompter) AskConfirm(label string, defaultValue bool) (bool, error) {
	hint := confirmNoHintConstant
	if defaultValue {
		hint = confirmYesHintConstant
	}

	for {
		fmt.Fprintf(prompter.writer, "%s %s%s", prompter.styles.label(label), prompter.styles.hint(hint), labelSuffixConstant)
		answer, readError := prompter.readLine()
		if readError != nil {
			return false, readError
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return defaultValue, nil
		case affirmativeShortConstant, affirmativeLongConstant:
			return true, nil
		case negativeShortConstant, negativeLongConstant:
			return false, nil
		default:
			prompter.writeFailure(confirmInvalidMessageConstant)
		}
	}
}

func (prompter *TerminalPrompter) askValidated(request TextRequest, showDefault bool, read func() (string, error)) (string, error) {
	for {
		prompter.writeLabel(request, showDefault)
		answer, readError := read()
		if readError != nil {
			return "", readError
		}

		answer = strings.TrimSpace(answer)
		if len(answer) == 0 {
			answer = request.DefaultValue
		}

		if request.Validator != nil {
			if validationError := request.Validator(answer); validationError != nil {
				prompter.writeFailure(validationError.Error())
				continue
			}
		}
		return answer, nil
	}
}

func (prompter *TerminalPrompter) writeLabel(request TextRequest, showDefault bool) {
	label := prompter.styles.label(request.Label)
	if showDefault && len(request.DefaultValue) > 0 {
		label = label + " " + prompter.styles.hint(fmt.Sprintf(defaultValueTemplateConstant, request.DefaultValue))
	}
	fmt.Fprint(prompter.writer, label+labelSuffixConstant)
}

func (prompter *TerminalPrompter) writeFailure(message string) {
	fmt.Fprintf(prompter.writer, validationFailureTemplateConstant, prompter.styles.failure(message))
}

// readLine returns ErrInputCancelled when the input ends before any text arrives.
func (prompter *TerminalPrompter) readLine() (string, error) {
	line, readError := prompter.reader.ReadString(lineDelimiterConstant)
	if readError != nil {
		if errors.Is(readError, io.EOF) && len(line) > 0 {
			return line, nil
		}
		if errors.Is(readError, io.EOF) {
			return "", ErrInputCancelled
		}
		return "", readError
	}
	return line, nil
}

func (prompter *TerminalPrompter) readHiddenLine() (string, error) {
	secret, readError := prompter.passwordReader()
	fmt.Fprintln(prompter.writer)
	if readError != nil {
		if errors.Is(readError, io.EOF) {
			return "", ErrInputCancelled
		}
		return "", readError
	}
	return string(secret), nil
}
