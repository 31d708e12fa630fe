// Package prompttest provides a Prompter that replays scripted answers.
package prompttest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitp/internal/prompt"
)

const (
	scriptExhaustedMessageConstant      = "scripted prompter has no answers left"
	unexpectedPromptTemplateConstant    = "scripted prompter expected a %s prompt but received %s (%q)"
	selectionOutOfRangeTemplateConstant = "scripted selection %d is outside %d options"
)

// ErrScriptExhausted indicates a prompt was issued after the last scripted answer.
var ErrScriptExhausted = errors.New(scriptExhaustedMessageConstant)

// Kind identifies the prompt an answer satisfies.
type Kind string

// Prompt kinds.
const (
	KindText     Kind = Kind("text")
	KindPassword Kind = Kind("password")
	KindSelect   Kind = Kind("select")
	KindConfirm  Kind = Kind("confirm")
)

// Answer is one scripted response.
type Answer struct {
	Kind      Kind
	Text      string
	Index     int
	Confirmed bool
	Err       error
}

// Text scripts a visible text answer.
func Text(value string) Answer {
	return Answer{Kind: KindText, Text: value}
}

// Password scripts a hidden text answer.
func Password(value string) Answer {
	return Answer{Kind: KindPassword, Text: value}
}

// Select scripts the zero-based index of a selection.
func Select(index int) Answer {
	return Answer{Kind: KindSelect, Index: index}
}

// Confirm scripts a yes/no answer.
func Confirm(confirmed bool) Answer {
	return Answer{Kind: KindConfirm, Confirmed: confirmed}
}

// Cancel scripts a prompt of the given kind that the user aborts.
func Cancel(kind Kind) Answer {
	return Answer{Kind: kind, Err: prompt.ErrInputCancelled}
}

// Asked records a prompt issued to the ScriptedPrompter.
type Asked struct {
	Kind         Kind
	Label        string
	DefaultValue string
	Options      []string
}

// ScriptedPrompter replays answers in order. Empty text answers fall back to
// the request default, mirroring the terminal prompter; validators are not run
// so callers can be tested against invalid input.
type ScriptedPrompter struct {
	answers []Answer
	Asked   []Asked
}

// New constructs a ScriptedPrompter with the given answers.
func New(answers ...Answer) *ScriptedPrompter {
	return &ScriptedPrompter{answers: append([]Answer{}, answers...)}
}

// Remaining reports how many scripted answers were not consumed.
func (prompter *ScriptedPrompter) Remaining() int {
	return len(prompter.answers)
}

// AskText implements prompt.Prompter.
func (prompter *ScriptedPrompter) AskText(request prompt.TextRequest) (string, error) {
	return prompter.nextText(KindText, request)
}

// AskPassword implements prompt.Prompter.
func (prompter *ScriptedPrompter) AskPassword(request prompt.TextRequest) (string, error) {
	return prompter.nextText(KindPassword, request)
}

// AskSelect implements prompt.Prompter.
func (prompter *ScriptedPrompter) AskSelect(label string, options []string) (int, error) {
	prompter.Asked = append(prompter.Asked, Asked{Kind: KindSelect, Label: label, Options: append([]string{}, options...)})
	if len(options) == 0 {
		return -1, prompt.ErrNoOptions
	}
	answer, answerError := prompter.next(KindSelect, label)
	if answerError != nil {
		return -1, answerError
	}
	if answer.Index < 0 || answer.Index >= len(options) {
		return -1, fmt.Errorf(selectionOutOfRangeTemplateConstant, answer.Index, len(options))
	}
	return answer.Index, nil
}

// AskConfirm implements prompt.Prompter.
func (prompter *ScriptedPrompter) AskConfirm(label string, defaultValue bool) (bool, error) {
	prompter.Asked = append(prompter.Asked, Asked{Kind: KindConfirm, Label: label})
	answer, answerError := prompter.next(KindConfirm, label)
	if answerError != nil {
		return false, answerError
	}
	return answer.Confirmed, nil
}

func (prompter *ScriptedPrompter) nextText(kind Kind, request prompt.TextRequest) (string, error) {
	prompter.Asked = append(prompter.Asked, Asked{Kind: kind, Label: request.Label, DefaultValue: request.DefaultValue})
	answer, answerError := prompter.next(kind, request.Label)
	if answerError != nil {
		return "", answerError
	}
	if len(strings.TrimSpace(answer.Text)) == 0 {
		return request.DefaultValue, nil
	}
	return answer.Text, nil
}

func (prompter *ScriptedPrompter) next(kind Kind, label string) (Answer, error) {
	if len(prompter.answers) == 0 {
		return Answer{}, ErrScriptExhausted
	}
	answer := prompter.answers[0]
	prompter.answers = prompter.answers[1:]
	if answer.Kind != kind {
		return Answer{}, fmt.Errorf(unexpectedPromptTemplateConstant, answer.Kind, kind, label)
	}
	if answer.Err != nil {
		return Answer{}, answer.Err
	}
	return answer, nil
}
