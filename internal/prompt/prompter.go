// Package prompt defines the interactive input capability used by gitp flows.
//
// Prompter is injected into the profile manager and commands. TerminalPrompter
// renders prompts on a terminal; prompttest.ScriptedPrompter replays canned
// answers in tests.
package prompt

import (
	"errors"
	"strings"
)

const (
	inputCancelledMessageConstant = "input cancelled"
	requiredInputMessageConstant  = "required input"
	noOptionsMessageConstant      = "no options to choose from"
)

var (
	// ErrInputCancelled indicates the user aborted a prompt (Esc, Ctrl+C or end of input).
	ErrInputCancelled = errors.New(inputCancelledMessageConstant)
	// ErrRequiredInput is returned by RequireNonEmpty for blank answers.
	ErrRequiredInput = errors.New(requiredInputMessageConstant)
	// ErrNoOptions indicates AskSelect was called with an empty option list.
	ErrNoOptions = errors.New(noOptionsMessageConstant)
)

// Validator checks an answer before it is accepted.
type Validator func(answer string) error

// TextRequest describes a free-form text or password prompt.
type TextRequest struct {
	Label        string
	DefaultValue string
	Validator    Validator
}

// Prompter asks the user for input.
type Prompter interface {
	// AskText reads a line of visible text.
	AskText(request TextRequest) (string, error)
	// AskPassword reads a line without echoing it.
	AskPassword(request TextRequest) (string, error)
	// AskSelect lets the user pick one option and returns its index.
	AskSelect(label string, options []string) (int, error)
	// AskConfirm asks a yes/no question.
	AskConfirm(label string, defaultValue bool) (bool, error)
}

// RequireNonEmpty rejects answers that are blank after trimming.
func RequireNonEmpty(answer string) error {
	if len(strings.TrimSpace(answer)) == 0 {
		return ErrRequiredInput
	}
	return nil
}

// Chain combines validators; the first failure wins.
func Chain(validators ...Validator) Validator {
	return func(answer string) error {
		for _, validator := range validators {
			if validator == nil {
				continue
			}
			if validationError := validator(answer); validationError != nil {
				return validationError
			}
		}
		return nil
	}
}
