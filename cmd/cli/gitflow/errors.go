package gitflow

import (
	"errors"
	"fmt"
)

const (
	missingCredentialTemplateConstant = "profile %q has no API adapter; add one with \"gitp profiles add\""
	noRepositoriesMessageConstant     = "no repositories available"
)

// ErrNoRepositories indicates a credential could not see any repository to clone.
var ErrNoRepositories = errors.New(noRepositoriesMessageConstant)

// MissingCredentialError reports a profile without the API adapter an operation needs.
type MissingCredentialError struct {
	ProfileName string
}

// Error describes the profile lacking a credential.
func (missingError MissingCredentialError) Error() string {
	return fmt.Sprintf(missingCredentialTemplateConstant, missingError.ProfileName)
}
