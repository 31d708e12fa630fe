package profiles

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/gitp/internal/hosting"
	coreprofiles "github.com/temirov/gitp/internal/profiles"
	flagutils "github.com/temirov/gitp/internal/utils/flags"
)

const (
	outputFormatTextConstant          = "text"
	outputFormatJSONConstant          = "json"
	outputFormatYAMLConstant          = "yaml"
	unsupportedOutputTemplateConstant = "unsupported output format %q; use text, json or yaml"
	emptyProfilesMessageConstant      = "No profiles configured. Run \"gitp profiles add\" to create one."
	detailNameTemplateConstant        = "Name: %s\n"
	detailCommitNameTemplateConstant  = "Commit name: %s\n"
	detailCommitEmailTemplateConstant = "Commit email: %s\n"
	detailCredentialTemplateConstant  = "API adapter: %s\n"
	detailNoCredentialConstant        = "none"
	jsonIndentConstant                = "  "
	yamlIndentConstant                = 2
	lineTemplateConstant              = "%s\n"
)

// OutputFormat selects how profiles are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = OutputFormat(outputFormatTextConstant)
	OutputFormatJSON OutputFormat = OutputFormat(outputFormatJSONConstant)
	OutputFormatYAML OutputFormat = OutputFormat(outputFormatYAMLConstant)
)

// SupportedOutputFormats lists the accepted --output values.
func SupportedOutputFormats() []string {
	return []string{outputFormatTextConstant, outputFormatJSONConstant, outputFormatYAMLConstant}
}

// ParseOutputFormat normalizes a textual output format.
func ParseOutputFormat(value string) (OutputFormat, error) {
	if len(strings.TrimSpace(value)) == 0 {
		return OutputFormatText, nil
	}
	matchedFormat, matched := flagutils.MatchChoice(value, SupportedOutputFormats())
	if !matched {
		return "", fmt.Errorf(unsupportedOutputTemplateConstant, value)
	}
	return OutputFormat(matchedFormat), nil
}

// profileView is the printable form of a profile; the token never appears in it.
type profileView struct {
	Name        string `json:"name" yaml:"name"`
	CommitName  string `json:"commit_name" yaml:"commit_name"`
	CommitEmail string `json:"commit_email" yaml:"commit_email"`
	Provider    string `json:"api_adapter,omitempty" yaml:"api_adapter,omitempty"`
	Host        string `json:"host,omitempty" yaml:"host,omitempty"`
}

func newProfileView(profile coreprofiles.Profile) profileView {
	view := profileView{
		Name:        profile.Name,
		CommitName:  profile.GitIdentity.CommitName,
		CommitEmail: profile.GitIdentity.CommitEmail,
	}
	switch credential := profile.Credential.(type) {
	case hosting.GitHubCredential:
		view.Provider = string(credential.Provider())
	case hosting.GitLabCredential:
		view.Provider = string(credential.Provider())
		view.Host = credential.ResolvedHost()
	}
	return view
}

type profileRenderer struct {
	writer io.Writer
	format OutputFormat
}

func (renderer profileRenderer) renderList(profiles []coreprofiles.Profile) error {
	switch renderer.format {
	case OutputFormatJSON, OutputFormatYAML:
		views := make([]profileView, 0, len(profiles))
		for _, profile := range profiles {
			views = append(views, newProfileView(profile))
		}
		return renderer.encode(views)
	default:
		if len(profiles) == 0 {
			_, writeError := fmt.Fprintf(renderer.writer, lineTemplateConstant, emptyProfilesMessageConstant)
			return writeError
		}
		for _, profile := range profiles {
			if _, writeError := fmt.Fprintf(renderer.writer, lineTemplateConstant, profile.String()); writeError != nil {
				return writeError
			}
		}
		return nil
	}
}

func (renderer profileRenderer) renderDetail(profile coreprofiles.Profile) error {
	switch renderer.format {
	case OutputFormatJSON, OutputFormatYAML:
		return renderer.encode(newProfileView(profile))
	default:
		credentialSummary := detailNoCredentialConstant
		if profile.HasCredential() {
			credentialSummary = profile.Credential.Summary()
		}
		var builder strings.Builder
		builder.WriteString(fmt.Sprintf(detailNameTemplateConstant, profile.Name))
		builder.WriteString(fmt.Sprintf(detailCommitNameTemplateConstant, profile.GitIdentity.CommitName))
		builder.WriteString(fmt.Sprintf(detailCommitEmailTemplateConstant, profile.GitIdentity.CommitEmail))
		builder.WriteString(fmt.Sprintf(detailCredentialTemplateConstant, credentialSummary))
		_, writeError := io.WriteString(renderer.writer, builder.String())
		return writeError
	}
}

func (renderer profileRenderer) encode(value any) error {
	if renderer.format == OutputFormatYAML {
		encoder := yaml.NewEncoder(renderer.writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(value); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	}

	encoder := json.NewEncoder(renderer.writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(value)
}
