package flags_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitp/internal/utils/flags"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "default_first",
			defaultChoice:  "text",
			choices:        []string{"text", "json", "yaml"},
			description:    "Output format",
			expectedOutput: "`<TEXT|json|yaml>` Output format",
		},
		{
			name:           "default_last",
			defaultChoice:  "structured",
			choices:        []string{"console", "structured"},
			description:    "Log format",
			expectedOutput: "`<console|STRUCTURED>` Log format",
		},
		{
			name:           "empty_description",
			defaultChoice:  "info",
			choices:        []string{"debug", "info"},
			expectedOutput: "`<debug|INFO>`",
		},
		{
			name:           "duplicates_and_blanks_dropped",
			defaultChoice:  "json",
			choices:        []string{"json", "JSON", " ", "yaml"},
			description:    "Pick one",
			expectedOutput: "`<JSON|yaml>` Pick one",
		},
		{
			name:           "whitespace_trimmed",
			defaultChoice:  " warn ",
			choices:        []string{" warn ", " error "},
			description:    "Level",
			expectedOutput: "`<WARN|error>` Level",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedOutput, flags.FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}

func TestMatchChoice(testInstance *testing.T) {
	choices := []string{"text", "json", "yaml"}

	testCases := []struct {
		name          string
		value         string
		expectedValue string
		expectedMatch bool
	}{
		{name: "exact", value: "json", expectedValue: "json", expectedMatch: true},
		{name: "mixed_case_padded", value: "  YAML ", expectedValue: "yaml", expectedMatch: true},
		{name: "unknown", value: "xml"},
		{name: "blank", value: "   "},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			matchedValue, matched := flags.MatchChoice(testCase.value, choices)
			require.Equal(testInstance, testCase.expectedMatch, matched)
			require.Equal(testInstance, testCase.expectedValue, matchedValue)
		})
	}
}
