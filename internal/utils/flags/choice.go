// Package flags holds helpers for enumerated command-line flag values.
package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefixConstant  = "<"
	choicePlaceholderSuffixConstant  = ">"
	choiceSeparatorConstant          = "|"
	choiceUsageEmptyTemplateConstant = "`%s`"
	choiceUsageFullTemplateConstant  = "`%s` %s"
)

// FormatChoiceUsage renders "`<a|B|c>` description" with the default choice upper-cased.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := normalizeChoice(defaultChoice)
	displayedChoices := make([]string, 0, len(choices))
	for _, choice := range distinctChoices(choices) {
		if normalizeChoice(choice) == normalizedDefault {
			choice = strings.ToUpper(choice)
		}
		displayedChoices = append(displayedChoices, choice)
	}

	placeholder := choicePlaceholderPrefixConstant + strings.Join(displayedChoices, choiceSeparatorConstant) + choicePlaceholderSuffixConstant
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplateConstant, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplateConstant, placeholder, description)
}

// MatchChoice returns the lower-cased choice equal to value ignoring case and
// surrounding whitespace. A blank value matches nothing.
func MatchChoice(value string, choices []string) (string, bool) {
	normalizedValue := normalizeChoice(value)
	if len(normalizedValue) == 0 {
		return "", false
	}
	for _, choice := range distinctChoices(choices) {
		if normalizeChoice(choice) == normalizedValue {
			return normalizedValue, true
		}
	}
	return "", false
}

// distinctChoices trims choices and drops blanks and case-insensitive repeats, keeping order.
func distinctChoices(choices []string) []string {
	distinct := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalized := normalizeChoice(trimmedChoice)
		if len(normalized) == 0 {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		distinct = append(distinct, trimmedChoice)
	}
	return distinct
}

func normalizeChoice(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
