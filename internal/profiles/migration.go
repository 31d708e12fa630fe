package profiles

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

const (
	minimumCurrentStoreVersionConstant     = "v0.2.0"
	semanticVersionPrefixConstant          = "v"
	legacyAdapterKeyConstant               = "adapter"
	apiAdapterKeyConstant                  = "api_adapter"
	nameKeyConstant                        = "name"
	legacyCredentialDroppedMessageConstant = "Dropped legacy credential without token; add it again with profiles add"
	logFieldProfileConstant                = "profile"
	logFieldProviderConstant               = "provider"
	logFieldStoreVersionConstant           = "store_version"
)

// isLegacyStoreVersion reports whether a store written by version predates
// credential payloads. Versions that are not semantic versions count as current.
func isLegacyStoreVersion(version string) bool {
	trimmedVersion := strings.TrimSpace(version)
	if len(trimmedVersion) == 0 {
		return true
	}

	canonicalVersion := trimmedVersion
	if !strings.HasPrefix(canonicalVersion, semanticVersionPrefixConstant) {
		canonicalVersion = semanticVersionPrefixConstant + canonicalVersion
	}
	if !semver.IsValid(canonicalVersion) {
		return false
	}
	return semver.Compare(canonicalVersion, minimumCurrentStoreVersionConstant) < 0
}

// migrateLegacyProfile rewrites a tag-only adapter into a profile without a
// credential. The tag is accepted nested ({"api_adapter": {"adapter": "GitHub"}})
// or on the profile itself ({"adapter": "GitHub"}). Other documents are
// returned unchanged.
func migrateLegacyProfile(rawProfile json.RawMessage, storeVersion string, logger *zap.Logger) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if decodeError := json.Unmarshal(rawProfile, &fields); decodeError != nil {
		return nil, decodeError
	}

	providerName, tagFound := profileLevelTag(fields)
	if tagFound {
		delete(fields, legacyAdapterKeyConstant)
	} else {
		providerName, tagFound = nestedTag(fields)
		if !tagFound {
			return rawProfile, nil
		}
		delete(fields, apiAdapterKeyConstant)
	}

	var profileName string
	_ = json.Unmarshal(fields[nameKeyConstant], &profileName)

	migratedProfile, encodeError := json.Marshal(fields)
	if encodeError != nil {
		return nil, encodeError
	}

	logger.Warn(
		legacyCredentialDroppedMessageConstant,
		zap.String(logFieldProfileConstant, profileName),
		zap.String(logFieldProviderConstant, providerName),
		zap.String(logFieldStoreVersionConstant, storeVersion),
	)
	return migratedProfile, nil
}

func profileLevelTag(fields map[string]json.RawMessage) (string, bool) {
	rawTag, tagPresent := fields[legacyAdapterKeyConstant]
	if !tagPresent {
		return "", false
	}
	var providerName string
	if decodeError := json.Unmarshal(rawTag, &providerName); decodeError != nil {
		return "", false
	}
	return providerName, true
}

func nestedTag(fields map[string]json.RawMessage) (string, bool) {
	rawAdapter, adapterPresent := fields[apiAdapterKeyConstant]
	if !adapterPresent {
		return "", false
	}
	var adapterFields map[string]json.RawMessage
	if decodeError := json.Unmarshal(rawAdapter, &adapterFields); decodeError != nil || len(adapterFields) != 1 {
		return "", false
	}
	return profileLevelTag(adapterFields)
}
