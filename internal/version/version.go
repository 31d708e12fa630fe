// Package version exposes the build version of gitp.
//
// The value is stamped into the profile store on every save and reported in
// the User-Agent of hosting API requests.
package version

import "fmt"

const (
	applicationNameConstant   = "gitp"
	userAgentTemplateConstant = "%s/%s"
)

// Version is the application version. Release builds override it via
// -ldflags "-X github.com/temirov/gitp/internal/version.Version=...".
var Version = "0.3.0"

// ApplicationName returns the binary name used in user-facing strings.
func ApplicationName() string {
	return applicationNameConstant
}

// UserAgent returns the User-Agent header value for outbound HTTP requests.
func UserAgent() string {
	return fmt.Sprintf(userAgentTemplateConstant, applicationNameConstant, Version)
}
