// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Afro is the canonical application identifier used for filesystem paths and CLI branding.
	Afro = "afro"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string sent with every AfroRhythm API request.
	UserAgent = "afro/" + Version + " (+https://github.com/afrorhythm/afro)"
)

// Build metadata, overridable at link time with -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
