// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Sylc is the canonical application identifier used for filesystem paths and CLI branding.
	Sylc = "sylc"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, populated at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
