// Package version holds the engine's build identity.
//
// There is no build-time injection step in this module (no linker
// -ldflags, no go:generate), so Version is a plain constant bumped by
// hand. Kept as its own package so cmd/xqengine and the UCCI greeting
// can both reference it without creating an import cycle.
package version

// Version is the engine's release identifier, reported in the UCCI
// "id" response and by the -version command-line flag.
const Version = "1.0.0"
