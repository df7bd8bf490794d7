// Package cli defines the Cobra command tree for the kcmaker CLI. Each file
// in this package registers one top-level command (create, setup, app, build,
// dev, dts, launch, etc.) with the root command. Command implementations
// delegate to internal packages for business logic and only handle flag
// parsing, prompting, and output formatting.
package cli
