// Package profile stores per-environment connection profiles (base URL,
// credentials, optional proxy) in the project's secret directory. The file is
// written with owner-only permissions.
package profile
