// Package platform provides filesystem helpers that differ across operating
// systems: permission management for credential files and atomic file
// replacement for the JSON documents the CLI owns.
package platform
