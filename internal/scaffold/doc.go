// Package scaffold generates new customization projects and app directories
// from embedded templates. It powers the "kcmaker create" and "kcmaker app"
// commands.
package scaffold
