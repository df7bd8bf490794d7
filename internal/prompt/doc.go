// Package prompt holds the interactive forms shown when a command is run
// without the flags it needs.
package prompt
