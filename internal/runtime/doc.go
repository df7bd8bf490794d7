// Package runtime runs the external programs the CLI drives (Node.js, the
// customization uploader, the type-definition generator) behind the Runner
// interface so callers can be tested without spawning processes.
package runtime
