// Package webpack assembles the bundler configuration for a project and
// drives webpack through Node.js.
//
// The configuration is built in Go as a tree of plain values (Object, []any,
// strings, numbers) plus a few JavaScript-only values (Plugin, Regexp, Expr),
// rendered to a CommonJS module and executed by a small runner script that
// reports compilation results back as JSON lines.
package webpack
