// Package customize uploads built customizations to the platform and
// generates per-app type definitions by driving the platform's command-line
// tools, one app at a time.
package customize
