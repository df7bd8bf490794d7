// Package environment defines the deployment environments (development,
// staging, production) and build modes the CLI operates on, plus the
// runtime-mode variable that picks an environment when no flag is given.
package environment
