// Package project resolves the on-disk layout of a customization project from
// an explicit root directory. Every other package receives a Layout instead
// of consulting the process working directory.
package project
