// Package registry manages the per-environment App Configuration Registry:
// one JSON document per environment mapping app names to their platform app
// ID, API tokens, view IDs and the ordered CDN asset lists uploaded with each
// customization. Writes replace the file atomically; there is no locking, so
// concurrent writers follow last-writer-wins.
package registry
