// Package schema validates the JSON documents the CLI persists (app
// registries, profiles, upload manifests) against embedded JSON Schemas.
package schema
