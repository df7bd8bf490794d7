// Package doctor checks that a project's toolchain and documents are usable:
// Node.js and webpack versions, the uploader and type generator binaries,
// and the schema validity of profiles and app registries.
package doctor
