// Package manifest builds the customize-manifest.json document consumed by the
// platform's customization uploader: the target app ID, the upload scope and
// the desktop/mobile asset lists copied from the app's registry entry.
package manifest
