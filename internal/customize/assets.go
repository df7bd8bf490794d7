package customize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/registry"
)

// DistAssets lists the bundles built for app, grouped by platform using the
// ".desktop." and ".mobile." infixes of the file names. Paths are
// project-relative with forward slashes.
func DistAssets(layout *project.Layout, app string) (registry.CDN, error) {
	cdn := registry.CDN{
		Desktop: registry.Assets{JS: []string{}, CSS: []string{}},
		Mobile:  registry.Assets{JS: []string{}, CSS: []string{}},
	}

	dir := layout.DistAppDir(app)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return cdn, fmt.Errorf("no build output for %q: %s (run build first)", app, dir)
		}
		return cdn, fmt.Errorf("reading %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var target *registry.Assets
		switch {
		case strings.Contains(name, ".desktop."):
			target = &cdn.Desktop
		case strings.Contains(name, ".mobile."):
			target = &cdn.Mobile
		default:
			continue
		}
		rel := layout.Rel(filepath.Join(dir, name))
		switch filepath.Ext(name) {
		case ".js":
			target.JS = append(target.JS, rel)
		case ".css":
			target.CSS = append(target.CSS, rel)
		}
	}
	return cdn, nil
}
