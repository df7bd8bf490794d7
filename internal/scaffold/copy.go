package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// excludedNames are files/directories skipped when copying a template tree.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// renamedFiles maps template file names that cannot be embedded or shipped
// verbatim to their generated names.
var renamedFiles = map[string]string{
	"_gitignore": ".gitignore",
	"_gitkeep":   ".gitkeep",
}

// shouldExclude returns true if the name should be excluded during copy.
func shouldExclude(name string) bool {
	return excludedNames[name]
}

// outputName returns the generated name for a template file.
func outputName(name string) string {
	if renamed, ok := renamedFiles[name]; ok {
		return renamed
	}
	return strings.TrimSuffix(name, ".tmpl")
}

// renderTree walks root inside fsys and writes every file under dst. Files
// ending in .tmpl are executed as text/template with data; everything else is
// copied as-is. Existing files are overwritten. The returned paths are
// slash-separated and relative to dst.
func renderTree(fsys fs.FS, root, dst string, data any) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if shouldExclude(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := relPath(root, p)
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dst, filepath.FromSlash(rel)), 0755)
		}
		if !d.Type().IsRegular() {
			// Skip symlinks and other special files.
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			content, err = execute(p, content, data)
			if err != nil {
				return err
			}
		}

		outRel := path.Join(path.Dir(rel), outputName(d.Name()))
		outPath := filepath.Join(dst, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		files = append(files, outRel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// copyTree copies root inside fsys to dst byte-for-byte, keeping .tmpl names
// and template placeholders intact.
func copyTree(fsys fs.FS, root, dst string) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if shouldExclude(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel := relPath(root, p)
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0644)
	})
}

// relPath returns p relative to the walk root, "" for the root itself.
func relPath(root, p string) string {
	if root == "." {
		if p == "." {
			return ""
		}
		return p
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
}

func execute(name string, content []byte, data any) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
