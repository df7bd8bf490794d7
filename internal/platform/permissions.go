package platform

import (
	"fmt"
	"os"
	"runtime"
)

// SecureDir creates dir if needed and restricts it to perm. MkdirAll leaves
// an existing directory's mode alone, so the mode is applied explicitly.
// Permission bits are skipped on Windows.
func SecureDir(dir string, perm os.FileMode) error {
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(dir, perm); err != nil {
		return fmt.Errorf("restricting %s: %w", dir, err)
	}
	return nil
}

// Exposed reports whether path grants any access to group or others.
// It returns false on Windows and when the file cannot be stat'ed.
func Exposed(path string) (os.FileMode, bool) {
	if runtime.GOOS == "windows" {
		return 0, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	perm := info.Mode().Perm()
	return perm, perm&0o077 != 0
}
