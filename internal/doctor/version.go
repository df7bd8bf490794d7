package doctor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`)

// CompareVersions compares two version strings using semver.
// Returns -1 if current < other, 0 if equal, 1 if current > other.
func CompareVersions(current, other string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", current, err)
	}
	ov, err := parseSemver(other)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", other, err)
	}
	return cv.Compare(ov), nil
}

// AtLeast reports whether current satisfies the minimum version.
func AtLeast(current, minimum string) (bool, error) {
	c, err := CompareVersions(current, minimum)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// ExtractVersion finds the version of tool in command output. Lines that
// mention tool are preferred, so "webpack: 5.97.1\nwebpack-cli: 6.0.1"
// yields 5.97.1 for tool "webpack".
func ExtractVersion(output, tool string) (string, bool) {
	if tool != "" {
		for _, line := range strings.Split(output, "\n") {
			name, rest, ok := strings.Cut(strings.TrimSpace(line), ":")
			if ok && strings.EqualFold(strings.TrimSpace(name), tool) {
				if v := versionPattern.FindString(rest); v != "" {
					return strings.TrimPrefix(v, "v"), true
				}
			}
		}
	}
	v := versionPattern.FindString(output)
	if v == "" {
		return "", false
	}
	return strings.TrimPrefix(v, "v"), true
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
