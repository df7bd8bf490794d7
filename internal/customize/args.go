package customize

import (
	"errors"
	"strconv"

	"github.com/kcmaker-dev/kcmaker/internal/profile"
)

// ErrProxyNotConfigured is returned when a proxy is requested but the
// profile has none.
var ErrProxyNotConfigured = errors.New("proxy mode is enabled, but no proxy configuration was found")

// UploadArgs returns the uploader arguments for manifestPath.
func UploadArgs(p profile.Profile, manifestPath string, useProxy bool) ([]string, error) {
	args := []string{
		"--base-url", p.BaseURL,
		"--username", p.Username,
		"--password", p.Password,
		manifestPath,
	}
	return withProxy(args, p, useProxy)
}

// TypeGenArgs returns the type-definition generator arguments for appID.
func TypeGenArgs(p profile.Profile, appID int, outputPath string, useProxy bool) ([]string, error) {
	args := []string{
		"--base-url", p.BaseURL,
		"-u", p.Username,
		"-p", p.Password,
		"--app-id", strconv.Itoa(appID),
		"-o", outputPath,
	}
	return withProxy(args, p, useProxy)
}

func withProxy(args []string, p profile.Profile, useProxy bool) ([]string, error) {
	if !useProxy {
		return args, nil
	}
	if p.Proxy == "" {
		return nil, ErrProxyNotConfigured
	}
	return append(args, "--proxy", p.Proxy), nil
}
