package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
)

// ExecRunner runs commands as child processes, streaming their output while
// also capturing it.
type ExecRunner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// BinDirs are searched before PATH, typically the project's
	// node_modules/.bin.
	BinDirs []string
}

// LookPath resolves name against BinDirs and then PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	if !strings.ContainsRune(name, filepath.Separator) {
		for _, dir := range r.BinDirs {
			if path, err := exec.LookPath(filepath.Join(dir, name)); err == nil {
				return path, nil
			}
		}
	}
	return exec.LookPath(name)
}

// Run starts c.Name and waits for it. A binary missing from PATH yields an
// error wrapping exec.ErrNotFound; a non-zero exit yields *ExitError along
// with the captured output.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	bin, err := r.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s is required but was not found: %w", c.Name, err)
	}

	ctxlog.FromContext(ctx).Debug("running command",
		"name", c.Name,
		"args", strings.Join(Redact(c.Args), " "),
		"dir", c.Dir,
	)

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		env := os.Environ()
		for _, kv := range c.Env {
			key, value, _ := strings.Cut(kv, "=")
			env = setEnv(env, key, value)
		}
		cmd.Env = env
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if c.Quiet {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	} else {
		stdout := r.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		stderr := r.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)
	}

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return output, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{Name: c.Name, Code: output.ExitCode}
		}
		return output, fmt.Errorf("running %s: %w", c.Name, err)
	}

	return output, nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
