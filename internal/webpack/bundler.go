package webpack

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/platform"
	"github.com/kcmaker-dev/kcmaker/internal/project"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
)

//go:embed runner.cjs
var runnerScript []byte

// Files written to the project work directory.
const (
	ConfigFile = "webpack.config.cjs"
	RunnerFile = "runner.cjs"
	StatsFile  = "stats.jsonl"
)

// DefaultAggregateTimeout is the watch-mode rebuild delay.
const DefaultAggregateTimeout = 300 * time.Millisecond

// Result summarizes one compilation.
type Result struct {
	HasErrors   bool     `json:"hasErrors"`
	HasWarnings bool     `json:"hasWarnings"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Assets      []string `json:"assets"`
}

// BuildError reports a compilation that finished with errors.
type BuildError struct {
	Errors []string
}

func (e *BuildError) Error() string {
	if len(e.Errors) == 0 {
		return "webpack compilation failed"
	}
	return "webpack compilation failed:\n" + strings.Join(e.Errors, "\n")
}

// Bundler runs webpack for a project through Node.js.
type Bundler struct {
	Runner           runtime.Runner
	NodeBin          string
	Layout           *project.Layout
	AggregateTimeout time.Duration
}

type paths struct {
	config, runner, stats string
}

// prepare writes the rendered config and runner script and clears the
// stats file.
func (b *Bundler) prepare(cfg *Config) (paths, error) {
	p := paths{
		config: filepath.Join(b.Layout.WorkDir, ConfigFile),
		runner: filepath.Join(b.Layout.WorkDir, RunnerFile),
		stats:  filepath.Join(b.Layout.WorkDir, StatsFile),
	}
	if err := os.MkdirAll(b.Layout.WorkDir, project.DirPermNormal); err != nil {
		return p, fmt.Errorf("creating work directory: %w", err)
	}
	rendered, err := Render(cfg)
	if err != nil {
		return p, fmt.Errorf("rendering webpack config: %w", err)
	}
	if err := platform.WriteFileAtomic(p.config, rendered, project.FilePermNormal); err != nil {
		return p, err
	}
	if err := platform.WriteFileAtomic(p.runner, runnerScript, project.FilePermNormal); err != nil {
		return p, err
	}
	if err := os.WriteFile(p.stats, nil, project.FilePermNormal); err != nil {
		return p, fmt.Errorf("resetting %s: %w", p.stats, err)
	}
	return p, nil
}

func (b *Bundler) nodeBin() string {
	if b.NodeBin == "" {
		return "node"
	}
	return b.NodeBin
}

func (b *Bundler) aggregateTimeout() time.Duration {
	if b.AggregateTimeout <= 0 {
		return DefaultAggregateTimeout
	}
	return b.AggregateTimeout
}

// Build runs one compilation. Compilation errors are returned as
// *BuildError together with the Result; warnings are left to the caller.
func (b *Bundler) Build(ctx context.Context, cfg *Config) (*Result, error) {
	p, err := b.prepare(cfg)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("running webpack", "mode", cfg.Mode, "env", cfg.Env, "out_dir", cfg.OutDir)
	if _, err := b.Runner.Run(ctx, runtime.Command{
		Name: b.nodeBin(),
		Args: []string{p.runner, p.config, p.stats, "build"},
		Dir:  b.Layout.Root,
	}); err != nil {
		return nil, fmt.Errorf("webpack: %w", err)
	}

	data, err := os.ReadFile(p.stats)
	if err != nil {
		return nil, fmt.Errorf("reading webpack stats: %w", err)
	}
	results, _, err := parseStats(data)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("webpack finished without reporting a result")
	}
	res := results[len(results)-1]
	if res.HasErrors {
		return res, &BuildError{Errors: res.Errors}
	}
	return res, nil
}

// parseStats decodes complete JSON lines from data. It returns the number of
// bytes consumed so callers tailing a growing file can resume after the last
// complete line.
func parseStats(data []byte) ([]*Result, int, error) {
	var results []*Result
	consumed := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if consumed+len(line) >= len(data) || data[consumed+len(line)] != '\n' {
			break
		}
		consumed += len(line) + 1
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var r Result
		if err := json.Unmarshal(line, &r); err != nil {
			return results, consumed, fmt.Errorf("parsing webpack stats: %w", err)
		}
		results = append(results, &r)
	}
	if err := sc.Err(); err != nil {
		return results, consumed, fmt.Errorf("reading webpack stats: %w", err)
	}
	return results, consumed, nil
}

func (b *Bundler) watchArgs(p paths) []string {
	ms := strconv.FormatInt(b.aggregateTimeout().Milliseconds(), 10)
	return []string{p.runner, p.config, p.stats, "watch", ms}
}
