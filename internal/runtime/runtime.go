package runtime

import (
	"context"
	"fmt"
)

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env entries are added to the inherited environment, replacing
	// variables with the same name.
	Env []string
	// Quiet captures output without streaming it to the runner's writers.
	Quiet bool
}

// Output captures the result of a finished process.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

// secretFlags are flags whose following argument must not be logged.
var secretFlags = map[string]bool{
	"--password": true,
	"-p":         true,
}

// Redact returns a copy of args with the values of password flags masked.
func Redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if secretFlags[out[i]] {
			out[i+1] = "****"
			i++
		}
	}
	return out
}
