package customize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
)

// ErrNoApps is returned when a batch has nothing to process.
var ErrNoApps = errors.New("no apps to process")

// AppFailure pairs an app with the error that stopped it.
type AppFailure struct {
	App string
	Err error
}

// BatchError lists the apps that failed during a batch run.
type BatchError struct {
	Total    int
	Failures []AppFailure
}

func (e *BatchError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.App
	}
	return fmt.Sprintf("%d of %d apps failed: %s", len(e.Failures), e.Total, strings.Join(names, ", "))
}

// Unwrap exposes every per-app error to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// RunBatch calls fn for each name in order. A failing app is logged and the
// loop moves on; failures are returned together as a *BatchError. With a
// single name, its error is returned unchanged. An empty batch fails with
// ErrNoApps. Cancellation stops the loop.
func RunBatch(ctx context.Context, names []string, fn func(ctx context.Context, name string) error) error {
	switch len(names) {
	case 0:
		return ErrNoApps
	case 1:
		return fn(ctx, names[0])
	}

	logger := ctxlog.FromContext(ctx)
	var failures []AppFailure
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, name); err != nil {
			logger.Error("app failed", "app", name, "err", err)
			failures = append(failures, AppFailure{App: name, Err: err})
		}
	}
	if len(failures) > 0 {
		return &BatchError{Total: len(names), Failures: failures}
	}
	return nil
}
