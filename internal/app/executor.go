package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-fetcher/internal/platform/logging"
)

// Operations run as Validate → Perform → Verify → Archive → Respond.
// Archive only sees verified results, so nothing is persisted (or cached)
// from a call that failed part way. Any step may be nil and is then skipped.

// ExecutionStep names a step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records which step failed.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap exposes the cause, so domain sentinels still match with errors.Is.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

var stepMessages = map[ExecutionStep]string{
	StepValidate: "input validation failed",
	StepPerform:  "operation failed",
	StepVerify:   "verification failed",
	StepArchive:  "state persistence failed",
	StepRespond:  "response failed",
}

func newStepError(step ExecutionStep, cause error) error {
	return &ExecutionError{Step: step, Message: stepMessages[step], Cause: cause}
}

// Executor runs Operations with per-step logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. The logger is used when the context
// carries none.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation holds the step functions. I is the input, P what Perform
// produced, V the verified value and O the response.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs op against input. A failing step stops the run and is
// returned as an *ExecutionError wrapping the step's error.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	if op.Validate != nil {
		if err := runStep(ctx, logger, StepValidate, func() error { return op.Validate(ctx, input) }); err != nil {
			return zero, err
		}
	}

	var performed P
	if op.Perform != nil {
		err := runStep(ctx, logger, StepPerform, func() (err error) {
			performed, err = op.Perform(ctx, input)
			return err
		})
		if err != nil {
			return zero, err
		}
	}

	var verified V
	if op.Verify != nil {
		err := runStep(ctx, logger, StepVerify, func() (err error) {
			verified, err = op.Verify(ctx, input, performed)
			return err
		})
		if err != nil {
			return zero, err
		}
	}

	if op.Archive != nil {
		if err := runStep(ctx, logger, StepArchive, func() error { return op.Archive(ctx, input, verified) }); err != nil {
			return zero, err
		}
	}

	result := zero
	if op.Respond != nil {
		err := runStep(ctx, logger, StepRespond, func() (err error) {
			result, err = op.Respond(ctx, input, verified)
			return err
		})
		if err != nil {
			return zero, err
		}
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

func runStep(ctx context.Context, logger *slog.Logger, step ExecutionStep, fn func() error) error {
	logger.Log(ctx, logging.LevelTrace, "step started", slog.String("step", string(step)))

	if err := fn(); err != nil {
		logger.DebugContext(ctx, "step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		return newStepError(step, err)
	}

	return nil
}

// IsExecutionError reports whether err came from a failed step.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep returns the step that produced err.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
