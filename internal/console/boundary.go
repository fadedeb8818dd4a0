package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// PanicError carries a value recovered from a panicking action.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Boundary runs menu actions so that a failing action is reported and the
// menu loop keeps going.
type Boundary struct {
	printer *Printer
	logger  *zap.Logger
}

func NewBoundary(printer *Printer, logger *zap.Logger) *Boundary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Boundary{printer: printer, logger: logger}
}

// Run calls fn and reports any error or panic under name. Only end of input
// and context cancellation are returned, so callers can stop their loops.
func (b *Boundary) Run(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("console: action panicked", zap.String("action", name), zap.Any("panic", r), zap.StackSkip("stack", 2))
			b.Report(name, &PanicError{Value: r})
			err = nil
		}
	}()

	err = fn()
	switch {
	case err == nil:
		return nil
	case IsTerminal(err):
		return err
	default:
		b.logger.Error("console: action failed", zap.String("action", name), zap.Error(err))
		b.Report(name, err)
		return nil
	}
}

// Report renders err in a bordered box.
func (b *Boundary) Report(where string, err error) {
	b.printer.Box(
		"Error kind: "+Kind(err),
		"Message:    "+err.Error(),
		"Context:    "+where,
	)
}

// IsTerminal reports whether err means the session is over rather than that
// one action failed.
func IsTerminal(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

// Kind names the innermost error type, following wrapped and joined errors
// down to the last cause.
func Kind(err error) string {
	for {
		switch e := err.(type) {
		case interface{ Unwrap() error }:
			next := e.Unwrap()
			if next == nil {
				return fmt.Sprintf("%T", err)
			}
			err = next
		case interface{ Unwrap() []error }:
			errs := e.Unwrap()
			if len(errs) == 0 {
				return fmt.Sprintf("%T", err)
			}
			err = errs[len(errs)-1]
		default:
			return fmt.Sprintf("%T", err)
		}
	}
}
