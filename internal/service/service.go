// Package service implements the menu workflows of the catalog. Every action
// reads its input through the console, validates it, and then makes a single
// create or delete call against the repository.
package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/console"
)

// menuAction is one entry of a workflow menu.
type menuAction struct {
	label string
	run   func(ctx context.Context) error
}

// runMenu shows title until the trailing back option is picked. Each action
// runs inside the UI boundary, so a failing action returns to the menu.
func runMenu(ctx context.Context, ui *console.UI, title string, actions []menuAction, back string) error {
	options := make([]string, 0, len(actions)+1)
	for _, a := range actions {
		options = append(options, a.label)
	}
	options = append(options, back)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx, err := ui.Chooser.Choose(ctx, title, options)
		if err != nil {
			return err
		}
		if idx == len(actions) {
			return nil
		}
		action := actions[idx]
		if err := ui.Boundary.Run(action.label, func() error { return action.run(ctx) }); err != nil {
			return err
		}
	}
}

// startAction tags the logger with a fresh action id.
func startAction(logger *zap.Logger, name string) *zap.Logger {
	l := logger.With(zap.String("action", name), zap.String("action_id", uuid.NewString()))
	l.Info("service: action started")
	return l
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
