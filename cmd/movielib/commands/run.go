package commands

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive menus",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenus(cmd)
	},
}

func runMenus(cmd *cobra.Command) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	ui := console.New(in, out, !a.cfg.PlainMenus && isTerminal(in) && isTerminal(out), a.logger)

	err = service.NewMainService(a.repo, ui, a.logger).Run(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	rootCmd.AddCommand(runCmd)
}
