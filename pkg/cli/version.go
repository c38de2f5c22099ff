package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gojira version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.out.Info("gojira %s (%s/%s)", app.opts.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
