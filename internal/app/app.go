// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sdscan/internal/appcore"
	"sdscan/internal/cli"
	"sdscan/internal/config"
)

// RunContext parses argv, runs the search and returns the exit code:
// 0 ok, 2 usage or invalid parameters, 3 I/O failure, 130 interrupted.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := appcore.ExitOK
	cmd := cli.NewRootCmd(viper.New(), func(cmd *cobra.Command, p config.Params) error {
		code = appcore.Run(cmd.Context(), stdout, stderr, p)
		return nil
	})
	if argv == nil {
		// cobra falls back to os.Args when args are nil
		argv = []string{}
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return appcore.ExitUsage
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
