package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// getLoggerFromCmd returns the slog.Logger set up by the root command
func getLoggerFromCmd(cmd *cobra.Command) *slog.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}
