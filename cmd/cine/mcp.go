package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/cinebot/internal/transport/mcp"
	"github.com/sandevgo/cinebot/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the movie tools over MCP stdio",
	Long:  `Runs an MCP server on stdin/stdout exposing discover, trending, synopsis and similar tools. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// stdout carries the protocol
		ctx = log.NewStderrContext(ctx, debug)

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		return mcp.NewServer(a.turns(), cineVersion()).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
