package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/cinebot/internal/service/command"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
	"github.com/sandevgo/cinebot/internal/service/ui"
	"github.com/sandevgo/cinebot/pkg/conv"
	"github.com/sandevgo/cinebot/pkg/log"
	"github.com/spf13/cobra"
)

const cliSessionID = "cli-local"

var askSession string

var askCmd = &cobra.Command{
	Use:   "ask <command or title>",
	Short: "Run one chat turn from the terminal",
	Long: `Runs a chat command against the local session, e.g.

  cine ask discover netflix action 2020
  cine ask movie Dune 1984
  cine ask Inception

Anything that is not a known command is looked up as a movie title.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := log.NewStderrContext(cmd.Context(), debug)

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		turns := a.turns()
		router := command.NewRouter(turns)

		input := "/" + strings.Join(args, " ")
		var reply string
		if isCommand(router, args[0]) {
			reply, _ = router.Execute(ctx, askSession, input)
		} else {
			reply, err = turns.Run(ctx, askSession, fulfillment.HandlerSynopsis, command.TitleParams(args))
			if err != nil {
				return err
			}
		}

		text, err := conv.MarkdownToPlainText([]byte(reply))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.ReplyStyle.Render(text))
		return nil
	},
}

func isCommand(router *command.Router, name string) bool {
	for _, c := range router.ListCommands() {
		if strings.EqualFold(c.Name(), strings.TrimPrefix(name, "/")) {
			return true
		}
	}
	return false
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", cliSessionID, "session id to read and update")
	rootCmd.AddCommand(askCmd)
}
