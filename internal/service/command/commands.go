package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
)

// turnCommand maps a slash command onto a fulfillment handler.
type turnCommand struct {
	name        string
	description string
	usage       string
	examples    []string
	needsArgs   bool
	handler     func(args []string) (string, map[string]any)
	turns       *TurnRunner
	formatter   *ResponseFormatter
}

func (c *turnCommand) Name() string {
	return c.name
}

func (c *turnCommand) Description() string {
	return c.description
}

func (c *turnCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if c.needsArgs && len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info(c.description),
			c.formatter.Usage(c.usage),
			c.formatter.Examples(c.examples),
		), nil
	}
	handler, params := c.handler(args)
	return c.turns.Run(ctx, sessionID, handler, params)
}

func NewDiscoverCommand(turns *TurnRunner) core.Command {
	return &turnCommand{
		name:        "discover",
		description: "Find popular movies by service, genre and year",
		usage:       "/discover [provider] [genre] [year]",
		examples:    []string{"/discover netflix action 2020", "/discover science fiction"},
		handler: func(args []string) (string, map[string]any) {
			return fulfillment.HandlerDiscover, FilterParams(args)
		},
		turns:     turns,
		formatter: NewResponseFormatter(),
	}
}

func NewMovieCommand(turns *TurnRunner) core.Command {
	return &turnCommand{
		name:        "movie",
		description: "Show the synopsis, genres and cast of a movie",
		usage:       "/movie <title> [year]",
		examples:    []string{"/movie Inception", "/movie Dune 1984"},
		needsArgs:   true,
		handler: func(args []string) (string, map[string]any) {
			return fulfillment.HandlerSynopsis, TitleParams(args)
		},
		turns:     turns,
		formatter: NewResponseFormatter(),
	}
}

func NewSimilarCommand(turns *TurnRunner) core.Command {
	return &turnCommand{
		name:        "similar",
		description: "Suggest movies similar to a title",
		usage:       "/similar <title>",
		examples:    []string{"/similar Alien"},
		needsArgs:   true,
		handler: func(args []string) (string, map[string]any) {
			return fulfillment.HandlerSimilar, TitleParams(args)
		},
		turns:     turns,
		formatter: NewResponseFormatter(),
	}
}

func NewTrendingCommand(turns *TurnRunner) core.Command {
	return &turnCommand{
		name:        "trending",
		description: "Show what is popular, optionally on one service",
		usage:       "/trending [provider] [genre] [year]",
		examples:    []string{"/trending", "/trending hulu horror"},
		handler: func(args []string) (string, map[string]any) {
			params := FilterParams(args)
			if _, ok := params[core.ParamProvider]; ok {
				return fulfillment.HandlerTrendingProvider, params
			}
			return fulfillment.HandlerTrending, params
		},
		turns:     turns,
		formatter: NewResponseFormatter(),
	}
}

type ResetCommand struct {
	turns     *TurnRunner
	formatter *ResponseFormatter
}

func NewResetCommand(turns *TurnRunner) core.Command {
	return &ResetCommand{turns: turns, formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Forget the movies shown in this chat"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	if err := c.turns.Reset(ctx, sessionID); err != nil {
		return "", fmt.Errorf("failed to reset session: %w", err)
	}
	return c.formatter.Success("Session cleared"), nil
}

type HelpCommand struct {
	list      func() []core.Command
	formatter *ResponseFormatter
}

// NewHelpCommand lists whatever list returns at execution time, so it can be
// registered in the same router it describes.
func NewHelpCommand(list func() []core.Command) core.Command {
	return &HelpCommand{list: list, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(context.Context, string, []string) (string, error) {
	cmds := c.list()
	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("**/%s** %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info(core.CineName),
		c.formatter.List(items),
		c.formatter.Tip("Send a plain movie title to get its synopsis"),
	), nil
}
