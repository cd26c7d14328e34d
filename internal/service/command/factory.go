package command

import (
	"github.com/sandevgo/cinebot/internal/core"
)

// NewRouter registers every chat command, /help included.
func NewRouter(turns *TurnRunner) *Router {
	var router *Router
	router = New([]core.Command{
		NewDiscoverCommand(turns),
		NewMovieCommand(turns),
		NewSimilarCommand(turns),
		NewTrendingCommand(turns),
		NewResetCommand(turns),
		NewHelpCommand(func() []core.Command { return router.ListCommands() }),
	})
	return router
}
