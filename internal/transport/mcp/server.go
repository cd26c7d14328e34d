// Package mcp exposes the movie handlers as MCP tools over stdio, so an
// assistant can drive the same turns the webhook serves.
package mcp

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/service/command"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
	"github.com/sandevgo/cinebot/pkg/log"
)

const DefaultSessionID = "mcp-local"

type Server struct {
	mcp       *server.MCPServer
	turns     *command.TurnRunner
	sessionID string
	in        io.Reader
	out       io.Writer
}

func NewServer(turns *command.TurnRunner, version string) *Server {
	s := &Server{
		mcp:       server.NewMCPServer(core.CineName, version, server.WithToolCapabilities(false)),
		turns:     turns,
		sessionID: DefaultSessionID,
		in:        os.Stdin,
		out:       os.Stdout,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	filterOpts := []mcp.ToolOption{
		mcp.WithString("provider", mcp.Description("Streaming service, e.g. netflix, hulu, prime, disney, hbo, apple")),
		mcp.WithString("genre", mcp.Description("Genre name, e.g. action, science fiction")),
		mcp.WithNumber("year", mcp.Description("Primary release year")),
	}

	s.mcp.AddTool(mcp.NewTool("discover_movies",
		append([]mcp.ToolOption{mcp.WithDescription("Find popular movies by streaming service, genre and year")}, filterOpts...)...,
	), s.filterTool(func(map[string]any) string { return fulfillment.HandlerDiscover }))

	s.mcp.AddTool(mcp.NewTool("trending_movies",
		append([]mcp.ToolOption{mcp.WithDescription("Show trending movies, optionally on one streaming service")}, filterOpts...)...,
	), s.filterTool(func(params map[string]any) string {
		if _, ok := params[core.ParamProvider]; ok {
			return fulfillment.HandlerTrendingProvider
		}
		return fulfillment.HandlerTrending
	}))

	s.mcp.AddTool(mcp.NewTool("movie_synopsis",
		mcp.WithDescription("Show the synopsis, genres and top cast of a movie"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Movie title")),
		mcp.WithNumber("year", mcp.Description("Release year, to pick between movies with the same title")),
	), s.titleTool(fulfillment.HandlerSynopsis))

	s.mcp.AddTool(mcp.NewTool("similar_movies",
		mcp.WithDescription("Suggest movies similar to a title"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Movie title")),
	), s.titleTool(fulfillment.HandlerSimilar))

	s.mcp.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Forget the movies shown so far"),
	), s.resetTool)
}

func (s *Server) filterTool(pick func(map[string]any) string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := map[string]any{}
		if v := strings.TrimSpace(req.GetString("provider", "")); v != "" {
			params[core.ParamProvider] = v
		}
		if v := strings.TrimSpace(req.GetString("genre", "")); v != "" {
			params[core.ParamGenre] = v
		}
		if y := req.GetInt("year", 0); y != 0 {
			params[core.ParamDatePeriod] = map[string]any{"startDate": map[string]any{"year": y}}
		}
		return s.run(ctx, pick(params), params), nil
	}
}

func (s *Server) titleTool(handler string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		params := map[string]any{core.ParamMovie: title}
		if y := req.GetInt("year", 0); y != 0 {
			params[core.ParamDatePeriod] = map[string]any{"startDate": map[string]any{"year": y}}
		}
		return s.run(ctx, handler, params), nil
	}
}

func (s *Server) resetTool(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.turns.Reset(ctx, s.sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Session cleared"), nil
}

func (s *Server) run(ctx context.Context, handler string, params map[string]any) *mcp.CallToolResult {
	out, err := s.turns.Run(ctx, s.sessionID, handler, params)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("handler", handler).Msg("tool call failed")
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(out)
}

// Start serves MCP over stdio until ctx is done or stdin closes.
func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("mcp server listening on stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, s.in, s.out)
}

func (s *Server) Shutdown(context.Context) error {
	return nil
}
