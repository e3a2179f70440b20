// ABOUTME: MCP server setup for the moodlog tracker.
// ABOUTME: Wraps the MCP server with storage, the analysis engine, and a logger.
package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/moodlog/internal/analysis"
	"github.com/harperreed/moodlog/internal/models"
	"github.com/harperreed/moodlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options tunes server defaults. Zero values fall back to 30 days and 12 weeks.
type Options struct {
	Logger       *log.Logger
	WindowDays   int
	HeatmapWeeks int
	Version      string
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	engine    *analysis.Engine
	logger    *log.Logger

	windowDays   int
	heatmapWeeks int
}

// NewServer creates a new MCP server with the given storage and engine.
func NewServer(repo storage.Repository, engine *analysis.Engine, opts Options) (*Server, error) {
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "moodlog",
			Version: opts.Version,
		},
		nil,
	)

	s := &Server{
		mcpServer:    mcpServer,
		repo:         repo,
		engine:       engine,
		logger:       opts.Logger,
		windowDays:   opts.WindowDays,
		heatmapWeeks: opts.HeatmapWeeks,
	}
	if s.engine == nil {
		s.engine = analysis.NewEngine(analysis.Config{})
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.windowDays <= 0 {
		s.windowDays = 30
	}
	if s.heatmapWeeks <= 0 {
		s.heatmapWeeks = 12
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// days returns requested, or the server default when it is not positive.
func (s *Server) days(requested int) int {
	if requested <= 0 {
		return s.windowDays
	}
	return requested
}

// snapshot loads everything analysis needs for a window of windowDays.
func (s *Server) snapshot(ctx context.Context, windowDays int) (*models.Snapshot, error) {
	snap, err := s.repo.Snapshot(ctx, s.engine.WindowStart(windowDays))
	if err != nil {
		s.logger.Error("snapshot failed", "window_days", windowDays, "err", err)
		return nil, err
	}
	s.logger.Debug("snapshot loaded",
		"window_days", windowDays,
		"habits", len(snap.Habits),
		"entries", len(snap.Entries),
		"moods", len(snap.Moods),
		"health", len(snap.Health),
	)
	return snap, nil
}
