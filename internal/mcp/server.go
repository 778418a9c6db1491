// ABOUTME: MCP server setup for the healthlog journal.
// ABOUTME: Wraps the MCP server around a Tracker over the configured store.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/healthlog/internal/logging"
	"github.com/harperreed/healthlog/internal/tracker"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	logger    *zap.Logger
}

// NewServer creates a new MCP server over tr.
func NewServer(tr *tracker.Tracker, logger *zap.Logger) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthlog",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   tr,
		logger:    logging.OrNop(logger).Named(logging.NameMCP),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
