package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/export"
	"github.com/KeleWarg/design-theme-library/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server exposes the design library over MCP: theme and token queries,
// component lookups, and package builds.
type Server struct {
	mcpServer *server.MCPServer
	query     *catalog.QueryService
	builder   *export.Builder // may be nil; build_package then errors
	logger    *mcplog.Logger  // may be nil; tool-call logging disabled
}

// NewServer creates an MCP server backed by the given QueryService and
// optional package Builder.
func NewServer(qs *catalog.QueryService, b *export.Builder, logger *mcplog.Logger) *Server {
	s := &Server{query: qs, builder: b, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("themelib", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listThemesTool(), Handler: s.handleListThemes},
		server.ServerTool{Tool: getThemeTool(), Handler: s.handleGetTheme},
		server.ServerTool{Tool: getTokensTool(), Handler: s.handleGetTokens},
		server.ServerTool{Tool: searchTokensTool(), Handler: s.handleSearchTokens},
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentTool(), Handler: s.handleGetComponent},
		server.ServerTool{Tool: buildPackageTool(), Handler: s.handleBuildPackage},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
