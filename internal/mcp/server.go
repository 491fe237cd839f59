// Package mcp exposes the claim desk to agents over the Model Context
// Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/claimdesk/internal/documents"
	"github.com/ziadkadry99/claimdesk/internal/pipeline"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes claim evaluation tools.
type Server struct {
	processor *pipeline.Processor
	documents *documents.Store
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server. docs may be nil, in which case
// list_documents reports the in-memory chunk store only.
func NewServer(processor *pipeline.Processor, docs *documents.Store) *Server {
	s := &Server{
		processor: processor,
		documents: docs,
	}

	s.mcp = server.NewMCPServer(
		"claimdesk",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(processQueryTool, s.handleProcessQuery)
	s.mcp.AddTool(searchPolicyChunksTool, s.handleSearchPolicyChunks)
	s.mcp.AddTool(assessClaimTool, s.handleAssessClaim)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(getProcessorConfigTool, s.handleGetProcessorConfig)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
