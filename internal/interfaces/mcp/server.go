package mcp

import (
	"context"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	ServerName    = "grokart"
	ServerVersion = "0.1.0"
)

// MCPServer owns the SDK server and the tools registered on it.
type MCPServer struct {
	server *mcpsdk.Server
}

// NewMCPServer creates the MCP server and registers every tool.
func NewMCPServer(imageMCP *ImageGenerateMCP) *MCPServer {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	imageMCP.RegisterTools(server)

	return &MCPServer{server: server}
}

// Server returns the underlying SDK server.
func (s *MCPServer) Server() *mcpsdk.Server {
	return s.server
}

// RunStdio serves MCP over stdin/stdout until the client disconnects or ctx is done.
func (s *MCPServer) RunStdio(ctx context.Context) error {
	log.Info().Msg("Grok Image Generator MCP server running on stdio")
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// HTTPHandler returns a stateless streamable HTTP handler for the server.
func (s *MCPServer) HTTPHandler() http.Handler {
	return mcpsdk.NewStreamableHTTPHandler(func(_ *http.Request) *mcpsdk.Server {
		return s.server
	}, &mcpsdk.StreamableHTTPOptions{Stateless: true})
}
