package interfaces

import (
	"github.com/google/wire"

	"github.com/janhq/grokart/internal/interfaces/httpserver"
	"github.com/janhq/grokart/internal/interfaces/httpserver/routes"
	"github.com/janhq/grokart/internal/interfaces/mcp"
)

// InterfacesProvider provides all interface layer dependencies
var InterfacesProvider = wire.NewSet(
	mcp.NewImageGenerateMCP,
	mcp.NewMCPServer,
	routes.NewMCPRoute,
	httpserver.NewHTTPServer,
)
