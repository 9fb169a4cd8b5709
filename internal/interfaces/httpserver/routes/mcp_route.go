package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/janhq/grokart/internal/interfaces/httpserver/responses"
	"github.com/janhq/grokart/internal/interfaces/mcp"
	"github.com/janhq/grokart/pkg/observability/middleware"
)

const mcpPath = "/mcp"

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

// MCPRoute exposes the MCP server over streamable HTTP.
type MCPRoute struct {
	httpHandler http.Handler
}

func NewMCPRoute(mcpServer *mcp.MCPServer) *MCPRoute {
	instrument := middleware.HTTPMiddleware(
		otel.Tracer("grokart/httpserver"),
		otel.Meter("grokart/httpserver"),
		mcp.ServerName,
		"/v1"+mcpPath,
	)
	return &MCPRoute{httpHandler: instrument(mcpServer.HTTPHandler())}
}

func (route *MCPRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST(mcpPath, MCPMethodGuard(allowedMCPMethods), route.serveMCP)
}

func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	// The streamable handler rejects requests whose Accept header omits either type.
	reqCtx.Request.Header.Set("Accept", "application/json, text/event-stream")
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

// MCPMethodGuard rejects JSON-RPC requests whose method is not in allowedMethods before
// they reach the MCP handler. The body is restored for the next handler.
func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleError(reqCtx, http.StatusInternalServerError, responses.CodeInternal, "failed to read MCP request body")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleError(reqCtx, http.StatusBadRequest, responses.CodeInvalidRequest, "empty MCP request body")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}
		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleError(reqCtx, http.StatusBadRequest, responses.CodeInvalidRequest, "invalid MCP request payload")
			return
		}

		if payload.Method == "" {
			responses.HandleError(reqCtx, http.StatusBadRequest, responses.CodeInvalidRequest, "missing method field in MCP request")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleError(reqCtx, http.StatusBadRequest, responses.CodeUnsupportedMethod, "unsupported MCP method: "+payload.Method)
			return
		}

		reqCtx.Next()
	}
}
