package responses

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error codes returned by the HTTP transport before a request reaches the MCP handler
const (
	CodeInvalidRequest    = "invalid_request"
	CodeUnsupportedMethod = "unsupported_method"
	CodeInternal          = "internal_error"
)

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// HandleError aborts the request with a JSON error body.
func HandleError(reqCtx *gin.Context, status int, code, message string) {
	if status >= 500 {
		log.Error().
			Str("path", reqCtx.Request.URL.Path).
			Str("code", code).
			Msg(message)
	}
	reqCtx.AbortWithStatusJSON(status, ErrorResponse{Code: code, Error: message})
}
