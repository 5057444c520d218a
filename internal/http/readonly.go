package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CodeReadOnly is the error code of writes rejected by ReadOnlyMiddleware.
const CodeReadOnly = "read_only"

// readOnlyAllowed are non-GET endpoints that do not change data.
var readOnlyAllowed = map[string]bool{
	"/api/questions/check-duplicate": true,
}

// ReadOnlyMiddleware rejects every request that could change the question bank.
// GET, HEAD and OPTIONS always pass.
func ReadOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if readOnlyAllowed[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error: "This server is read-only",
			Code:  CodeReadOnly,
		})
	}
}
