package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/dataclient"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation})
}

// respondValidationError sends a 400 naming the offending field.
func respondValidationError(c *gin.Context, ve *dataclient.ValidationError) {
	resp := ErrorResponse{Error: ve.Message, Code: CodeValidation}
	if ve.Field != "" {
		resp.Details = gin.H{"field": ve.Field}
	}
	c.JSON(http.StatusBadRequest, resp)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondClientError maps a dataclient error onto the matching status code.
func respondClientError(c *gin.Context, err error, context string) {
	var ve *dataclient.ValidationError
	switch {
	case errors.As(err, &ve):
		respondValidationError(c, ve)
	case errors.Is(err, dataclient.ErrNotFound):
		respondNotFound(c, "question")
	case errors.Is(err, dataclient.ErrInvalidInput):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryInt reads an optional non-negative integer query parameter.
// Returns 0 when absent, or responds with a 400 error and returns false.
func parseQueryInt(c *gin.Context, paramName string) (int, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid " + paramName,
			Code:    CodeValidation,
			Details: gin.H{"field": paramName},
		})
		return 0, false
	}
	return n, true
}
