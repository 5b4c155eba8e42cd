package util

import (
	"net/http"

	"revhub/internal/apperr"
	"revhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SuccessResponse writes the {success: true, ...} envelope
func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	resp := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		resp["data"] = data
	}
	c.JSON(status, resp)
}

// ErrorResponse writes the {success: false, ...} envelope
func ErrorResponse(c *gin.Context, status int, errMsg, code string) {
	c.JSON(status, gin.H{
		"success": false,
		"status":  code,
		"error":   errMsg,
	})
}

// Error maps a tagged application error onto the response envelope.
// Internal causes are logged, never returned to the client.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusOf(kind)
	if kind == apperr.KindInternal {
		logger.Errorf("request failed: %v", err)
	}
	ErrorResponse(c, status, apperr.MessageOf(err), apperr.CodeOf(err))
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest writes a 400 with the standard envelope
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

// Unauthorized writes a 401 with the standard envelope
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, "UNAUTHORIZED")
}
