package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/internal/domain/dto"
)

// ErrorHandler renders errors collected on the Gin context (via c.Error) when the
// handler did not write a response itself.
//
// Behavior:
//   - Runs after the handler chain.
//   - If nothing was written and c.Errors is not empty, the last error is rendered
//     as a 500 envelope; gin.ErrorTypeBind errors become 400.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	status := http.StatusInternalServerError
	message := "Internal server error"
	if last.IsType(gin.ErrorTypeBind) {
		status = http.StatusBadRequest
		message = "Malformed request"
	}
	var errResp dto.ErrorResponse
	if errors.As(last.Err, &errResp) {
		c.JSON(status, errResp)
		return
	}
	c.JSON(status, dto.NewErrorResponse(message, last.Err))
}

// AbortWithError aborts the request with the given status and the standard error envelope.
//
// Parameters:
//   - c (*gin.Context): the request context.
//   - status (int): the HTTP status code to return.
//   - message (string): human readable message.
//   - err (error): underlying cause, exposed as error_details; may be nil.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
