package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/orderpulse/internal/domain/dto"
	"github.com/guttosm/orderpulse/internal/logger"
)

var errPanic = errors.New("unexpected server failure")

// RecoveryMiddleware recovers from panics in later handlers, logs the panic value
// with its stack and request id, and answers 500 with the error envelope.
// The panic value itself is never sent to the client.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			log.Error().
				Str("request_id", toString(rid)).
				Str("route", c.FullPath()).
				Str("panic", fmt.Sprintf("%v", r)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", errPanic))
		}()

		c.Next()
	}
}
