// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"servisku/internal/domain/entities"
	"servisku/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"
	UserIDHeader    = "X-User-ID"
	UserRoleHeader  = "X-User-Role"

	requestIDKey = "request_id"
	callerKey    = "caller"
)

// RequestID reuses the incoming X-Request-ID or generates one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger stores a request-scoped logger in the request context, so
// log.Ctx(ctx) in usecases and repositories carries the request fields,
// and writes one line per request with a level derived from the status.
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := base.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("ip", c.ClientIP()).
			Logger()
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			reqLogger = reqLogger.With().Str("caller_id", id).Logger()
		}
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = reqLogger.Error()
		case status >= http.StatusBadRequest:
			event = reqLogger.Warn()
		default:
			event = reqLogger.Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("size", c.Writer.Size()).
			Msg("[http] request")
	}
}

// Recovery turns a panic into a 500 INTERNAL_ERROR body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("[http] recovered from panic")
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	})
}

// Identity reads the caller from X-User-ID / X-User-Role, set by the upstream
// gateway after authentication. Requests without a valid identity get 401.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFromHeaders(c)
		if !ok {
			appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid caller identity", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// GetCaller returns the identity stored by Identity, or the zero Caller.
func GetCaller(c *gin.Context) entities.Caller {
	if caller, ok := c.Get(callerKey); ok {
		if v, ok := caller.(entities.Caller); ok {
			return v
		}
	}
	return entities.Caller{}
}

func callerFromHeaders(c *gin.Context) (entities.Caller, bool) {
	id := strings.TrimSpace(c.GetHeader(UserIDHeader))
	if id == "" {
		return entities.Caller{}, false
	}
	role := entities.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(UserRoleHeader))))
	switch role {
	case entities.RoleUser, entities.RoleTechnician, entities.RoleAdmin:
		return entities.Caller{ID: id, Role: role}, true
	default:
		return entities.Caller{}, false
	}
}
