package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/services/session"
)

const callerKey = "caller"

// RequestLogger logs one line per request with zap
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if caller, ok := callerFrom(c); ok {
			fields = append(fields, zap.String("caller_id", caller.CallerID()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// tokenParser is the part of the session token issuer the middleware needs
type tokenParser interface {
	Parse(token string) (session.Context, error)
}

// SessionMiddleware resolves the bearer token into a session.Context
func SessionMiddleware(tokens tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "invalid authorization format, use 'Bearer <token>'"})
			return
		}

		caller, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole rejects callers without the given role
func RequireRole(role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "role missing"})
			return
		}
		if err := session.RequireRole(caller, role); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: err.Error()})
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) (session.Context, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return nil, false
	}
	caller, ok := value.(session.Context)
	return caller, ok
}
