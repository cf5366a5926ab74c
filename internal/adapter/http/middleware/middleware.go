package middleware

import (
	"net/http"
	"strings"
	"time"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"
	"orangecat-wallets/pkg/apperror"
	"orangecat-wallets/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxUserID     = "user_id"
	CtxResourceID = "resource_id"

	maxRequestIDLength = 64
)

// RequestID propagates a caller-supplied X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}
		c.Set(response.CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth rejects requests without a valid Bearer token.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tokenSvc, log)
		if !ok || claims == nil {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// OptionalJWTAuth lets anonymous requests through but still rejects a bad token.
func OptionalJWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tokenSvc, log)
		if !ok {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}
		if claims != nil {
			c.Set(CtxUserID, claims.UserID)
		}
		c.Next()
	}
}

// bearerClaims returns nil, true when no Authorization header is present.
func bearerClaims(c *gin.Context, tokenSvc ports.TokenService, log zerolog.Logger) (*ports.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}
	if len(authHeader) < 8 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return nil, false
	}

	claims, err := tokenSvc.Validate(strings.TrimSpace(authHeader[7:]))
	if err != nil {
		log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("rejected bearer token")
		return nil, false
	}
	return claims, true
}

// CallerFrom returns the authenticated caller, or the anonymous caller.
func CallerFrom(c *gin.Context) domain.Caller {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return domain.Caller{UserID: id}
		}
	}
	return domain.Anonymous()
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(response.CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(response.CtxRequestID)).
					Msg("panic recovered")
				response.Error(c, apperror.InternalError(nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}
