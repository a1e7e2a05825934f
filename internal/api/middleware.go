package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mandalart/internal/util"
	"mandalart/pkg/metrics"
	"mandalart/pkg/trace"
)

const sessionCookie = "mandalart_session"

// RequestLogger logs every request and records its duration.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		traceID := c.GetHeader(trace.HeaderName())
		if traceID == "" {
			traceID = trace.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))

		c.Next()

		latency := time.Since(start)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("trace_id", traceID),
		)
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), latency)
	}
}

// SessionMiddleware resolves the optional authenticated user and a
// stable session key. Anonymous visitors get a session cookie so the
// planner state machine works without an account; authenticated users
// are keyed by user id.
func SessionMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := util.ExtractToken(c.Request); token != "" {
			if userID, err := util.ParseJWT(token, jwtSecret); err == nil {
				c.Set("user_id", userID)
				c.Set("session_key", fmt.Sprintf("u:%d", userID))
				c.Next()
				return
			}
		}

		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, int(util.TokenTTL.Seconds()), "/", "", false, true)
		}
		c.Set("session_key", "s:"+sid)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless SessionMiddleware resolved a user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) int {
	if v, exists := c.Get("user_id"); exists {
		return v.(int)
	}
	return 0
}

func sessionKey(c *gin.Context) string {
	return c.GetString("session_key")
}
