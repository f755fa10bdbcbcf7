package main

import (
	"log/slog"
	"net/http"
	"time"

	"iss-sky-scanner/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and logs it once it completes
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request completed", attrs...)
			return
		}
		logger.Info("request completed", attrs...)
	}
}

// cors allows the assistant to be called from any origin
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Max-Age", "3600")
		}
		c.Next()
	}
}

// requireAPIKey rejects requests whose api_key query parameter does not match key
func (app *App) requireAPIKey(key bootstrap.APIKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := key.Check(c.Query("api_key")); err != nil {
			app.abortWithError(c, err)
			return
		}
		c.Next()
	}
}
