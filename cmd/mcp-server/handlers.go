package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/njchilds90/mathex"
)

func newRouter(conf Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	if len(conf.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: conf.AllowOrigins,
			AllowMethods: []string{"POST", "GET"},
			AllowHeaders: []string{"Origin", "Content-Type", "Content-Length"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.POST("/tool", toolHandler(conf.MaxBodyBytes))
	router.GET("/schema", schemaHandler)
	router.GET("/health", healthCheckHandler)
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// toolHandler executes one mathex.ToolRequest per POST body.
func toolHandler(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		defer c.Request.Body.Close()

		dec := json.NewDecoder(c.Request.Body)
		dec.DisallowUnknownFields()

		var req mathex.ToolRequest
		if err := dec.Decode(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: trailing data"})
			return
		}

		resp := mathex.HandleToolCall(req)
		if resp.Error != "" {
			slog.Info("tool call failed", slog.String("tool", req.Tool), slog.String("error", resp.Error))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func schemaHandler(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(mathex.MCPToolSpec()))
}

func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
