// cmd/mcp-server: HTTP tool server for mathex
//
// Exposes the mathex tool interface to AI agent frameworks.
//
// Configuration comes from the YAML file named by CONFIG_FILE_PATH and the
// MCP_SERVER_LISTEN_PORT, GIN_DEBUG_MODE, CORS_ALLOW_ORIGINS and LOG_LEVEL
// environment variables.
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	conf, err := loadConfig(os.Getenv(ENV_CONFIG_FILE_PATH), os.Getenv)
	initLogger(conf.Logging)
	if err != nil {
		slog.Error("Error loading config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !conf.GinDebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           newRouter(conf),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       conf.ReadTimeout,
		WriteTimeout:      conf.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("Starting mathex MCP server", slog.String("port", conf.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Exited mathex MCP server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
