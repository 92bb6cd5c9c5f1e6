package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH       = "CONFIG_FILE_PATH"
	ENV_GIN_DEBUG_MODE         = "GIN_DEBUG_MODE"
	ENV_MCP_SERVER_LISTEN_PORT = "MCP_SERVER_LISTEN_PORT"
	ENV_CORS_ALLOW_ORIGINS     = "CORS_ALLOW_ORIGINS"
	ENV_LOG_LEVEL              = "LOG_LEVEL"
)

const (
	defaultPort         = "8080"
	defaultMaxBodyBytes = 1 << 20 // 1 MiB
	defaultTimeout      = 15 * time.Second
)

type LoggerConfig struct {
	LogLevel        string `yaml:"log_level"`
	IncludeSrc      bool   `yaml:"include_src"`
	LogToFile       bool   `yaml:"log_to_file"`
	Filename        string `yaml:"filename"`
	MaxSize         int    `yaml:"max_size"`
	MaxAge          int    `yaml:"max_age"`
	MaxBackups      int    `yaml:"max_backups"`
	CompressOldLogs bool   `yaml:"compress_old_logs"`
}

type Config struct {
	GinDebugMode bool     `yaml:"gin_debug_mode"`
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`

	Logging LoggerConfig `yaml:"logging"`
}

// loadConfig reads the optional YAML file, applies env overrides and fills
// defaults. A missing file is not an error; a malformed one is.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	conf := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return conf, errors.Wrap(err, "read config file")
		}
		if err := yaml.UnmarshalStrict(data, &conf); err != nil {
			return conf, errors.Wrap(err, "parse config file")
		}
	}

	if v := getenv(ENV_GIN_DEBUG_MODE); v != "" {
		conf.GinDebugMode = v == "true"
	}
	if v := getenv(ENV_MCP_SERVER_LISTEN_PORT); v != "" {
		conf.Port = v
	}
	if v := getenv(ENV_CORS_ALLOW_ORIGINS); v != "" {
		conf.AllowOrigins = strings.Split(v, ",")
	}
	if v := getenv(ENV_LOG_LEVEL); v != "" {
		conf.Logging.LogLevel = v
	}

	if conf.Port == "" {
		conf.Port = defaultPort
	}
	if conf.MaxBodyBytes <= 0 {
		conf.MaxBodyBytes = defaultMaxBodyBytes
	}
	if conf.ReadTimeout <= 0 {
		conf.ReadTimeout = defaultTimeout
	}
	if conf.WriteTimeout <= 0 {
		conf.WriteTimeout = defaultTimeout
	}
	return conf, nil
}

func initLogger(lc LoggerConfig) {
	opts := &slog.HandlerOptions{
		Level:     logLevelFromString(lc.LogLevel),
		AddSource: lc.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, _ := a.Value.Any().(*slog.Source); source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}

	var w io.Writer = os.Stdout
	if lc.LogToFile && lc.Filename != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   lc.Filename,
			MaxSize:    lc.MaxSize, // megabytes
			MaxAge:     lc.MaxAge,  // days
			MaxBackups: lc.MaxBackups,
			Compress:   lc.CompressOldLogs,
		})
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
