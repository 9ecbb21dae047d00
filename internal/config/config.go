package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultHTTPBind    = "127.0.0.1:8080"
	DefaultAPIEndpoint = "/api/v1"
	DefaultMCPEndpoint = "/mcp"
	DefaultLogLevel    = "info"
	DefaultDevLogDir   = ".moncal/log"
)

type Config struct {
	Tasks    TasksConfig    `toml:"tasks"`
	Calendar CalendarConfig `toml:"calendar"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
}

type TasksConfig struct {
	Path string `toml:"path"`
}

// NameConfig is one month or weekday label override.
type NameConfig struct {
	Full  string `toml:"full"`
	Short string `toml:"short"`
}

type CalendarConfig struct {
	ShowButtons bool         `toml:"show_buttons"`
	MonthNames  []NameConfig `toml:"month_names"`
	DayNames    []NameConfig `toml:"day_names"`
}

type ServerConfig struct {
	HTTPBind    string `toml:"http_bind"`
	APIEndpoint string `toml:"api_endpoint"`
	MCPEndpoint string `toml:"mcp_endpoint"`
}

type LoggingConfig struct {
	Level   string           `toml:"level"`
	DevFile DevFileLogConfig `toml:"dev_file"`
}

type DevFileLogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func Default(tasksPath string) Config {
	return Config{
		Tasks: TasksConfig{
			Path: tasksPath,
		},
		Calendar: CalendarConfig{
			ShowButtons: true,
		},
		Server: ServerConfig{
			HTTPBind:    DefaultHTTPBind,
			APIEndpoint: DefaultAPIEndpoint,
			MCPEndpoint: DefaultMCPEndpoint,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			DevFile: DevFileLogConfig{
				Enabled: true,
				Dir:     DefaultDevLogDir,
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	cfg.Tasks.Path = expandHome(cfg.Tasks.Path)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Tasks.Path) == "" {
		return errors.New("tasks.path is required")
	}

	if n := len(c.Calendar.MonthNames); n != 0 && n != 12 {
		return fmt.Errorf("calendar.month_names must list 12 months, got %d", n)
	}
	if n := len(c.Calendar.DayNames); n != 0 && n != 7 {
		return fmt.Errorf("calendar.day_names must list 7 days, got %d", n)
	}

	if strings.TrimSpace(c.Server.HTTPBind) == "" {
		return errors.New("server.http_bind is required")
	}
	api := strings.TrimSpace(c.Server.APIEndpoint)
	mcp := strings.TrimSpace(c.Server.MCPEndpoint)
	if !strings.HasPrefix(api, "/") {
		return fmt.Errorf("invalid server.api_endpoint: %q", c.Server.APIEndpoint)
	}
	if !strings.HasPrefix(mcp, "/") {
		return fmt.Errorf("invalid server.mcp_endpoint: %q", c.Server.MCPEndpoint)
	}
	if strings.TrimRight(api, "/") == strings.TrimRight(mcp, "/") {
		return fmt.Errorf("server.api_endpoint and server.mcp_endpoint must differ: %q", api)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Logging.DevFile.Enabled && strings.TrimSpace(c.Logging.DevFile.Dir) == "" {
		return errors.New("logging.dev_file.dir is required when enabled")
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// expandHome resolves a leading "~/" against the user home directory.
func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
