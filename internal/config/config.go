package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"surety/pkg/logger"
)

const (
	DBProfileProduction = "production"
	DBProfileExample    = "example"
	DBProfileTest       = "test"
)

var dbProfileFiles = map[string]string{
	DBProfileProduction: "surety.db",
	DBProfileExample:    "surety-example.db",
	DBProfileTest:       "surety-test.db",
}

type Config struct {
	HTTPPort       string
	Env            string
	CORSOrigins    []string
	MetricsEnabled bool
	DB             DBConfig
	MCP            MCPConfig
}

type DBConfig struct {
	Profile      string
	Path         string
	MaxOpenConns int
	BusyTimeout  time.Duration
	// Protected lists file names that must never be opened, used to keep
	// test runs away from real data.
	Protected []string
}

type MCPConfig struct {
	Name        string
	Version     string
	HTTPEnabled bool
	HTTPPath    string
	SettingsURL string
}

// New returns a viper instance with defaults, environment binding and the
// nearest .env file loaded. Environment variables win over .env values.
func New(log logger.Logger) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	path, err := findDotEnv(dotenvFilename)
	if err != nil {
		return v, nil
	}
	if err := loadDotEnv(v, path); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if log != nil {
		log.Info("dotenv: loaded", "path", path)
	}
	return v, nil
}

// Load reads configuration from the environment and the nearest .env file.
func Load(log logger.Logger) (Config, error) {
	v, err := New(log)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	env := strings.ToLower(strings.TrimSpace(v.GetString("ENV")))

	profile := strings.ToLower(strings.TrimSpace(v.GetString("SURETY_DB")))
	if profile == "" {
		profile = DBProfileProduction
	}
	file, ok := dbProfileFiles[profile]
	if !ok {
		return Config{}, fmt.Errorf("SURETY_DB: unknown profile %q", profile)
	}

	path := strings.TrimSpace(v.GetString("DB_PATH"))
	if path == "" {
		path = filepath.Join(v.GetString("DATA_DIR"), file)
	}

	var protected []string
	if env == "test" {
		protected = []string{dbProfileFiles[DBProfileProduction], dbProfileFiles[DBProfileExample]}
	}

	port := v.GetString("HTTP_PORT")
	return Config{
		HTTPPort:       port,
		Env:            env,
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		DB: DBConfig{
			Profile:      profile,
			Path:         path,
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			BusyTimeout:  v.GetDuration("DB_BUSY_TIMEOUT"),
			Protected:    protected,
		},
		MCP: MCPConfig{
			Name:        v.GetString("MCP_SERVER_NAME"),
			Version:     v.GetString("MCP_SERVER_VERSION"),
			HTTPEnabled: v.GetBool("MCP_HTTP_ENABLED"),
			HTTPPath:    v.GetString("MCP_HTTP_PATH"),
			SettingsURL: "http://localhost:" + port + "/settings",
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "7015")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:7015")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SURETY_DB", DBProfileProduction)
	v.SetDefault("DB_PATH", "")
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_BUSY_TIMEOUT", 5*time.Second)
	v.SetDefault("MCP_SERVER_NAME", "surety")
	v.SetDefault("MCP_SERVER_VERSION", "0.1.0")
	v.SetDefault("MCP_HTTP_ENABLED", true)
	v.SetDefault("MCP_HTTP_PATH", "/mcp")
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
