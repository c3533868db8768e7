// Package config holds the startup configuration shared by every graphview front-end.
// A Config is built once at startup and passed by value; nothing mutates it afterwards.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Neo4jConfig is the connection descriptor for the graph database.
type Neo4jConfig struct {
	URL      string `yaml:"url"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"` // empty = server default
}

// HTTPConfig configures the browser front-end.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ViewConfig describes the container the widget draws into.
type ViewConfig struct {
	ContainerID string `yaml:"container_id"`
	Width       int    `yaml:"width"`  // px
	Height      int    `yaml:"height"` // px
	NeovisURL   string `yaml:"neovis_url"`
}

// GeminiConfig enables the LLM-assisted endpoints when APIKey is set.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // flash, pro, flash-2, experimental
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	File   string `yaml:"file"`   // empty = stderr
}

// Config contains every setting graphview reads at startup.
// Use Default() to get sensible defaults, then override as needed.
type Config struct {
	Neo4j  Neo4jConfig  `yaml:"neo4j"`
	HTTP   HTTPConfig   `yaml:"http"`
	View   ViewConfig   `yaml:"view"`
	Gemini GeminiConfig `yaml:"gemini"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns a Config with sensible defaults.
// Credentials are left empty: a missing credential shows up as a failed connection, not here.
func Default() Config {
	return Config{
		Neo4j: Neo4jConfig{
			Database: "neo4j",
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000", "localhost:3000"},
		},
		View: ViewConfig{
			ContainerID: "graph",
			Width:       1000,
			Height:      1000,
			NeovisURL:   "https://unpkg.com/neovis.js@2.1.0",
		},
		Gemini: GeminiConfig{
			Model: "pro",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// WithNeo4j returns a copy of the config with the given connection descriptor.
func (c Config) WithNeo4j(url, user, password string) Config {
	c.Neo4j.URL = url
	c.Neo4j.User = user
	c.Neo4j.Password = password
	return c
}

// WithHTTPAddr returns a copy of the config listening on addr.
func (c Config) WithHTTPAddr(addr string) Config {
	c.HTTP.Addr = addr
	return c
}

// WithContainer returns a copy of the config with a different mount point.
func (c Config) WithContainer(id string, width, height int) Config {
	c.View.ContainerID = id
	c.View.Width = width
	c.View.Height = height
	return c
}

// WithLogFile returns a copy of the config logging to path.
func (c Config) WithLogFile(path string) Config {
	c.Log.File = path
	return c
}

// LLMEnabled reports whether the Gemini-backed features can run.
func (c Config) LLMEnabled() bool {
	return c.Gemini.APIKey != ""
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.View.ContainerID == "" {
		return &ConfigError{Field: "View.ContainerID", Message: "must not be empty"}
	}
	if c.View.Width <= 0 {
		return &ConfigError{Field: "View.Width", Message: "must be positive"}
	}
	if c.View.Height <= 0 {
		return &ConfigError{Field: "View.Height", Message: "must be positive"}
	}
	if c.HTTP.Addr == "" {
		return &ConfigError{Field: "HTTP.Addr", Message: "must not be empty"}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "Log.Level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "Log.Format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}

// Load builds a Config from defaults, the optional YAML file at path and the environment.
// lookup is usually os.LookupEnv; tests pass a map-backed function.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFile(path, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg
	}

	cfg = applyEnv(cfg, lookup)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile decodes the YAML file on top of base using strict parsing.
// ${VAR} references are expanded before decoding.
func loadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}

	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)

	cfg := base
	if err := decoder.Decode(&cfg); err != nil {
		return base, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if lookup == nil {
		return cfg
	}
	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get("SERVER_URL", "REACT_APP_SERVER_URL"); ok {
		cfg.Neo4j.URL = v
	}
	if v, ok := get("SERVER_USER", "REACT_APP_SERVER_USER"); ok {
		cfg.Neo4j.User = v
	}
	if v, ok := get("SERVER_PASSWORD", "REACT_APP_SERVER_PASSWORD"); ok {
		cfg.Neo4j.Password = v
	}
	if v, ok := get("NEO4J_DATABASE"); ok {
		cfg.Neo4j.Database = v
	}
	if v, ok := get("HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.HTTP.AllowedOrigins = origins
	}
	if v, ok := get("NEOVIS_URL"); ok {
		cfg.View.NeovisURL = v
	}
	if v, ok := get("GEMINI_API_KEY"); ok {
		cfg.Gemini.APIKey = v
	}
	if v, ok := get("GEMINI_MODEL"); ok {
		cfg.Gemini.Model = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := get("LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return cfg
}
