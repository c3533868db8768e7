package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.View.ContainerID != "graph" {
		t.Errorf("Expected container id 'graph', got '%s'", cfg.View.ContainerID)
	}
	if cfg.View.Width != 1000 || cfg.View.Height != 1000 {
		t.Errorf("Expected 1000x1000 container, got %dx%d", cfg.View.Width, cfg.View.Height)
	}
	if cfg.Neo4j.URL != "" || cfg.Neo4j.User != "" || cfg.Neo4j.Password != "" {
		t.Error("Expected empty credentials by default")
	}
	if cfg.LLMEnabled() {
		t.Error("Expected LLM features disabled without an API key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantErr bool
	}{
		{
			name:    "valid default config",
			cfg:     Default(),
			wantErr: false,
		},
		{
			name:    "missing credentials are not a config error",
			cfg:     Default().WithNeo4j("", "", ""),
			wantErr: false,
		},
		{
			name:    "empty container id",
			cfg:     Default().WithContainer("", 1000, 1000),
			field:   "View.ContainerID",
			wantErr: true,
		},
		{
			name:    "zero width",
			cfg:     Default().WithContainer("graph", 0, 1000),
			field:   "View.Width",
			wantErr: true,
		},
		{
			name:    "negative height",
			cfg:     Default().WithContainer("graph", 1000, -1),
			field:   "View.Height",
			wantErr: true,
		},
		{
			name:    "empty http addr",
			cfg:     Default().WithHTTPAddr(""),
			field:   "HTTP.Addr",
			wantErr: true,
		},
		{
			name: "unknown log level",
			cfg: func() Config {
				c := Default()
				c.Log.Level = "verbose"
				return c
			}(),
			field:   "Log.Level",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestConfig_ValidateLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "WARNING"} {
		cfg := Default()
		cfg.Log.Level = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate rejected level %q: %v", level, err)
		}
	}
}

func TestWithModifiersReturnCopies(t *testing.T) {
	base := Default()
	modified := base.WithNeo4j("neo4j://db:7687", "neo4j", "secret").WithHTTPAddr(":9000")

	if base.Neo4j.URL != "" {
		t.Error("WithNeo4j modified the original config")
	}
	if modified.Neo4j.URL != "neo4j://db:7687" || modified.Neo4j.Password != "secret" {
		t.Errorf("Unexpected neo4j settings: %+v", modified.Neo4j)
	}
	if modified.HTTP.Addr != ":9000" {
		t.Errorf("Expected addr ':9000', got '%s'", modified.HTTP.Addr)
	}
}

func TestLoad_Env(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{
		"SERVER_URL":           "neo4j://localhost:7687",
		"SERVER_USER":          "neo4j",
		"SERVER_PASSWORD":      "pw",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test,",
		"LOG_LEVEL":            "debug",
	}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Neo4j.URL != "neo4j://localhost:7687" || cfg.Neo4j.User != "neo4j" || cfg.Neo4j.Password != "pw" {
		t.Errorf("Unexpected neo4j settings: %+v", cfg.Neo4j)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("Unexpected origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log.Level)
	}
}

func TestLoad_ReactAppPrefixFallback(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{
		"REACT_APP_SERVER_URL":      "bolt://legacy:7687",
		"REACT_APP_SERVER_USER":     "legacy",
		"REACT_APP_SERVER_PASSWORD": "legacy-pw",
		"SERVER_USER":               "preferred",
	}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Neo4j.URL != "bolt://legacy:7687" {
		t.Errorf("Expected legacy URL, got %s", cfg.Neo4j.URL)
	}
	if cfg.Neo4j.User != "preferred" {
		t.Errorf("Expected unprefixed key to win, got %s", cfg.Neo4j.User)
	}
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphview.yaml")
	t.Setenv("GRAPHVIEW_TEST_PASSWORD", "from-file-env")

	content := `
neo4j:
  url: neo4j://file:7687
  user: file-user
  password: ${GRAPHVIEW_TEST_PASSWORD}
view:
  container_id: canvas
  width: 800
  height: 600
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, envMap(map[string]string{"SERVER_USER": "env-user"}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Neo4j.URL != "neo4j://file:7687" {
		t.Errorf("Expected URL from file, got %s", cfg.Neo4j.URL)
	}
	if cfg.Neo4j.Password != "from-file-env" {
		t.Errorf("Expected expanded password, got %s", cfg.Neo4j.Password)
	}
	if cfg.Neo4j.User != "env-user" {
		t.Errorf("Expected env to override file, got %s", cfg.Neo4j.User)
	}
	if cfg.View.ContainerID != "canvas" || cfg.View.Width != 800 || cfg.View.Height != 600 {
		t.Errorf("Unexpected view settings: %+v", cfg.View)
	}
	if cfg.Neo4j.Database != "neo4j" {
		t.Errorf("Expected default database to survive, got %s", cfg.Neo4j.Database)
	}
}

func TestLoad_UnknownYAMLField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("neo4j:\n  uri: typo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, nil); err == nil {
		t.Fatal("Expected strict decoding to reject unknown field")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
