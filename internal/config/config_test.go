package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.AI.Transport != TransportREST {
		t.Errorf("AI.Transport = %q, want rest", cfg.AI.Transport)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("AI.Timeout = %v, want 60s", cfg.AI.Timeout)
	}
	if cfg.Trial.FreeGenerations != 5 {
		t.Errorf("Trial.FreeGenerations = %d, want 5", cfg.Trial.FreeGenerations)
	}
	if !cfg.Storage.FallbackToLocal {
		t.Error("Storage.FallbackToLocal should default to true")
	}
	if cfg.Task.SubscriptionExpirySpec != "0 */10 * * * *" {
		t.Errorf("Task.SubscriptionExpirySpec = %q", cfg.Task.SubscriptionExpirySpec)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ADCOPY_AI_API_KEY", "env-key")
	t.Setenv("ADCOPY_AI_TRANSPORT", "sdk")
	t.Setenv("ADCOPY_TRIAL_FREE_GENERATIONS", "12")
	t.Setenv("ADCOPY_LIMIT_GENERATE_COOLDOWN", "10s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.APIKey != "env-key" {
		t.Errorf("AI.APIKey = %q, want env-key", cfg.AI.APIKey)
	}
	if cfg.AI.Transport != TransportSDK {
		t.Errorf("AI.Transport = %q, want sdk", cfg.AI.Transport)
	}
	if cfg.Trial.FreeGenerations != 12 {
		t.Errorf("Trial.FreeGenerations = %d, want 12", cfg.Trial.FreeGenerations)
	}
	if cfg.Limit.GenerateCooldown != 10*time.Second {
		t.Errorf("Limit.GenerateCooldown = %v, want 10s", cfg.Limit.GenerateCooldown)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
database:
  dsn: "host=db user=adcopy dbname=adcopy sslmode=disable"
ai:
  model: gemini-2.0-flash
  max_retries: 4
jwt:
  access_ttl: 30m
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ADCOPY_SERVER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// 环境变量优先于文件
	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Database.DSN == "" {
		t.Error("Database.DSN should be read from file")
	}
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.AI.MaxRetries != 4 {
		t.Errorf("AI.MaxRetries = %d, want 4", cfg.AI.MaxRetries)
	}
	if cfg.JWT.AccessTTL != 30*time.Minute {
		t.Errorf("JWT.AccessTTL = %v, want 30m", cfg.JWT.AccessTTL)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail when an explicit config file is missing")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown transport", func(c *Config) { c.AI.Transport = "grpc" }, true},
		{"negative trial", func(c *Config) { c.Trial.FreeGenerations = -1 }, true},
		{"negative retries", func(c *Config) { c.AI.MaxRetries = -1 }, true},
		{"no storage at all", func(c *Config) { c.Storage.LocalPath = ""; c.Database.DSN = "" }, true},
		{"remote only", func(c *Config) { c.Storage.LocalPath = ""; c.Database.DSN = "host=db" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				AI:      AIConfig{Transport: TransportREST},
				Storage: StorageConfig{LocalPath: "local.db"},
			}
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
