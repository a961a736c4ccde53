package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Auth.StrictOwnership {
		t.Error("strict ownership must default to off")
	}
	if cfg.Auth.TokenCacheTTL != time.Minute {
		t.Errorf("expected default token cache TTL 1m, got %s", cfg.Auth.TokenCacheTTL)
	}
	if cfg.Redis.Enabled {
		t.Error("redis must default to disabled")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLANTA_SERVER_PORT", "9000")
	t.Setenv("PLANTA_AUTH_STRICT_OWNERSHIP", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected env override port 9000, got %d", cfg.Server.Port)
	}
	if !cfg.Auth.StrictOwnership {
		t.Error("expected env override to enable strict ownership")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "mongo" }, wantErr: true},
		{name: "postgres without host", mutate: func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.Host = ""
		}, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
