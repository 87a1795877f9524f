package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.TokenHeader != "X-Token" {
		t.Errorf("token header: want X-Token, got %q", cfg.Auth.TokenHeader)
	}
	if cfg.Auth.TokenTTL != 48*time.Hour {
		t.Errorf("token ttl: want 48h, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 || cfg.Postgres.SSLMode != "disable" {
		t.Errorf("unexpected postgres defaults: %+v", cfg.Postgres)
	}
	if cfg.Redis.Addr != "" || cfg.Mongo.URI != "" {
		t.Errorf("optional stores must be disabled by default: redis=%q mongo=%q", cfg.Redis.Addr, cfg.Mongo.URI)
	}
	if cfg.Redis.PoolSize != 10 {
		t.Errorf("redis pool size: want 10, got %d", cfg.Redis.PoolSize)
	}
	if cfg.Audit.Workers != 4 {
		t.Errorf("audit workers: want 4, got %d", cfg.Audit.Workers)
	}
	if cfg.Env != "development" {
		t.Errorf("env: want development, got %q", cfg.Env)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":           "9000",
		"ENV":            "production",
		"TOKEN_HEADER":   "Authorization-Token",
		"TOKEN_TTL":      "30m",
		"POSTGRES_HOST":  "db",
		"POSTGRES_PORT":  "6543",
		"REDIS_ADDR":     "cache:6379",
		"MONGO_URI":      "mongodb://audit:27017",
		"ADMIN_NAME":     "root",
		"ADMIN_PASSWORD": "toor",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "9000" || cfg.Env != "production" {
		t.Errorf("unexpected server config: %+v", cfg)
	}
	if cfg.Auth.TokenHeader != "Authorization-Token" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Postgres.Host != "db" || cfg.Postgres.Port != 6543 {
		t.Errorf("unexpected postgres config: %+v", cfg.Postgres)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Mongo.URI != "mongodb://audit:27017" {
		t.Errorf("unexpected store config: redis=%q mongo=%q", cfg.Redis.Addr, cfg.Mongo.URI)
	}
	if cfg.Admin.Name != "root" || cfg.Admin.Password != "toor" {
		t.Errorf("unexpected admin config: %+v", cfg.Admin)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":       {"TOKEN_TTL": "forever"},
		"negative ttl":       {"TOKEN_TTL": "-1h"},
		"bad port":           {"POSTGRES_PORT": "five"},
		"admin without pass": {"ADMIN_NAME": "root"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "config: ") {
				t.Errorf("expected config prefix, got %q", err)
			}
		})
	}
}
