package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 5432
  name: ironclub
  user: ironclub
  password: secret
auth:
  jwt_secret: test-secret
`

// TestLoadValid verifies a complete config file parses and fills defaults.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "ironclub" {
		t.Errorf("db name = %q, want ironclub", cfg.Database.Name)
	}
	if cfg.Auth.TokenTTLHr != 72 {
		t.Errorf("token ttl = %d, want default 72", cfg.Auth.TokenTTLHr)
	}
}

// TestLoadMissingFile verifies a missing config path errors.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestLoadValidation checks that each required field is enforced.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		wantErr string
	}{
		{"no server port", "port: 8080", "server.port"},
		{"no db host", "host: localhost", "database.host"},
		{"no db name", "name: ironclub", "database.name"},
		{"no db user", "user: ironclub", "database.user"},
		{"no jwt secret", "jwt_secret: test-secret", "auth.jwt_secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := strings.Replace(validYAML, tt.drop, "", 1)
			_, err := Load(writeConfig(t, yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

// TestEnvOverrides verifies environment variables win over file values.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("IRONCLUB_SERVER_PORT", "9999")
	t.Setenv("IRONCLUB_DB_PASSWORD", "from-env")
	t.Setenv("IRONCLUB_AUTH_JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("db password = %q, want from-env", cfg.Database.Password)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("jwt secret = %q, want env-secret", cfg.Auth.JWTSecret)
	}
}

// TestDSN verifies the connection string format and sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "ironclub", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/ironclub?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}

	d.SSLMode = "require"
	if got := d.DSN(); !strings.HasSuffix(got, "sslmode=require") {
		t.Errorf("DSN = %q, want sslmode=require suffix", got)
	}
}
