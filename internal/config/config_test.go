package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  address: ":9090"
database:
  driver: sqlite
  dsn: "file::memory:"
jwt:
  secret: "s3cret"
  expiration: "30m"
generator:
  model: "test-model"
  timeout: "5s"
`)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.DSN != "file::memory:" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("jwt expiration = %s", cfg.JWT.Expiration)
	}
	if cfg.JWT.RefreshExpiration != 168*time.Hour {
		t.Errorf("refresh expiration default = %s", cfg.JWT.RefreshExpiration)
	}
	if cfg.Generator.Model != "test-model" || cfg.Generator.Timeout != 5*time.Second {
		t.Errorf("generator = %+v", cfg.Generator)
	}
	if cfg.Verification.CodeTTL != 15*time.Minute {
		t.Errorf("code ttl = %s", cfg.Verification.CodeTTL)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("GENERATOR_TIMEOUT", "12s")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("secret = %q", cfg.JWT.Secret)
	}
	if cfg.Generator.Timeout != 12*time.Second {
		t.Errorf("timeout = %s", cfg.Generator.Timeout)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Database.Driver != DriverMongo {
		t.Errorf("default driver = %q", cfg.Database.Driver)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Database:  DatabaseConfig{Driver: DriverSQLite, DSN: "x"},
			JWT:       JWTConfig{Secret: "s"},
			Generator: GeneratorConfig{Timeout: 20 * time.Second},
			Mail:      MailConfig{Provider: "log"},
		}
	}
	cases := map[string]func(*Config){
		"missing secret": func(c *Config) { c.JWT.Secret = "" },
		"unknown driver": func(c *Config) { c.Database.Driver = "oracle" },
		"missing dsn":    func(c *Config) { c.Database.DSN = "" },
		"zero timeout":   func(c *Config) { c.Generator.Timeout = 0 },
		"huge timeout":   func(c *Config) { c.Generator.Timeout = 5 * time.Minute },
		"unknown mailer": func(c *Config) { c.Mail.Provider = "smtp" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}
}
