package snowflake

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Account:   "acme-ops",
		User:      "reporting",
		Password:  "secret",
		Database:  "ANALYTICS",
		Schema:    "PUBLIC",
		Warehouse: "REPORTING_WH",
		Role:      "REPORTER",
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected the full config to validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing account", func(c *Config) { c.Account = "" }},
		{"missing user", func(c *Config) { c.User = "" }},
		{"missing password", func(c *Config) { c.Password = "" }},
		{"missing database", func(c *Config) { c.Database = "" }},
		{"missing warehouse", func(c *Config) { c.Warehouse = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestConfig_ValidateAllowsOptionalFields(t *testing.T) {
	cfg := validConfig()
	cfg.Schema = ""
	cfg.Role = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected schema and role to be optional, got %v", err)
	}
}

func TestConfig_DSN(t *testing.T) {
	dsn, err := validConfig().DSN()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn == "" {
		t.Fatal("expected a non-empty DSN")
	}
	if !strings.Contains(dsn, "reporting") {
		t.Errorf("expected the DSN to carry the user, got %q", dsn)
	}
}

func TestConfig_DSNRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Account = ""
	if _, err := cfg.DSN(); err == nil {
		t.Error("expected DSN to refuse an invalid config")
	}
}
