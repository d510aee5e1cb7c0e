// Package snowflake provides the warehouse-side collaborators of the proxy:
// connection configuration and a database/sql backed query executor.
package snowflake

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	sf "github.com/snowflakedb/gosnowflake"
)

// Config holds the Snowflake connection settings. Auth and connection
// pooling are delegated entirely to the vendor driver; this type only
// assembles its DSN.
type Config struct {
	Account   string `yaml:"account"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
	Warehouse string `yaml:"warehouse"`
	Role      string `yaml:"role"`
}

// Validate checks that the fields required to build a DSN are present.
// Schema and Role are optional; Snowflake falls back to the user defaults.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Account, validation.Required),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Warehouse, validation.Required),
	)
}

// DSN builds the driver connection string for this configuration.
func (c Config) DSN() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	return sf.DSN(&sf.Config{
		Account:   c.Account,
		User:      c.User,
		Password:  c.Password,
		Database:  c.Database,
		Schema:    c.Schema,
		Warehouse: c.Warehouse,
		Role:      c.Role,
	})
}
