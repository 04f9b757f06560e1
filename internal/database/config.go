package database

import (
	"fmt"
)

// DatabaseConfig selects and parameterizes the storage backend. The course
// platform runs on PostgreSQL in production and on SQLite for local
// development and the test suite.
type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite". Empty defaults to SQLite.
	Driver string

	// PostgreSQL connection parameters
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite file path (":memory:" for tests)
	Path string
}

// String renders the config with the password masked so it can be logged.
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN returns the data source name in the form the selected driver expects.
// Unknown drivers yield an empty DSN; InitDatabase rejects them before use.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}
