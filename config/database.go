package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig selects the panel's database. Only the section matching Type is read.
type DatabaseConfig struct {
	Type     DatabaseType   `json:"type"`
	SQLite   SQLiteConfig   `json:"sqlite"`
	Postgres PostgresConfig `json:"postgres"`
}

type SQLiteConfig struct {
	Path string `json:"path"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"-"`
	SSLMode  string `json:"sslMode"`
	TimeZone string `json:"timeZone"`
}

// GetDSN returns the sqlite file path, or a postgres:// URL with the
// credentials escaped.
func (c *DatabaseConfig) GetDSN() string {
	if c.Type != DatabaseTypePostgreSQL {
		return c.SQLite.Path
	}
	pg := c.Postgres
	q := url.Values{}
	if pg.SSLMode != "" {
		q.Set("sslmode", pg.SSLMode)
	}
	if pg.TimeZone != "" {
		q.Set("TimeZone", pg.TimeZone)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Username, pg.Password),
		Host:     net.JoinHostPort(pg.Host, strconv.Itoa(pg.Port)),
		Path:     "/" + pg.Database,
		RawQuery: q.Encode(),
	}
	if pg.Password == "" {
		u.User = url.User(pg.Username)
	}
	return u.String()
}

// String describes the target without credentials, for logs and the setting command.
func (c *DatabaseConfig) String() string {
	if c.Type != DatabaseTypePostgreSQL {
		return fmt.Sprintf("%s %s", c.Type, c.SQLite.Path)
	}
	return fmt.Sprintf("%s %s:%d/%s", c.Type, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: GetDBPath()},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "taskmanager",
			Username: "taskmanager",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
	}
}

// GetDatabaseConfig returns the default configuration overridden by TM_DB_* and TM_PG_* variables.
func GetDatabaseConfig() *DatabaseConfig {
	c := GetDefaultDatabaseConfig()
	override := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	if t := getenv("TM_DB_TYPE"); t != "" {
		c.Type = DatabaseType(t)
	}
	override(&c.Postgres.Host, "TM_PG_HOST")
	c.Postgres.Port = getenvInt("TM_PG_PORT", c.Postgres.Port)
	override(&c.Postgres.Database, "TM_PG_DATABASE")
	override(&c.Postgres.Username, "TM_PG_USER")
	override(&c.Postgres.Password, "TM_PG_PASSWORD")
	override(&c.Postgres.SSLMode, "TM_PG_SSLMODE")
	override(&c.Postgres.TimeZone, "TM_PG_TIMEZONE")
	return c
}

// NewSQLiteConfig returns a configuration for the sqlite file at path.
func NewSQLiteConfig(path string) *DatabaseConfig {
	c := GetDefaultDatabaseConfig()
	c.SQLite.Path = path
	return c
}

// ValidateConfig reports every missing or out-of-range setting of the selected database.
func (c *DatabaseConfig) ValidateConfig() error {
	var errs []error
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("sqlite path is empty"))
		}
	case DatabaseTypePostgreSQL:
		pg := c.Postgres
		if pg.Host == "" {
			errs = append(errs, errors.New("postgres host is empty"))
		}
		if pg.Database == "" {
			errs = append(errs, errors.New("postgres database is empty"))
		}
		if pg.Username == "" {
			errs = append(errs, errors.New("postgres user is empty"))
		}
		if pg.Port <= 0 || pg.Port > 65535 {
			errs = append(errs, fmt.Errorf("postgres port %d is out of range", pg.Port))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database type: %q", c.Type))
	}
	return errors.Join(errs...)
}

func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists creates the folder of the sqlite file; postgres needs nothing.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if !c.IsSQLite() {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.SQLite.Path), 0o755)
}
