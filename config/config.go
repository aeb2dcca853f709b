// Package config reads the panel's runtime configuration from the environment.
// A .env file in the working directory is loaded before the first lookup.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort             = 3000
	defaultSessionMaxAge    = 60 * 30
	defaultSessionUpdateAge = 60 * 10
	defaultLoginRateLimit   = 10
)

var loadEnvOnce sync.Once

// LoadEnv loads variables from ./.env without overriding ones already set.
func LoadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		}
	})
}

func getenv(key string) string {
	LoadEnv()
	return os.Getenv(key)
}

func getenvInt(key string, def int) int {
	v := getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := getenv("TM_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return getenv("TM_DEBUG") == "true"
}

// IsProduction reports whether cookies must be marked Secure.
func IsProduction() bool {
	return getenv("TM_ENV") == "production"
}

func GetDBFolderPath() string {
	dbFolderPath := getenv("TM_DB_FOLDER")
	if dbFolderPath == "" {
		if IsDebug() {
			return "db"
		}
		dbFolderPath = "/etc/taskmanager"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := getenv("TM_LOG_FOLDER")
	if logFolderPath == "" {
		if IsDebug() {
			return "log"
		}
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return getenv("TM_LISTEN")
}

func GetPort() int {
	return getenvInt("TM_PORT", defaultPort)
}

// GetBasePath returns the URL prefix of every route, always in "/x/" form.
func GetBasePath() string {
	basePath := getenv("TM_BASE_PATH")
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

// GetSecret returns the cookie signing key; empty means "generate one".
func GetSecret() string {
	return getenv("TM_SECRET")
}

func GetRedisAddr() string {
	return getenv("TM_REDIS_ADDR")
}

// GetSessionMaxAge is the lifetime of a sign-in session.
func GetSessionMaxAge() time.Duration {
	return time.Duration(getenvInt("SESSION_MAX_AGE", defaultSessionMaxAge)) * time.Second
}

// GetSessionUpdateAge is how old a session may get before its expiry slides forward.
func GetSessionUpdateAge() time.Duration {
	return time.Duration(getenvInt("SESSION_UPDATE_AGE", defaultSessionUpdateAge)) * time.Second
}

// GetLoginRateLimit is how many sign-in attempts one client may make per minute; 0 disables the limit.
func GetLoginRateLimit() int {
	return getenvInt("TM_LOGIN_RATE_LIMIT", defaultLoginRateLimit)
}

// GetCertFile and GetKeyFile locate the TLS key pair; both empty serves plain HTTP.
func GetCertFile() string {
	return getenv("TM_CERT_FILE")
}

func GetKeyFile() string {
	return getenv("TM_KEY_FILE")
}

// GetTimeLocation is the zone the job schedule runs in, from TM_TIMEZONE.
func GetTimeLocation() (*time.Location, error) {
	tz := getenv("TM_TIMEZONE")
	if tz == "" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}
