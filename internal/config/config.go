package config

import (
	"os"
	"strconv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Admin credential seed; only used when no credential pair exists yet
type AdminConfig struct {
	Username string
	Password string
}

// Session configuration
type SessionConfig struct {
	TTLSeconds int
}

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Admin   AdminConfig
	Session SessionConfig
}

// Default configuration values
const (
	DefaultServerPort    = "8420"
	DefaultServerHost    = ""
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDB       = "clientdesk"
	DefaultAdminUser     = "Nestor"
	DefaultAdminPassword = "1005"
	DefaultSessionTTLSec = 8 * 3600
	// Pagination defaults; the UI offers 5, 10 and 50 rows per page
	DefaultPageSize = 5
	MaxPageSize     = 50
)

// New returns a new Config with default values
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USER", DefaultAdminUser),
			Password: getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
		},
		Session: SessionConfig{
			TTLSeconds: getEnvInt("SESSION_TTL_SECONDS", DefaultSessionTTLSec),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
