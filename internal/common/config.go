package common

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Paths    PathsConfig
	Ingest   IngestConfig
	Exam     ExamConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// PathsConfig holds filesystem locations consumed by the pipeline
type PathsConfig struct {
	DataDir      string
	PDFsDir      string
	ExhibitsDir  string
	TaxonomyPath string
}

// IngestConfig holds ingestion behavior flags
type IngestConfig struct {
	WatchEnabled  bool
	WatchDebounce time.Duration
	ScanTimeout   time.Duration
}

// ExamConfig holds exam composition defaults
type ExamConfig struct {
	QuestionCount int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	dataDir := getEnv("DATA_DIR", "./data")
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", filepath.Join(dataDir, "examforge.db")),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Paths: PathsConfig{
			DataDir:      dataDir,
			PDFsDir:      getEnv("PDFS_DIR", filepath.Join(dataDir, "pdfs")),
			ExhibitsDir:  getEnv("EXHIBITS_DIR", filepath.Join(dataDir, "exhibits")),
			TaxonomyPath: getEnv("TAXONOMY_PATH", filepath.Join(dataDir, "domains.json")),
		},
		Ingest: IngestConfig{
			WatchEnabled:  getEnvAsBool("WATCH_ENABLED", false),
			WatchDebounce: getEnvAsDuration("WATCH_DEBOUNCE", 2*time.Second),
			ScanTimeout:   getEnvAsDuration("SCAN_TIMEOUT", 5*time.Minute),
		},
		Exam: ExamConfig{
			QuestionCount: getEnvAsInt("EXAM_QUESTION_COUNT", 60),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Paths.PDFsDir == "" {
		return NewAppError("CONFIG_ERROR", "PDFS_DIR is required", ErrInvalidInput)
	}
	if c.Paths.ExhibitsDir == "" {
		return NewAppError("CONFIG_ERROR", "EXHIBITS_DIR is required", ErrInvalidInput)
	}
	if c.Paths.TaxonomyPath == "" {
		return NewAppError("CONFIG_ERROR", "TAXONOMY_PATH is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Exam.QuestionCount <= 0 {
		return NewAppError("CONFIG_ERROR", "EXAM_QUESTION_COUNT must be positive", ErrInvalidInput)
	}
	return nil
}
