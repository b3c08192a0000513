package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Groq        GroqConfig
	Transcripts TranscriptsConfig
	Search      SearchConfig
	Sync        SyncConfig
	Matcher     MatcherConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_intelligence"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. An empty host disables Redis and the
// executive summary cache falls back to process memory.
type RedisConfig struct {
	Host       string        `envconfig:"REDIS_HOST"`
	Port       string        `envconfig:"REDIS_PORT" default:"6379"`
	Password   string        `envconfig:"REDIS_PASSWORD"`
	DB         int           `envconfig:"REDIS_DB" default:"0"`
	SummaryTTL time.Duration `envconfig:"DASHBOARD_SUMMARY_TTL" default:"10m"`
}

// StorageConfig holds blob storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-documents"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	DocumentPrefix  string `envconfig:"STORAGE_DOCUMENT_PREFIX" default:"meetings"`
}

// GroqConfig holds LLM configuration
type GroqConfig struct {
	APIKey             string        `envconfig:"GROQ_API_KEY"`
	BaseURL            string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model              string        `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	Timeout            time.Duration `envconfig:"GROQ_TIMEOUT" default:"60s"`
	MaxTranscriptChars int           `envconfig:"AI_MAX_TRANSCRIPT_CHARS" default:"12000"`
}

// TranscriptsConfig selects and configures the transcript source
type TranscriptsConfig struct {
	Source          string `envconfig:"TRANSCRIPT_SOURCE" default:"fireflies"`
	FirefliesAPIKey string `envconfig:"FIREFLIES_API_KEY"`
	FirefliesURL    string `envconfig:"FIREFLIES_API_URL" default:"https://api.fireflies.ai/graphql"`
	AssemblyAPIKey  string `envconfig:"ASSEMBLYAI_API_KEY"`
}

// SearchConfig holds the search-and-answer index configuration
type SearchConfig struct {
	BaseURL   string        `envconfig:"SEARCH_API_URL" default:"https://api.cloudflare.com/client/v4"`
	AccountID string        `envconfig:"SEARCH_ACCOUNT_ID"`
	IndexID   string        `envconfig:"SEARCH_INDEX_ID"`
	APIToken  string        `envconfig:"SEARCH_API_TOKEN"`
	Timeout   time.Duration `envconfig:"SEARCH_TIMEOUT" default:"30s"`
}

// SyncConfig holds sync cycle tuning
type SyncConfig struct {
	BatchSize   int `envconfig:"SYNC_BATCH_SIZE" default:"10"`
	Concurrency int `envconfig:"SYNC_CONCURRENCY" default:"10"`
}

// MatcherConfig holds project association settings. When Keywords is empty the
// matcher uses the names of all known projects.
type MatcherConfig struct {
	Keywords []string `envconfig:"PROJECT_KEYWORDS"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.Storage,
		&config.Groq,
		&config.Transcripts,
		&config.Search,
		&config.Sync,
		&config.Matcher,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. Only values without which the process
// cannot start are enforced here; missing third-party credentials are reported
// by the component that needs them.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Transcripts.Source) {
	case "fireflies", "assemblyai":
	default:
		return fmt.Errorf("TRANSCRIPT_SOURCE must be fireflies or assemblyai, got %q", c.Transcripts.Source)
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("SYNC_BATCH_SIZE must be positive")
	}
	if c.Sync.Concurrency <= 0 {
		return fmt.Errorf("SYNC_CONCURRENCY must be positive")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// Missing lists the credentials that are not set, by environment variable name
func (c *Config) Missing() []string {
	var missing []string
	switch strings.ToLower(c.Transcripts.Source) {
	case "assemblyai":
		if c.Transcripts.AssemblyAPIKey == "" {
			missing = append(missing, "ASSEMBLYAI_API_KEY")
		}
	default:
		if c.Transcripts.FirefliesAPIKey == "" {
			missing = append(missing, "FIREFLIES_API_KEY")
		}
	}
	if c.Groq.APIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if c.Search.AccountID == "" {
		missing = append(missing, "SEARCH_ACCOUNT_ID")
	}
	if c.Search.IndexID == "" {
		missing = append(missing, "SEARCH_INDEX_ID")
	}
	if c.Search.APIToken == "" {
		missing = append(missing, "SEARCH_API_TOKEN")
	}
	return missing
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
