package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"heavytime-server/internal/logger"
)

// Config holds the full application configuration.
type Config struct {
	AppEnv     string `env:"APP_ENV" env-default:"development"`
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`
	Logger     logger.Config

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`

	DB      DBConfig
	Storage StorageConfig
	Poem    PoemConfig
	Fal     FalConfig
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host        string        `env:"DB_HOST" env-default:"localhost"`
	Port        string        `env:"DB_PORT" env-default:"5432"`
	User        string        `env:"DB_USER" env-default:"postgres"`
	Password    string        `env:"DB_PASSWORD" env-default:""`
	Name        string        `env:"DB_NAME" env-default:"heavytime"`
	SSLMode     string        `env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns    int           `env:"DB_MAX_CONNECTIONS" env-default:"10"`
	IdleTimeout time.Duration `env:"DB_MAX_IDLE_TIME" env-default:"5m"`
}

// StorageConfig holds the settings for the S3-compatible photo bucket.
type StorageConfig struct {
	Endpoint        string `env:"S3_ENDPOINT" env-default:"https://t3.storage.dev"`
	Region          string `env:"S3_REGION" env-default:"auto"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `env:"S3_BUCKET" env-default:"mypublicbucket"`
	// PrefixRoot is the key prefix photos are uploaded under; the date
	// segment is appended per request.
	PrefixRoot string `env:"S3_PREFIX_ROOT" env-default:"art173/heavytime"`
	// PublicHost is the host serving bucket objects publicly. Public URLs
	// are built as https://<bucket>.<PublicHost>/<key>.
	PublicHost string `env:"S3_PUBLIC_HOST" env-default:"t3.storage.dev"`
	PageSize   int32  `env:"S3_LIST_PAGE_SIZE" env-default:"100"`
}

// PoemConfig holds the settings for the vision poem model.
type PoemConfig struct {
	APIKey    string        `env:"POEM_API_KEY" env-default:""`
	BaseURL   string        `env:"POEM_API_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
	Model     string        `env:"POEM_MODEL" env-default:"anthropic/claude-sonnet-4.5"`
	MaxTokens int           `env:"POEM_MAX_TOKENS" env-default:"1024"`
	Timeout   time.Duration `env:"POEM_TIMEOUT" env-default:"120s"`
}

// FalConfig holds the settings for the fal.ai speech and comic models.
type FalConfig struct {
	APIKey      string        `env:"FAL_KEY" env-default:""`
	BaseURL     string        `env:"FAL_BASE_URL" env-default:"https://fal.run"`
	SpeechModel string        `env:"FAL_SPEECH_MODEL" env-default:"fal-ai/minimax/preview/speech-2.5-hd"`
	ComicModel  string        `env:"FAL_COMIC_MODEL" env-default:"fal-ai/nano-banana/edit"`
	VoiceID     string        `env:"FAL_VOICE_ID" env-default:"Voice2c1bd04c1761210837"`
	Timeout     time.Duration `env:"FAL_TIMEOUT" env-default:"300s"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Load reads the configuration from environment variables and an optional
// .env file. A missing credential does not fail the load: the component it
// belongs to degrades to its error path instead.
func Load() (*Config, error) {
	// The .env file is optional, variables may come from the environment.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
		log.Printf("WARN: S3 credentials not set, image listing will fail")
	}
	if cfg.Poem.APIKey == "" {
		log.Printf("WARN: POEM_API_KEY not set, poem generation will fail")
	}
	if cfg.Fal.APIKey == "" {
		log.Printf("WARN: FAL_KEY not set, audio and comic generation will fail")
	}

	return &cfg, nil
}
