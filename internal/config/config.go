package config

import (
	"time"

	"github.com/OFFIS-RIT/peoplegraph/internal/util"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"

	"github.com/go-playground/validator"
)

// DefaultDataPath is used when DATA_PATH is not set.
const DefaultDataPath = "test/fixtures/clean_data.csv"

type S3Config struct {
	Endpoint  string `validate:"omitempty,url"`
	Region    string
	AccessKey string
	SecretKey string
}

type AIConfig struct {
	Adapter       string `validate:"oneof=openai ollama"`
	ChatModel     string `validate:"required"`
	ChatURL       string `validate:"omitempty,url"`
	ChatKey       string
	Timeout       time.Duration `validate:"gt=0"`
	OutputMode    string        `validate:"oneof=structured text"`
	MaxConcurrent int64         `validate:"gte=1"`
}

type ServerConfig struct {
	Port         string `validate:"required,numeric"`
	MasterAPIKey string
	AuthURL      string `validate:"omitempty,url"`
}

// Config holds everything the binaries read from the environment.
type Config struct {
	DataPath string `validate:"required"`
	Debug    bool
	// LogFormat is "text", "json" or "logfmt".
	LogFormat string `validate:"oneof=text json logfmt"`

	S3     S3Config
	AI     AIConfig
	Server ServerConfig
}

// Load reads the configuration from the environment. Call util.LoadEnv
// first to pick up a .env file.
func Load() Config {
	adapter := util.GetEnvString("AI_ADAPTER", "openai")
	defaultModel := "gpt-4o-mini"
	if adapter == "ollama" {
		defaultModel = "llama3.1"
	}

	return Config{
		DataPath:  util.GetEnvString("DATA_PATH", DefaultDataPath),
		Debug:     util.GetEnvBool("DEBUG", false),
		LogFormat: util.GetEnvString("LOG_FORMAT", "text"),

		S3: S3Config{
			Endpoint:  util.GetEnv("S3_ENDPOINT"),
			Region:    util.GetEnvString("S3_REGION", "us-east-1"),
			AccessKey: util.GetEnv("S3_ACCESS_KEY"),
			SecretKey: util.GetEnv("S3_SECRET_KEY"),
		},

		AI: AIConfig{
			Adapter:       adapter,
			ChatModel:     util.GetEnvString("AI_CHAT_MODEL", defaultModel),
			ChatURL:       util.GetEnv("AI_CHAT_URL"),
			ChatKey:       util.GetEnv("AI_CHAT_KEY"),
			Timeout:       util.GetEnvDuration("AI_TIMEOUT", 30*time.Second),
			OutputMode:    util.GetEnvString("AI_OUTPUT_MODE", "text"),
			MaxConcurrent: int64(util.GetEnvNumeric("AI_MAX_CONCURRENT", 4)),
		},

		Server: ServerConfig{
			Port:         util.GetEnvString("PORT", "8080"),
			MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
			AuthURL:      util.GetEnv("AUTH_URL"),
		},
	}
}

// Validate checks field constraints and the combinations validator tags
// cannot express.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if c.AI.Adapter == "openai" && c.AI.ChatURL == "" && c.AI.ChatKey == "" {
		return errors.WithHint(
			errors.New("invalid configuration: AI_CHAT_KEY is required for api.openai.com"),
			"set AI_CHAT_KEY or point AI_CHAT_URL at a compatible server",
		)
	}
	return nil
}
