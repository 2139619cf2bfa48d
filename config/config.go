package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Log        Log
	Database   Database
	Similarity Similarity
	Redis      Redis
	RabbitMQ   RabbitMQ
	Review     Review
}

type Server struct {
	Port    string
	GinMode string
}

type Log struct {
	Level  string
	Pretty bool
}

type Database struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string `json:"-"`
	Name     string
	SSLMode  string
}

type Similarity struct {
	// Provider is one of none, huggingface, gemini, openai.
	Provider string
	Timeout  time.Duration
	CacheTTL time.Duration

	HuggingFaceAPIKey string `json:"-"`
	HuggingFaceURL    string

	GeminiAPIKey         string `json:"-"`
	GeminiEmbeddingModel string

	OpenAIAPIKey         string `json:"-"`
	OpenAIBaseURL        string
	OpenAIEmbeddingModel string
}

type Redis struct {
	Addr     string
	Password string `json:"-"`
	DB       int
}

type RabbitMQ struct {
	URL string `json:"-"`
}

type Review struct {
	// RecomputeScore refreshes a result's aggregate score after an approved
	// override.
	RecomputeScore bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("SIMILARITY_PROVIDER", "none")
	v.SetDefault("SIMILARITY_TIMEOUT", "5s")
	v.SetDefault("SIMILARITY_CACHE_TTL", "24h")
	v.SetDefault("HUGGINGFACE_API_URL", "https://api-inference.huggingface.co/models/sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("GEMINI_EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REVIEW_RECOMPUTE_SCORE", true)
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	config := load(v)
	log.Info().Interface("config", config).Msg("Config loaded")
	return config, nil
}

func load(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Pretty = v.GetBool("LOG_PRETTY")

	config.Database.Driver = v.GetString("DATABASE_DRIVER")
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Similarity.Provider = v.GetString("SIMILARITY_PROVIDER")
	config.Similarity.Timeout = v.GetDuration("SIMILARITY_TIMEOUT")
	config.Similarity.CacheTTL = v.GetDuration("SIMILARITY_CACHE_TTL")
	config.Similarity.HuggingFaceAPIKey = v.GetString("HUGGINGFACE_API_KEY")
	config.Similarity.HuggingFaceURL = v.GetString("HUGGINGFACE_API_URL")
	config.Similarity.GeminiAPIKey = v.GetString("GEMINI_API_KEY")
	config.Similarity.GeminiEmbeddingModel = v.GetString("GEMINI_EMBEDDING_MODEL")
	config.Similarity.OpenAIAPIKey = v.GetString("OPENAI_API_KEY")
	config.Similarity.OpenAIBaseURL = v.GetString("OPENAI_BASE_URL")
	config.Similarity.OpenAIEmbeddingModel = v.GetString("OPENAI_EMBEDDING_MODEL")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	config.RabbitMQ.URL = v.GetString("RABBITMQ_URL")

	config.Review.RecomputeScore = v.GetBool("REVIEW_RECOMPUTE_SCORE")

	return &config
}
