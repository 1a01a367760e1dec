package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Quiz      QuizConfig
	Extractor ExtractorConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// LLMConfig selects and configures the quiz generation backend.
// APIKey is handed to the client at construction and never read from globals.
type LLMConfig struct {
	Provider    string // "ollama" or "openai"
	ServerURL   string
	Model       string
	APIKey      string
	Timeout     time.Duration
	Temperature float64
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type QuizConfig struct {
	MinQuestions     int
	MaxQuestions     int
	DefaultQuestions int
	SessionTTL       time.Duration
}

type ExtractorConfig struct {
	MaxChars int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.body_limit", 10*1024*1024)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen3:0.6b")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("quiz.min_questions", 1)
	v.SetDefault("quiz.max_questions", 20)
	v.SetDefault("quiz.default_questions", 5)
	v.SetDefault("quiz.session_ttl", "24h")

	v.SetDefault("extractor.max_chars", 30000)
}

// LoadConfig reads config.yaml from the given paths (default "." and "./config")
// and applies environment overrides such as LLM_API_KEY or REDIS_ADDRESS.
// A missing config file is not an error; defaults and env are used instead.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			ServerURL:   v.GetString("llm.server_url"),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Quiz: QuizConfig{
			MinQuestions:     v.GetInt("quiz.min_questions"),
			MaxQuestions:     v.GetInt("quiz.max_questions"),
			DefaultQuestions: v.GetInt("quiz.default_questions"),
			SessionTTL:       v.GetDuration("quiz.session_ttl"),
		},
		Extractor: ExtractorConfig{
			MaxChars: v.GetInt("extractor.max_chars"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if c.Quiz.MinQuestions < 1 {
		return fmt.Errorf("quiz.min_questions must be at least 1, got %d", c.Quiz.MinQuestions)
	}
	if c.Quiz.MaxQuestions < c.Quiz.MinQuestions {
		return fmt.Errorf("quiz.max_questions (%d) is below quiz.min_questions (%d)", c.Quiz.MaxQuestions, c.Quiz.MinQuestions)
	}
	if c.Quiz.DefaultQuestions < c.Quiz.MinQuestions || c.Quiz.DefaultQuestions > c.Quiz.MaxQuestions {
		return fmt.Errorf("quiz.default_questions (%d) must be within [%d, %d]", c.Quiz.DefaultQuestions, c.Quiz.MinQuestions, c.Quiz.MaxQuestions)
	}
	switch c.LLM.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unsupported llm.provider: %q", c.LLM.Provider)
	}
	return nil
}
