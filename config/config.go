package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"ewintr.nl/yt2blog/fetcher"
	"ewintr.nl/yt2blog/process"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func (pi PostgresInfo) Enabled() bool {
	return pi.Host != ""
}

func (pi PostgresInfo) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", pi.Host, pi.Port, pi.User, pi.Password, pi.Database)
}

type Config struct {
	Port              int
	LogLevel          slog.Level
	YoutubeAPIKey     string
	VideoCheck        fetcher.CheckMode
	TranscriptTimeout time.Duration
	Generation        process.ClientConfig
	SessionTTL        time.Duration
	Postgres          PostgresInfo
}

// Load reads the configuration from the environment, after loading the .env
// file at ENV_PATH if there is one.
func Load() (*Config, error) {
	envPath := getParam("ENV_PATH", ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load env file %s: %w", envPath, err)
	}

	var (
		cfg = &Config{
			YoutubeAPIKey: getParam("YOUTUBE_API_KEY", ""),
			Generation: process.ClientConfig{
				APIKey:  getParam("DEEPSEEK_API_KEY", getParam("OPENAI_API_KEY", "")),
				BaseURL: getParam("GENERATION_BASE_URL", process.DefaultBaseURL),
				Model:   getParam("GENERATION_MODEL", process.DefaultModel),
			},
			Postgres: PostgresInfo{
				Host:     getParam("POSTGRES_HOST", ""),
				Port:     getParam("POSTGRES_PORT", "5432"),
				User:     getParam("POSTGRES_USER", "yt2blog"),
				Password: getParam("POSTGRES_PASSWORD", "yt2blog"),
				Database: getParam("POSTGRES_DB", "yt2blog"),
			},
		}
		err error
	)

	if cfg.Port, err = strconv.Atoi(getParam("API_PORT", "8080")); err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getParam("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.VideoCheck, err = fetcher.ParseCheckMode(getParam("VIDEO_CHECK", "lenient")); err != nil {
		return nil, fmt.Errorf("invalid VIDEO_CHECK: %w", err)
	}
	if cfg.TranscriptTimeout, err = time.ParseDuration(getParam("TRANSCRIPT_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid TRANSCRIPT_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getParam("SESSION_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Generation.Timeout, err = time.ParseDuration(getParam("GENERATION_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_TIMEOUT: %w", err)
	}
	if cfg.Generation.MaxTokens, err = strconv.Atoi(getParam("GENERATION_MAX_TOKENS", strconv.Itoa(process.DefaultMaxTokens))); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_MAX_TOKENS: %w", err)
	}
	if cfg.Generation.Temperature, err = parseFloat(getParam("GENERATION_TEMPERATURE", "0.7")); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_TEMPERATURE: %w", err)
	}
	if cfg.Generation.FrequencyPenalty, err = parseFloat(getParam("GENERATION_FREQUENCY_PENALTY", "0")); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_FREQUENCY_PENALTY: %w", err)
	}
	if cfg.Generation.PresencePenalty, err = parseFloat(getParam("GENERATION_PRESENCE_PENALTY", "0")); err != nil {
		return nil, fmt.Errorf("invalid GENERATION_PRESENCE_PENALTY: %w", err)
	}

	if path := getParam("GENERATION_CONFIG", ""); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open generation config: %w", err)
		}
		defer f.Close()
		if err := applyGenerationFile(&cfg.Generation, f); err != nil {
			return nil, fmt.Errorf("could not read generation config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid port %d", c.Port)
	case c.VideoCheck == fetcher.CheckStrict && c.YoutubeAPIKey == "":
		return errors.New("VIDEO_CHECK strict needs a YOUTUBE_API_KEY")
	case c.TranscriptTimeout <= 0:
		return errors.New("transcript timeout must be positive")
	case c.SessionTTL <= 0:
		return errors.New("session ttl must be positive")
	case c.Generation.Timeout <= 0:
		return errors.New("generation timeout must be positive")
	case c.Generation.MaxTokens <= 0:
		return errors.New("generation max tokens must be positive")
	case c.Generation.Temperature <= 0 || c.Generation.Temperature > 2:
		// zero is omitted from the request and the server default would apply
		return fmt.Errorf("generation temperature %v out of range (0, 2]", c.Generation.Temperature)
	case c.Generation.FrequencyPenalty < -2 || c.Generation.FrequencyPenalty > 2:
		return fmt.Errorf("frequency penalty %v out of range", c.Generation.FrequencyPenalty)
	case c.Generation.PresencePenalty < -2 || c.Generation.PresencePenalty > 2:
		return fmt.Errorf("presence penalty %v out of range", c.Generation.PresencePenalty)
	}

	return nil
}

type generationFile struct {
	Model            *string  `yaml:"model"`
	BaseURL          *string  `yaml:"base_url"`
	Timeout          *string  `yaml:"timeout"`
	MaxTokens        *int     `yaml:"max_tokens"`
	Temperature      *float32 `yaml:"temperature"`
	FrequencyPenalty *float32 `yaml:"frequency_penalty"`
	PresencePenalty  *float32 `yaml:"presence_penalty"`
}

// applyGenerationFile overrides the generation settings with the fields that
// are present in the yaml document.
func applyGenerationFile(gen *process.ClientConfig, r io.Reader) error {
	var gf generationFile
	if err := yaml.NewDecoder(r).Decode(&gf); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if gf.Model != nil {
		gen.Model = *gf.Model
	}
	if gf.BaseURL != nil {
		gen.BaseURL = *gf.BaseURL
	}
	if gf.Timeout != nil {
		timeout, err := time.ParseDuration(*gf.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		gen.Timeout = timeout
	}
	if gf.MaxTokens != nil {
		gen.MaxTokens = *gf.MaxTokens
	}
	if gf.Temperature != nil {
		gen.Temperature = *gf.Temperature
	}
	if gf.FrequencyPenalty != nil {
		gen.FrequencyPenalty = *gf.FrequencyPenalty
	}
	if gf.PresencePenalty != nil {
		gen.PresencePenalty = *gf.PresencePenalty
	}

	return nil
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}
