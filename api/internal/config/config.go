package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	ServiceName string `yaml:"service_name"`

	Log        LogConfig        `yaml:"log"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	CORS       CORSConfig       `yaml:"cors"`
	Telegram   TelegramConfig   `yaml:"telegram"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type EnrichmentConfig struct {
	Provider string `yaml:"provider"`

	HuggingFaceAPIKey   string `yaml:"huggingface_api_key"`
	HuggingFaceModelURL string `yaml:"huggingface_model_url"`
	GeminiAPIKey        string `yaml:"gemini_api_key"`
	GeminiModel         string `yaml:"gemini_model"`
	AnthropicAPIKey     string `yaml:"anthropic_api_key"`
	AnthropicModel      string `yaml:"anthropic_model"`

	// CallTimeout bounds one outbound call; Budget bounds the whole attempt.
	CallTimeout       time.Duration `yaml:"call_timeout"`
	Budget            time.Duration `yaml:"budget"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

type TelegramConfig struct {
	BotToken   string `yaml:"bot_token"`
	WebhookURL string `yaml:"webhook_url"`
}

func Default() *Config {
	return &Config{
		Port:        "8000",
		ServiceName: "business-eval",
		Log:         LogConfig{Level: "info"},
		Enrichment: EnrichmentConfig{
			Provider:            "huggingface",
			HuggingFaceModelURL: "https://api-inference.huggingface.co/models/google/flan-t5-large",
			GeminiModel:         "gemini-2.5-flash",
			AnthropicModel:      "claude-sonnet-4-20250514",
			CallTimeout:         10 * time.Second,
			Budget:              15 * time.Second,
			RequestsPerMinute:   0,
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		},
	}
}

// Load layers defaults, the optional YAML file at path and the environment.
// A .env file in the working directory is read first; real env vars win over it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.ServiceName, "SERVICE_NAME")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.File, "LOG_FILE")

	e := &c.Enrichment
	setString(&e.Provider, "ENRICH_PROVIDER")
	setString(&e.HuggingFaceAPIKey, "HUGGINGFACE_API_KEY")
	setString(&e.HuggingFaceModelURL, "HUGGINGFACE_MODEL_URL")
	setString(&e.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&e.GeminiModel, "GEMINI_MODEL")
	setString(&e.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&e.AnthropicModel, "ANTHROPIC_MODEL")

	var errs []error
	errs = append(errs,
		setDuration(&e.CallTimeout, "ENRICH_CALL_TIMEOUT"),
		setDuration(&e.Budget, "ENRICH_BUDGET"),
		setInt(&e.RequestsPerMinute, "ENRICH_RPM"),
		setBool(&c.CORS.AllowCredentials, "CORS_ALLOW_CREDENTIALS"),
	)
	if v := getEnv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}

	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.WebhookURL, "WEBHOOK_URL")
	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	e := c.Enrichment
	switch strings.ToLower(strings.TrimSpace(e.Provider)) {
	case "huggingface", "gemini", "anthropic", "none":
	default:
		return fmt.Errorf("unknown enrichment provider %q", e.Provider)
	}
	if e.CallTimeout <= 0 || e.Budget <= 0 {
		return fmt.Errorf("enrichment timeouts must be positive (call=%s budget=%s)", e.CallTimeout, e.Budget)
	}
	if e.CallTimeout >= e.Budget {
		return fmt.Errorf("enrichment call timeout %s must be shorter than budget %s", e.CallTimeout, e.Budget)
	}
	if e.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port is empty")
	}
	return nil
}

func getEnv(k string) string {
	return strings.TrimSpace(os.Getenv(k))
}

func setString(dst *string, k string) {
	if v := getEnv(k); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, k string) error {
	v := getEnv(k)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// bare numbers are seconds
		n, nerr := strconv.ParseFloat(v, 64)
		if nerr != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		d = time.Duration(n * float64(time.Second))
	}
	*dst = d
	return nil
}

func setInt(dst *int, k string) error {
	v := getEnv(k)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", k, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, k string) error {
	v := getEnv(k)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", k, err)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
