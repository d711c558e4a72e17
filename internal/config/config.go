package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/zant/accident-backend/internal/entity"
)

// AI provider selectors. The provider is fixed per deployment; there is no
// runtime switch.
const (
	ProviderPllum  = "pllum"
	ProviderGemini = "gemini"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// AI provider configuration
	AIProvider string        `env:"AI_PROVIDER" envDefault:"pllum"`
	PllumCfg   PllumConfig   `envPrefix:"PLLUM_"`
	GeminiCfg  GeminiConfig  `envPrefix:"GEMINI_"`
	StateCache StateCacheCfg `envPrefix:"STATE_CACHE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Required-field catalog (loaded from JSON file, with built-in defaults)
	RequiredFields []entity.RequiredField

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional, used by cmd/telegram-bot)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// PllumConfig configures the PLLUM (OpenAI-style) chat completion endpoint.
type PllumConfig struct {
	HTTPClientConfig
	APIKey      string  `env:"API_KEY"`
	Model       string  `env:"MODEL" envDefault:"CYFRAGOVPL/pllum-12b-nc-chat-250715"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"2048"`
}

// GeminiConfig configures the Gemini generateContent endpoint.
type GeminiConfig struct {
	HTTPClientConfig
	APIKey      string  `env:"API_KEY"`
	Model       string  `env:"MODEL" envDefault:"gemini-1.5-flash"`
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"2048"`
}

// StateCacheCfg configures the in-memory conversation state cache.
type StateCacheCfg struct {
	TTL             time.Duration `env:"TTL" envDefault:"30m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

// HTTPClientConfig holds outbound HTTP client settings for one provider.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Url                   string        `env:"SERVICE_URL"`
}

// requiredFieldsFile represents the structure of required_fields.json
type requiredFieldsFile struct {
	Fields []entity.RequiredField `json:"fields"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load the required-field catalog from JSON file
	if err := loadRequiredFields(cfg); err != nil {
		return nil, fmt.Errorf("load required fields: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch strings.ToLower(cfg.AIProvider) {
	case ProviderPllum, ProviderGemini:
		cfg.AIProvider = strings.ToLower(cfg.AIProvider)
	default:
		errors = append(errors, fmt.Sprintf("AI_PROVIDER must be %q or %q, got %q", ProviderPllum, ProviderGemini, cfg.AIProvider))
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

// DefaultRequiredFields is the built-in catalog of the report fields the
// assistant collects. Codes are dotted paths into the AccidentReport draft.
var DefaultRequiredFields = []entity.RequiredField{
	{Code: "victimData.firstName", Section: entity.SectionPersonData, Label: "Imię poszkodowanego", Mandatory: true, Description: "Podaj imię poszkodowanego"},
	{Code: "victimData.lastName", Section: entity.SectionPersonData, Label: "Nazwisko poszkodowanego", Mandatory: true, Description: "Podaj nazwisko poszkodowanego"},
	{Code: "victimData.pesel", Section: entity.SectionPersonData, Label: "PESEL poszkodowanego", Mandatory: true, Description: "Podaj PESEL poszkodowanego"},
	{Code: "victimData.address", Section: entity.SectionPersonData, Label: "Adres poszkodowanego", Mandatory: true, Description: "Podaj adres poszkodowanego"},
	{Code: "businessData.nip", Section: entity.SectionBusinessData, Label: "NIP działalności", Mandatory: true, Description: "Podaj NIP działalności gospodarczej"},
	{Code: "businessData.regon", Section: entity.SectionBusinessData, Label: "REGON działalności", Mandatory: false, Description: "Podaj REGON działalności gospodarczej"},
	{Code: "accidentData.accidentDateTime", Section: entity.SectionAccidentData, Label: "Data i godzina wypadku", Mandatory: true, Description: "Podaj datę i godzinę wypadku"},
	{Code: "accidentData.place", Section: entity.SectionAccidentData, Label: "Miejsce wypadku", Mandatory: true, Description: "Podaj miejsce wypadku"},
	{Code: "accidentData.plannedWorkHours", Section: entity.SectionAccidentData, Label: "Planowane godziny pracy", Mandatory: true, Description: "Podaj planowane godziny pracy"},
	{Code: "accidentData.activitiesBefore", Section: entity.SectionAccidentData, Label: "Czynności wykonywane przed wypadkiem", Mandatory: true, Description: "Opisz czynności wykonywane przed wypadkiem"},
	{Code: "accidentData.circumstancesAndCauses", Section: entity.SectionAccidentData, Label: "Okoliczności i przyczyny wypadku", Mandatory: true, Description: "Opisz okoliczności i przyczyny wypadku"},
	{Code: "accidentData.injuries", Section: entity.SectionAccidentData, Label: "Urazy", Mandatory: true, Description: "Opisz doznane urazy"},
	{Code: "accidentData.medicalHelp", Section: entity.SectionAccidentData, Label: "Udzielona pomoc medyczna", Mandatory: false, Description: "Opisz udzieloną pomoc medyczną"},
	{Code: "witnesses", Section: entity.SectionWitnesses, Label: "Świadkowie", Mandatory: false, Description: "Podaj dane świadków (imię, nazwisko, adres)"},
	{Code: "attorneyData.firstName", Section: entity.SectionAttorneyData, Label: "Imię pełnomocnika", Mandatory: false, Description: "Podaj imię pełnomocnika"},
	{Code: "attorneyData.lastName", Section: entity.SectionAttorneyData, Label: "Nazwisko pełnomocnika", Mandatory: false, Description: "Podaj nazwisko pełnomocnika"},
	{Code: "attorneyData.address", Section: entity.SectionAttorneyData, Label: "Adres pełnomocnika", Mandatory: false, Description: "Podaj adres pełnomocnika"},
	{Code: "requiredDocuments", Section: entity.SectionDocuments, Label: "Wymagane dokumenty", Mandatory: true, Description: "Lista wymaganych dokumentów"},
}

func loadRequiredFields(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "required_fields.json")

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: required fields file not found at %s, using default catalog\n", configPath)
		cfg.RequiredFields = DefaultRequiredFields
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read required fields file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("required fields file is empty: %s", configPath)
	}

	var fieldsData requiredFieldsFile
	if err := json.Unmarshal(data, &fieldsData); err != nil {
		return fmt.Errorf("parse required fields JSON: %w", err)
	}

	if len(fieldsData.Fields) == 0 {
		return fmt.Errorf("required fields file contains no fields: %s", configPath)
	}

	cfg.RequiredFields = fieldsData.Fields

	fmt.Printf("Loaded %d required fields from %s\n", len(cfg.RequiredFields), configPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
