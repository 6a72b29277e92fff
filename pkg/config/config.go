package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Port          string
	AppEnv        string
	LogLevel      string
	StorageDriver string
	DatabaseURL   string
	RedisURL      string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// FrontendURL prefixes candidate interview links.
	FrontendURL   string
	LinkTTL       time.Duration
	Grace         time.Duration
	SweepSchedule string
	PolicyFile    string
	Policy        Policy
	// QuestionBankFile replaces the built-in coding question bank when set.
	QuestionBankFile string
	CORSOrigins      string
	HRAdminName      string
	HRAdminEmail     string
	HRAdminPass      string
	OpenRouterKey    string
	OpenRouterURL    string
	OpenRouterModel  string
	AppTitle         string
}

// Policy is the tunable scoring and integrity policy read from a YAML file.
type Policy struct {
	Integrity IntegrityPolicy `yaml:"integrity"`
	Scoring   ScoringPolicy   `yaml:"scoring"`
}

type IntegrityPolicy struct {
	MinSecondsPerAnswer int `yaml:"min_seconds_per_answer"`
	MaxTabSwitches      int `yaml:"max_tab_switches"`
	MaxPasteEvents      int `yaml:"max_paste_events"`
}

type ScoringPolicy struct {
	// Timeout bounds scoring of one answer, retries included.
	Timeout        time.Duration `yaml:"timeout"`
	Attempts       int           `yaml:"attempts"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
	BaseDelay      time.Duration `yaml:"base_delay"`
	MaxDelay       time.Duration `yaml:"max_delay"`
}

func DefaultPolicy() Policy {
	return Policy{
		Integrity: IntegrityPolicy{MinSecondsPerAnswer: 10, MaxTabSwitches: 5, MaxPasteEvents: 3},
		Scoring: ScoringPolicy{
			Timeout:        45 * time.Second,
			Attempts:       3,
			AttemptTimeout: 15 * time.Second,
			BaseDelay:      500 * time.Millisecond,
			MaxDelay:       4 * time.Second,
		},
	}
}

// Load reads environment variables, optionally from a .env file if present,
// then the policy file when one exists.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:        getEnv("JWT_ISSUER", "screening"),
		JWTTTLMinutes:    getEnvInt("JWT_TTL_MINUTES", 60),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		LinkTTL:          time.Duration(getEnvInt("INTERVIEW_LINK_TTL_HOURS", 7*24)) * time.Hour,
		Grace:            time.Duration(getEnvInt("INTERVIEW_GRACE_SECONDS", 60)) * time.Second,
		SweepSchedule:    getEnv("SWEEP_SCHEDULE", "@every 1m"),
		PolicyFile:       getEnv("POLICY_FILE", "policy.yaml"),
		QuestionBankFile: os.Getenv("QUESTION_BANK_FILE"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		HRAdminName:      getEnv("HR_ADMIN_USERNAME", "hr"),
		HRAdminEmail:     os.Getenv("HR_ADMIN_EMAIL"),
		HRAdminPass:      os.Getenv("HR_ADMIN_PASSWORD"),
		OpenRouterKey:    os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterURL:    os.Getenv("OPENROUTER_BASE_URL"),
		OpenRouterModel:  os.Getenv("OPENROUTER_MODEL"),
		AppTitle:         getEnv("APP_TITLE", "screening"),
	}
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", "postgres")
	if cfg.DatabaseURL == "" && os.Getenv("STORAGE_DRIVER") == "" {
		cfg.StorageDriver = "memory"
	}
	switch cfg.StorageDriver {
	case "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	policy, err := LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Policy = policy
	return cfg, nil
}

// LoadPolicy reads path over DefaultPolicy. A missing file is not an error.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes YAML over DefaultPolicy; absent keys keep defaults.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if p.Integrity.MinSecondsPerAnswer < 0 || p.Integrity.MaxTabSwitches < 0 || p.Integrity.MaxPasteEvents < 0 {
		return Policy{}, fmt.Errorf("parse policy: integrity thresholds must not be negative")
	}
	return p, nil
}

// Production reports whether APP_ENV asks for production behaviour.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
