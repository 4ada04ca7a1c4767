package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Backend the wizards talk to.
	APIBaseURL            string `mapstructure:"API_BASE_URL"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	OTPCooldownSeconds    int    `mapstructure:"OTP_COOLDOWN_SECONDS"`

	// Session persistence: "file", "redis" or "memory".
	SessionStore string `mapstructure:"SESSION_STORE"`
	SessionFile  string `mapstructure:"SESSION_FILE"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisOTPDB     int    `mapstructure:"REDIS_OTP_DB"`

	// Contract stub server.
	StubPort          string `mapstructure:"STUB_PORT"`
	StubUserStore     string `mapstructure:"STUB_USER_STORE"`
	StubCache         string `mapstructure:"STUB_CACHE"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	TokenTTLHours     int    `mapstructure:"TOKEN_TTL_HOURS"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	v.SetDefault("OTP_COOLDOWN_SECONDS", 60)
	v.SetDefault("SESSION_STORE", "file")
	v.SetDefault("SESSION_FILE", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 1)
	v.SetDefault("REDIS_OTP_DB", 2)
	v.SetDefault("STUB_PORT", "8000")
	v.SetDefault("STUB_USER_STORE", "memory")
	v.SetDefault("STUB_CACHE", "memory")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "kisansaarthi")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL_HOURS", 72)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
}

// Load reads .env, an optional config.yaml and the environment into a Config.
func Load() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and aborts the process on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Validate rejects values the wizards cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if c.OTPCooldownSeconds < 0 {
		return fmt.Errorf("OTP_COOLDOWN_SECONDS must not be negative, got %d", c.OTPCooldownSeconds)
	}
	switch c.SessionStore {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("SESSION_STORE must be one of file, redis, memory; got %q", c.SessionStore)
	}
	switch c.StubUserStore {
	case "memory", "mongo":
	default:
		return fmt.Errorf("STUB_USER_STORE must be memory or mongo; got %q", c.StubUserStore)
	}
	switch c.StubCache {
	case "memory", "redis":
	default:
		return fmt.Errorf("STUB_CACHE must be memory or redis; got %q", c.StubCache)
	}
	return nil
}

// RequestTimeout is the per-request deadline applied by the API client.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// TokenTTL is the lifetime of tokens minted by the stub server.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
