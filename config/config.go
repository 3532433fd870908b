package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv loads variables from .env, or from .env.local when APP_ENV is "local".
// Values already present in the environment are never overridden.
func LoadEnv() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
		os.Setenv("APP_ENV", appEnv)
	}

	file := ".env"
	if appEnv == "local" {
		file = ".env.local"
	}
	if err := godotenv.Load(file); err != nil {
		log.Warn().Err(err).Str("file", file).Msg("env file not loaded, relying on process environment")
		return
	}
	log.Info().Str("file", file).Str("env", appEnv).Msg("env file loaded")
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

type SMTP struct {
	Host       string
	Port       int
	User       string
	Password   string
	SenderName string
}

// Enabled reports whether outbound mail can be sent.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.User != ""
}

type Config struct {
	Env      string
	Port     string
	MongoURI string
	DBName   string

	JWTSecret       string
	JWTTTL          time.Duration
	FirebaseCreds   string
	CORSOrigins     []string
	RedisAddr       string
	RedisPassword   string
	ProductCacheTTL time.Duration

	MLServiceURL     string
	MLServiceTimeout time.Duration

	SMTP SMTP

	RazorpayKeyID     string
	RazorpayKeySecret string

	DefaultDistrict string
	OTPTTL          time.Duration
	ArrivalDelay    time.Duration

	LogLevel  string
	LogPretty bool
}

// Load reads the process environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      GetEnv("APP_ENV", "development"),
		Port:     GetEnv("PORT", "5000"),
		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   GetEnv("DB_NAME", "foodily"),

		JWTSecret:       GetEnv("JWT_SECRET", ""),
		JWTTTL:          getDuration("JWT_TTL", 7*24*time.Hour),
		FirebaseCreds:   os.Getenv("FIREBASE_CREDENTIALS"),
		CORSOrigins:     splitList(GetEnv("CORS_ORIGINS", "*")),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ProductCacheTTL: getDuration("PRODUCT_CACHE_TTL", 5*time.Minute),

		MLServiceURL:     os.Getenv("ML_SERVICE_URL"),
		MLServiceTimeout: getDuration("ML_SERVICE_TIMEOUT", 3*time.Second),

		SMTP: SMTP{
			Host:       GetEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:       getInt("SMTP_PORT", 587),
			User:       os.Getenv("EMAIL_USER"),
			Password:   os.Getenv("EMAIL_PASS"),
			SenderName: GetEnv("SENDER_NAME", "CraftedByHer"),
		},

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		DefaultDistrict: GetEnv("DEFAULT_DISTRICT", "Ernakulam"),
		OTPTTL:          time.Duration(getInt("OTP_TTL_HOURS", 24)) * time.Hour,
		ArrivalDelay:    getDuration("ARRIVAL_DELAY", 0),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogPretty: GetEnv("LOG_PRETTY", "false") == "true",
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" || c.DBName == "" {
		return fmt.Errorf("MONGO_URI or DB_NAME not set in environment variables")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET not set in environment variables")
	}
	if c.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL_HOURS must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
