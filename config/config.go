package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	ServerPort   int
	JWTSecretKey string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	AdminEmail    string
	AdminPassword string

	// FallbackMode: "demo" — при недоступной БД публичные чтения отдают
	// демо-турниры; "strict" — отдаём ошибку.
	FallbackMode string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	AllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	fallbackMode := strings.ToLower(os.Getenv("FALLBACK_MODE"))
	switch fallbackMode {
	case "":
		fallbackMode = "demo"
	case "demo", "strict":
	default:
		return nil, fmt.Errorf("FALLBACK_MODE must be \"demo\" or \"strict\", got %q", fallbackMode)
	}

	razorpayKeyID := os.Getenv("RAZORPAY_KEY_ID")
	razorpayKeySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if razorpayKeyID == "" || razorpayKeySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET environment variables are not set")
	}

	origins := []string{"*"}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		origins = origins[:0]
		for _, o := range strings.Split(originsStr, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:           dbURL,
		ServerPort:            port,
		JWTSecretKey:          jwtKey,
		RazorpayKeyID:         razorpayKeyID,
		RazorpayKeySecret:     razorpayKeySecret,
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		AdminEmail:            os.Getenv("ADMIN_EMAIL"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		FallbackMode:          fallbackMode,
		R2AccountID:           os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:         os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:     os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:          os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:       os.Getenv("R2_PUBLIC_BASE_URL"),
		AllowedOrigins:        origins,
	}

	return cfg, nil
}

// R2Configured сообщает, заданы ли все поля объектного хранилища.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}
