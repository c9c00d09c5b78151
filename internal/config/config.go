package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/cyclecart/internal/security"
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port             string
	DBPath           string
	Location         *time.Location
	SecretKey        string
	CookieSecure     bool
	DefaultLanguage  string
	TelegramBotToken string
	ReminderSchedule string
	ShopURL          string
	LogLevel         string
	LogFile          string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	location, err := resolveLocation()
	if err != nil {
		return Config{}, err
	}
	cookieSecure, err := parseBoolEnv("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}
	schedule, err := resolveReminderSchedule()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:             port,
		DBPath:           getEnv("DB_PATH", filepath.Join("data", "cyclecart.db")),
		Location:         location,
		SecretKey:        secretKey,
		CookieSecure:     cookieSecure,
		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "en"),
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		ReminderSchedule: schedule,
		ShopURL:          strings.TrimSpace(os.Getenv("SHOP_URL")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          strings.TrimSpace(os.Getenv("LOG_FILE")),
	}, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretPlaceholders[secret]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < security.MinSecretLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", security.MinSecretLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("PORT must be numeric, got %q", raw)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT out of range: %d", port)
	}
	return strconv.Itoa(port), nil
}

func resolveLocation() (*time.Location, error) {
	name := getEnv("TZ", "UTC")
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", name, err)
	}
	return location, nil
}

func resolveReminderSchedule() (string, error) {
	schedule := getEnv("REMINDER_SCHEDULE", "0 8 * * *")
	if _, err := cron.ParseStandard(schedule); err != nil {
		return "", fmt.Errorf("invalid REMINDER_SCHEDULE %q: %w", schedule, err)
	}
	return schedule, nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
