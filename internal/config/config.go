package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/noguchitomoya/Google-meet/internal/mail"
	"github.com/noguchitomoya/Google-meet/internal/meeting"
)

type Config struct {
	Port           string
	DBUrl          string
	JWTSecret      string
	JWTExpiresIn   time.Duration
	AppEnv         string
	LogLevel       string
	MeetingTimeout time.Duration
	EnableDocs     bool

	GoogleServiceAccountEmail string
	GoogleServiceAccountKey   string
	GoogleCalendarID          string
	GoogleImpersonatedUser    string
	GoogleCalendarTimeZone    string
	MeetDomain                string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	DefaultCoachEmployeeNumber string
	DefaultCoachName           string
	DefaultCoachEmail          string
	DefaultCoachPassword       string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	jwtExpiresIn, err := getEnvDuration("JWT_EXPIRES_IN", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	meetingTimeout, err := getEnvDuration("MEETING_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DATABASE_URL", getEnv("DB_URL", "")),
		JWTSecret:      jwtSecret,
		JWTExpiresIn:   jwtExpiresIn,
		AppEnv:         normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MeetingTimeout: meetingTimeout,
		EnableDocs:     getEnvBool("ENABLE_API_DOCS", false),

		GoogleServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		GoogleServiceAccountKey:   getEnv("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		GoogleCalendarID:          getEnv("GOOGLE_CALENDAR_ID", ""),
		GoogleImpersonatedUser:    getEnv("GOOGLE_IMPERSONATED_USER", ""),
		GoogleCalendarTimeZone:    getEnv("GOOGLE_CALENDAR_TIMEZONE", meeting.DefaultTimeZone),
		MeetDomain:                getEnv("MEET_DOMAIN", meeting.DefaultDomain),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),

		DefaultCoachEmployeeNumber: getEnv("DEFAULT_COACH_EMPLOYEE_NUMBER", "E0001"),
		DefaultCoachName:           getEnv("DEFAULT_COACH_NAME", "Demo Coach"),
		DefaultCoachEmail:          getEnv("DEFAULT_COACH_EMAIL", "coach@example.com"),
		DefaultCoachPassword:       getEnv("DEFAULT_COACH_PASSWORD", ""),
	}, nil
}

// LoadMeetingConfig reads only the Google Calendar keys, for tools that do
// not need the full server configuration.
func LoadMeetingConfig() meeting.Config {
	_ = godotenv.Load()
	return meeting.Config{
		ServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		ServiceAccountKey:   getEnv("GOOGLE_SERVICE_ACCOUNT_KEY", ""),
		CalendarID:          getEnv("GOOGLE_CALENDAR_ID", ""),
		ImpersonatedUser:    getEnv("GOOGLE_IMPERSONATED_USER", ""),
		TimeZone:            getEnv("GOOGLE_CALENDAR_TIMEZONE", meeting.DefaultTimeZone),
		FallbackDomain:      getEnv("MEET_DOMAIN", meeting.DefaultDomain),
	}
}

func (c *Config) Meeting() meeting.Config {
	return meeting.Config{
		ServiceAccountEmail: c.GoogleServiceAccountEmail,
		ServiceAccountKey:   c.GoogleServiceAccountKey,
		CalendarID:          c.GoogleCalendarID,
		ImpersonatedUser:    c.GoogleImpersonatedUser,
		TimeZone:            c.GoogleCalendarTimeZone,
		FallbackDomain:      c.MeetDomain,
	}
}

func (c *Config) SMTP() mail.SMTPConfig {
	return mail.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.MailFrom,
	}
}

// DocsEnabled exposes the API docs only in development.
func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

// getEnvDuration accepts Go durations ("90s", "12h") or a bare number of
// seconds.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	if !exists || value == "" {
		return fallback, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return parsed, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
