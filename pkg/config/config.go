package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	LLM      LLMConfig
	Upload   UploadConfig
	Mail     MailConfig
	Admin    AdminConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// LLMConfig selects the generative-AI provider used by the dekont
// analyzer. Provider "none" disables the AI stage; the pipeline then
// runs pattern-only.
type LLMConfig struct {
	Provider string // "gemini" | "gigachat" | "none"
	Timeout  time.Duration

	GeminiAPIKey string
	GeminiModel  string

	GigaChatAPIKey string
	GigaChatScope  string
}

type UploadConfig struct {
	Dir         string
	MaxFileSize int64
}

type MailConfig struct {
	IMAPServer   string // host:port, IMAPS
	Username     string
	Password     string
	Subject      string // messages whose subject contains this are ingested
	PollSchedule string // cron spec for the poller
}

// AdminConfig seeds the initial admin account. Both fields must be
// set or no account is created; there is no built-in default login.
type AdminConfig struct {
	Username string
	Password string
}

func Load() (*Config, error) {
	// .env is optional; environment variables alone are enough
	// (Docker/K8s deployments set them directly).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "30"))
	maxFileSize, _ := strconv.ParseInt(getEnv("UPLOAD_MAX_FILE_SIZE", "16777216"), 10, 64)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "basvurular"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", ""),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		LLM: LLMConfig{
			Provider:       getEnv("LLM_PROVIDER", "gemini"),
			Timeout:        time.Duration(llmTimeout) * time.Second,
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			GigaChatAPIKey: getEnv("GIGACHAT_API_KEY", ""),
			GigaChatScope:  getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize: maxFileSize,
		},
		Mail: MailConfig{
			IMAPServer:   getEnv("IMAP_SERVER", ""),
			Username:     getEnv("IMAP_USERNAME", ""),
			Password:     getEnv("IMAP_PASSWORD", ""),
			Subject:      getEnv("IMAP_SUBJECT", "Dekont"),
			PollSchedule: getEnv("IMAP_POLL_SCHEDULE", "@every 1m"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
