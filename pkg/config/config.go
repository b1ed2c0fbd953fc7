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
	GigaChat GigaChatConfig
	OCRSpace OCRSpaceConfig
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

// DatabaseConfig configures the optional verdict audit store. An empty Host
// disables persistence entirely; the pipeline itself is stateless.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// GigaChatConfig configures the AI-assisted extraction fallback. An empty
// APIKey disables the fallback; regex extraction still runs.
type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

func (c GigaChatConfig) Enabled() bool {
	return c.APIKey != ""
}

// OCRSpaceConfig configures the hosted OCR service used as the primary path
// for image documents. Without a key, only local tesseract OCR runs.
type OCRSpaceConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

func (c OCRSpaceConfig) Enabled() bool {
	return c.APIKey != ""
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	ocrTimeout, _ := strconv.Atoi(getEnv("OCR_SPACE_TIMEOUT", "25"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "formadoc"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		OCRSpace: OCRSpaceConfig{
			APIKey:   getEnv("OCR_SPACE_KEY", ""),
			Endpoint: getEnv("OCR_SPACE_ENDPOINT", "https://api.ocr.space/parse/image"),
			Timeout:  time.Duration(ocrTimeout) * time.Second,
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
