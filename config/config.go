package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	AppEnv     string
	JwtSecret  string
	Issuer     string
	ServerPort string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	JiraBaseURL    string
	JiraEmail      string
	JiraAPIToken   string
	JiraAPIVersion string

	GitLabBaseURL string
	GitLabToken   string

	OpenAIKey     string
	OpenAIModel   string
	OpenAITimeout time.Duration

	HTTPTimeout time.Duration

	PromptsFile string

	// Documents still UNPROCESSED after this long are marked ERROR by the
	// reconciliation job.
	IngestTimeout time.Duration
	ReconcileCron string

	MaxUploadBytes int64
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppEnv = getEnv("APP_ENV", "dev")
	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "ticketflow")
	ServerPort = getEnv("SERVER_PORT", "8080")

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "ticketflow")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "documents")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	JiraBaseURL = getEnv("JIRA_URL", "")
	JiraEmail = getEnv("JIRA_EMAIL", "")
	JiraAPIToken = getEnv("JIRA_API_TOKEN", "")
	JiraAPIVersion = getEnv("JIRA_API_VERSION", "3")

	GitLabBaseURL = getEnv("GITLAB_URL", "https://gitlab.com")
	GitLabToken = getEnv("GITLAB_TOKEN", "")

	OpenAIKey = getEnv("OPENAI_API_KEY", "")
	OpenAIModel = getEnv("OPENAI_MODEL", "gpt-4o-mini")
	OpenAITimeout = getDuration("OPENAI_TIMEOUT", 90*time.Second)

	HTTPTimeout = getDuration("HTTP_TIMEOUT", 30*time.Second)

	PromptsFile = getEnv("PROMPTS_FILE", "")

	IngestTimeout = getDuration("INGEST_TIMEOUT", 15*time.Minute)
	ReconcileCron = getEnv("RECONCILE_CRON", "*/5 * * * *")

	MaxUploadBytes = getInt64("MAX_UPLOAD_BYTES", 25<<20)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
