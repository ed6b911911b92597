package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// PublicBaseURL is the externally reachable base URL of this service,
	// used to build temp-file download links handed to clients.
	PublicBaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTSecret     string
	JWTExpiryDays int

	// AutoVerifyUsers marks accounts verified at registration and skips the
	// login-time verification gate. The code issuance/redemption path stays
	// available either way.
	AutoVerifyUsers bool

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	WkhtmltopdfPath      string
	RenderTimeoutSeconds int
	RenderWorkers        int
	TempFileTTLMinutes   int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users             string
	VerificationCodes string
	NakliyeRecords    string
	DepositRecords    string
	TempFiles         string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:             getEnv("DYNAMO_TABLE_USERS", "users"),
			VerificationCodes: getEnv("DYNAMO_TABLE_VERIFICATION_CODES", "verification_codes"),
			NakliyeRecords:    getEnv("DYNAMO_TABLE_NAKLIYE_RECORDS", "nakliye_records"),
			DepositRecords:    getEnv("DYNAMO_TABLE_DEPOSIT_RECORDS", "deposit_records"),
			TempFiles:         getEnv("DYNAMO_TABLE_TEMP_FILES", "temp_files"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "nakliye-temp-files"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiryDays: getEnvInt("JWT_EXPIRY_DAYS", 30),

		AutoVerifyUsers: getEnvBool("AUTO_VERIFY_USERS", true),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		WkhtmltopdfPath:      getEnv("WKHTMLTOPDF_PATH", "wkhtmltopdf"),
		RenderTimeoutSeconds: getEnvInt("RENDER_TIMEOUT_SECONDS", 30),
		RenderWorkers:        getEnvInt("RENDER_WORKERS", 2),
		TempFileTTLMinutes:   getEnvInt("TEMP_FILE_TTL_MINUTES", 30),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
