package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string
	MongoURI string
	DBName   string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir       string
	UploadMaxBytes  int64
	GalleryMaxBytes int64
	StorageDriver   string
	Cloudinary      CloudinaryConfig

	Mail MailConfig

	PriorityCategories []string
	CORSOrigins        []string
	ClientBuildDir     string

	Admin AdminConfig
	Log   LogConfig
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
	SiteName  string
}

// Enabled reports whether enough is configured to reach the relay.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Recipient != ""
}

type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf(".env not loaded: %v", err)
	}

	mailUser := getEnvOrDefault("SMTP_USER", getEnvOrDefault("EMAIL_USER", ""))

	return Config{
		Port:     getEnvOrDefault("PORT", "5000"),
		MongoURI: getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:   getEnvOrDefault("DB_NAME", "yiltek"),

		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:  getDurationEnv("TOKEN_TTL_HOURS", 24, time.Hour),

		UploadDir:       getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes:  int64(getIntEnv("UPLOAD_MAX_MB", 10)) << 20,
		GalleryMaxBytes: int64(getIntEnv("GALLERY_MAX_MB", 100)) << 20,
		StorageDriver:   strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", "local")),
		Cloudinary: CloudinaryConfig{
			CloudName: getEnvOrDefault("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnvOrDefault("CLOUDINARY_API_KEY", ""),
			APISecret: getEnvOrDefault("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnvOrDefault("CLOUDINARY_FOLDER", "yiltek/uploads"),
		},

		Mail: MailConfig{
			Host:      getEnvOrDefault("SMTP_HOST", ""),
			Port:      getIntEnv("SMTP_PORT", 587),
			Username:  mailUser,
			Password:  getEnvOrDefault("SMTP_PASS", getEnvOrDefault("EMAIL_PASS", "")),
			From:      getEnvOrDefault("EMAIL_FROM", mailUser),
			Recipient: getEnvOrDefault("EMAIL_RECIPIENT", ""),
			SiteName:  getEnvOrDefault("SITE_NAME", "Yiltek"),
		},

		PriorityCategories: getListEnv("PRIORITY_CATEGORIES", []string{"Işık Kulesi", "Teleskopik Direk"}),
		CORSOrigins:        getListEnv("CORS_ORIGINS", nil),
		ClientBuildDir:     getEnvOrDefault("CLIENT_BUILD_DIR", ""),

		Admin: AdminConfig{
			Name:     getEnvOrDefault("ADMIN_NAME", "admin"),
			Email:    strings.ToLower(getEnvOrDefault("ADMIN_EMAIL", "")),
			Password: getEnvOrDefault("ADMIN_PASSWORD", ""),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func getListEnv(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
