package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Storage  StorageConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	APIKey  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// SessionConfig selects where login markers and email codes live.
type SessionConfig struct {
	Backend       string // memory | redis
	TTLHours      int    // 0 keeps login markers until logout
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type StorageConfig struct {
	Backend       string // local | s3
	ImageDir      string
	S3Bucket      string
	S3Prefix      string
	AWSRegion     string
	MaxImageBytes int64
}

type EmailConfig struct {
	Backend        string // log | smtp | ses
	Host           string
	Port           int
	User           string
	Password       string
	From           string
	SESAccessKey   string
	SESSecretKey   string
	CodeTTLSeconds int
}

// LoadConfig reads .env when present, then lets the environment override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "classifieds-market")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_TTL_HOURS", 0)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STORAGE_BACKEND", "local")
	v.SetDefault("IMAGE_DIR", "images")
	v.SetDefault("AWS_REGION", "ap-northeast-2")
	v.SetDefault("MAX_IMAGE_BYTES", 5*1024*1024)
	v.SetDefault("MAIL_BACKEND", "log")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_CODE_TTL_SECONDS", 300)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
			APIKey:  v.GetString("API_KEY"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Backend:       v.GetString("SESSION_BACKEND"),
			TTLHours:      v.GetInt("SESSION_TTL_HOURS"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
		},
		Storage: StorageConfig{
			Backend:       v.GetString("STORAGE_BACKEND"),
			ImageDir:      v.GetString("IMAGE_DIR"),
			S3Bucket:      v.GetString("S3_BUCKET"),
			S3Prefix:      v.GetString("S3_PREFIX"),
			AWSRegion:     v.GetString("AWS_REGION"),
			MaxImageBytes: v.GetInt64("MAX_IMAGE_BYTES"),
		},
		Email: EmailConfig{
			Backend:        v.GetString("MAIL_BACKEND"),
			Host:           v.GetString("SMTP_HOST"),
			Port:           v.GetInt("SMTP_PORT"),
			User:           v.GetString("SMTP_USER"),
			Password:       v.GetString("SMTP_PASS"),
			From:           v.GetString("EMAIL_FROM"),
			SESAccessKey:   v.GetString("SES_ACCESS_KEY"),
			SESSecretKey:   v.GetString("SES_SECRET_KEY"),
			CodeTTLSeconds: v.GetInt("EMAIL_CODE_TTL_SECONDS"),
		},
	}

	return config, nil
}
