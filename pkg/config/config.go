package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

func New() Config {
	return Config{
		Environment: getEnv("ENVIRONMENT", "production"),
		BasePath:    getEnv("BASE_PATH", ""),
		Hostname:    requireEnv("HOSTNAME"),
		Port:        getEnvAsInt("PORT", 8080),
		UIURL:       requireEnv("UI_URL"),
		SameSite:    getEnvAsSameSite("SAME_SITE_MODE", http.SameSiteStrictMode),
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		Redis: Redis{
			Host:     requireEnv("REDIS_HOST"),
			Port:     requireEnvAsInt("REDIS_PORT"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Database: getEnvAsInt("REDIS_DATABASE", 0),
		},
		RabbitMqURL: rabbitmq{
			Host:     requireEnv("RABBITMQ_HOST"),
			Port:     requireEnvAsInt("RABBITMQ_PORT"),
			Username: requireEnv("RABBITMQ_USERNAME"),
			Password: requireEnv("RABBITMQ_PASSWORD"),
		},
		EmailQueue: getEnv("EMAIL_QUEUE", "email"),
		SMTP: SMTP{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "EventForge <no-reply@eventforge.bg>"),
		},
		Authentication: Authentication{
			Keys: Keys{
				PrivateKey: requireEnv("PRIVATE_KEY"),
			},
			AccessTokenExpirationSeconds:  requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_IN_SECONDS"),
			RefreshTokenSecretKey:         requireEnv("REFRESH_TOKEN_SECRET_KEY"),
			RefreshTokenExpirationSeconds: requireEnvAsInt("REFRESH_TOKEN_EXPIRATION_IN_SECONDS"),
		},
		VerificationTokenTTL: time.Duration(getEnvAsInt("VERIFICATION_TOKEN_TTL_IN_SECONDS", 24*60*60)) * time.Second,
		ImageStorage: ImageStorage{
			Backend:    getEnv("IMAGE_STORAGE_BACKEND", "filesystem"),
			FolderPath: getEnv("IMAGE_FOLDER_PATH", "static/main/resources/static/images/"),
			S3Bucket:   getEnv("IMAGE_S3_BUCKET", ""),
			S3Region:   getEnv("IMAGE_S3_REGION", "eu-west-1"),
			S3Endpoint: getEnv("IMAGE_S3_ENDPOINT", ""),
			Minio: Minio{
				Endpoint:  getEnv("IMAGE_MINIO_ENDPOINT", ""),
				AccessKey: getEnv("IMAGE_MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("IMAGE_MINIO_SECRET_KEY", ""),
				UseSSL:    getEnvAsBool("IMAGE_MINIO_USE_SSL", true),
			},
			PublicURL: getEnv("IMAGE_PUBLIC_URL", ""),
		},
		AdminUser: AdminUser{
			Email:    requireEnv("ADMIN_USER_EMAIL"),
			Password: requireEnv("ADMIN_USER_PASSWORD"),
		},
		Tracing: Tracing{
			JaegerURL:   getEnv("JAEGER_COLLECTOR_URL", ""),
			ServiceName: getEnv("SERVICE_NAME", "eventforge"),
		},
		Logging: Logging{
			Level:       getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
			PrettyPrint: getEnvAsBool("LOG_PRETTY_PRINT", false),
		},
	}
}

type Config struct {
	Environment          string
	BasePath             string
	Hostname             string
	Port                 int
	UIURL                string
	SameSite             http.SameSite
	Postgresql           Postgresql
	Redis                Redis
	RabbitMqURL          rabbitmq
	EmailQueue           string
	SMTP                 SMTP
	Authentication       Authentication
	VerificationTokenTTL time.Duration
	ImageStorage         ImageStorage
	AdminUser            AdminUser
	Tracing              Tracing
	Logging              Logging
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

// Redis locates the store of refresh tokens.
type Redis struct {
	Host     string
	Port     int
	Password string
	Database int
}

func (r Redis) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type rabbitmq struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (r rabbitmq) GetUrl() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.Username, r.Password, r.Host, r.Port)
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Authentication struct {
	Keys                          Keys
	AccessTokenExpirationSeconds  int
	RefreshTokenSecretKey         string
	RefreshTokenExpirationSeconds int
}

type Keys struct {
	PrivateKey string
}

// GetPrivateKey parses the PEM encoded RSA private key used to sign access tokens.
func (k Keys) GetPrivateKey() (*rsa.PrivateKey, error) {
	key, err := jwk.ParseKey([]byte(k.PrivateKey), jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	var privateKey rsa.PrivateKey
	if err := key.Raw(&privateKey); err != nil {
		return nil, fmt.Errorf("private key is not an RSA key: %v", err)
	}

	return &privateKey, nil
}

// ImageStorage selects where uploaded images are written. Backend is one of "filesystem", "s3" or "minio". The
// minio backend stores into S3Bucket as well.
type ImageStorage struct {
	Backend    string
	FolderPath string
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	Minio      Minio
	PublicURL  string
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func (i ImageStorage) Validate() error {
	switch i.Backend {
	case "filesystem":
		if i.FolderPath == "" {
			return errors.New("image folder path is required for the filesystem backend")
		}
	case "s3":
		if i.S3Bucket == "" {
			return errors.New("image S3 bucket is required for the s3 backend")
		}
	case "minio":
		if i.S3Bucket == "" || i.Minio.Endpoint == "" {
			return errors.New("image bucket and MinIO endpoint are required for the minio backend")
		}
	default:
		return fmt.Errorf("unknown image storage backend %q", i.Backend)
	}
	return nil
}

type AdminUser struct {
	Email    string
	Password string
}

type Tracing struct {
	JaegerURL   string
	ServiceName string
}

type Logging struct {
	Level       slog.Level
	PrettyPrint bool
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse %s as integer: %s", key, err.Error())
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("Can't parse %s as bool: %s", key, err.Error())
	}
	return value
}

func getEnvAsLevel(key string, fallback slog.Level) slog.Level {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(valueStr)); err != nil {
		log.Fatalf("Can't parse %s as log level: %s", key, err.Error())
	}
	return level
}

func getEnvAsSameSite(key string, fallback http.SameSite) http.SameSite {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	switch strings.ToLower(valueStr) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		log.Fatalf("Can't parse %s as same site mode: %q", key, valueStr)
		return fallback
	}
}
