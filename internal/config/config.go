package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Upload    UploadConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Cache     CacheConfig
	Mail      MailConfig
	Log       LogConfig
	Feedback  FeedbackConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ConfigFile string `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

func (s ServerConfig) IsRelease() bool {
	return s.Mode == "release"
}

type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool   `mapstructure:"parse_time"`
	SSLMode   string `mapstructure:"ssl_mode"`
	Path      string
	Seed      bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type UploadConfig struct {
	MaxFileSize  int64    `mapstructure:"max_file_size"`
	MaxFiles     int      `mapstructure:"max_files"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
	ServiceName       string `mapstructure:"service_name"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	CategoryTTL time.Duration `mapstructure:"category_ttl"`
	LocalSize   int           `mapstructure:"local_size"`
}

type MailConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

type LogConfig struct {
	Level    string
	Filename string
}

type FeedbackConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// DefaultAllowedTypes is the attachment MIME allow-list.
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "data/campus_voice.db")

	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./uploads")

	v.SetDefault("upload.max_file_size", 5242880)
	v.SetDefault("upload.max_files", 5)
	v.SetDefault("upload.allowed_types", DefaultAllowedTypes)

	v.SetDefault("tracing.service_name", "campus-voice")

	v.SetDefault("redis.port", 6379)

	v.SetDefault("cache.category_ttl", 10*time.Minute)
	v.SetDefault("cache.local_size", 128)

	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from_name", "Campus Voice")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.filename", "logs/app.log")

	v.SetDefault("feedback.default_page_size", 10)
	v.SetDefault("feedback.max_page_size", 100)

	v.SetDefault("rate_limit.max_requests", 1000)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// Default returns a configuration holding only built-in defaults.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CAMPUS_VOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Upload
	v.BindEnv("storage.local_path", "UPLOAD_DIR")
	v.BindEnv("upload.max_file_size", "MAX_FILE_SIZE")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Mail
	v.BindEnv("mail.host", "SMTP_HOST")
	v.BindEnv("mail.port", "SMTP_PORT")
	v.BindEnv("mail.username", "SMTP_USERNAME")
	v.BindEnv("mail.password", "SMTP_PASSWORD")
	v.BindEnv("mail.from_address", "SMTP_FROM_EMAIL")
	v.BindEnv("mail.from_name", "SMTP_FROM_NAME")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.IsRelease() && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
