package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Bookkeeping BookkeepingConfig `mapstructure:"bookkeeping"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Attachment  AttachmentConfig  `mapstructure:"attachment"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// BookkeepingConfig points the gateway at a Bookkeeping instance
type BookkeepingConfig struct {
	BaseURL string        `mapstructure:"base_url"` // e.g. https://ali-bookkeeping.cern.ch/api
	Token   string        `mapstructure:"token"`    // sent as the token query parameter
	Timeout time.Duration `mapstructure:"timeout"`  // seconds
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"` // seconds
}

type AttachmentConfig struct {
	BasePath       string `mapstructure:"base_path"`       // Base path for attachments
	ReadyFolder    string `mapstructure:"ready_folder"`    // Files waiting to be attached to a log
	UploadedFolder string `mapstructure:"uploaded_folder"` // Files already sent
	MaxSize        int64  `mapstructure:"max_size"`        // bytes, 0 means unlimited
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Convert timeouts to durations
	cfg.Bookkeeping.Timeout = cfg.Bookkeeping.Timeout * time.Second
	cfg.Cache.TTL = cfg.Cache.TTL * time.Second

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bookkeeping-gateway")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "production")
	v.SetDefault("bookkeeping.timeout", 30)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 60)
	v.SetDefault("attachment.base_path", "./attachments")
	v.SetDefault("attachment.ready_folder", "ready")
	v.SetDefault("attachment.uploaded_folder", "uploaded")
	v.SetDefault("logging.level", "info")
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
