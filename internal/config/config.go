package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address        string        `yaml:"address"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
		WriteTimeout   time.Duration `yaml:"write_timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	} `yaml:"server"`
	Database struct {
		Driver       string        `yaml:"driver"`
		URL          string        `yaml:"url"`
		QueryTimeout time.Duration `yaml:"query_timeout"`
		MaxIdleConns int           `yaml:"max_idle_conns"`
		Migrate      bool          `yaml:"migrate"`
	} `yaml:"database"`
	Redis struct {
		Addr      string        `yaml:"addr"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		DetailTTL time.Duration `yaml:"detail_ttl"`
	} `yaml:"redis"`
	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`
	Storage struct {
		Driver        string        `yaml:"driver"`
		LocalDir      string        `yaml:"local_dir"`
		PublicPrefix  string        `yaml:"public_prefix"`
		UploadTimeout time.Duration `yaml:"upload_timeout"`
		S3            struct {
			Endpoint  string `yaml:"endpoint"`
			Region    string `yaml:"region"`
			Bucket    string `yaml:"bucket"`
			Folder    string `yaml:"folder"`
			AccessKey string `yaml:"access_key"`
			SecretKey string `yaml:"secret_key"`
			PublicURL string `yaml:"public_url"`
		} `yaml:"s3"`
	} `yaml:"storage"`
	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func defaults() Config {
	var cfg Config
	cfg.Server.Address = ":4001"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 60 * time.Second
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	cfg.Server.MaxUploadBytes = 32 << 20
	cfg.Database.Driver = "mysql"
	cfg.Database.URL = "root:root@tcp(127.0.0.1:3306)/bnb?parseTime=true"
	cfg.Database.QueryTimeout = 5 * time.Second
	cfg.Database.MaxIdleConns = 35
	cfg.Redis.DetailTTL = 10 * time.Minute
	cfg.NATS.SubjectPrefix = "bnb"
	cfg.Storage.Driver = "local"
	cfg.Storage.LocalDir = "uploads"
	cfg.Storage.PublicPrefix = "/uploads"
	cfg.Storage.UploadTimeout = 30 * time.Second
	cfg.Storage.S3.Region = "us-east-1"
	cfg.Auth.TokenTTL = 24 * time.Hour
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// LoadConfig reads the YAML file at path (a missing file is not an error),
// then applies environment overrides and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config data: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Address = ":" + port
	}
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.LocalDir, "UPLOAD_DIR")
	setString(&cfg.Storage.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.S3.Region, "S3_REGION")
	setString(&cfg.Storage.S3.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.S3.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("DB_QUERY_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DB_QUERY_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Database.QueryTimeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("UPLOAD_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse UPLOAD_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Storage.UploadTimeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("DB_MIGRATE"); v != "" {
		migrate, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse DB_MIGRATE: %w", err)
		}
		cfg.Database.Migrate = migrate
	}
	return nil
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if c.Database.QueryTimeout <= 0 {
		return errors.New("database query_timeout must be positive")
	}
	if c.Storage.UploadTimeout <= 0 {
		return errors.New("storage upload_timeout must be positive")
	}
	switch c.Storage.Driver {
	case "local":
		if c.Storage.LocalDir == "" {
			return errors.New("storage local_dir is required for the local driver")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage s3 bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
