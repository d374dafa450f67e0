package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type FileStorageConfig struct {
	Dir string `yaml:"dir"`
}

type PostgresConfig struct {
	DSN string `yaml:"url"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type StorageConfig struct {
	Driver   string            `yaml:"driver"` // file | postgres | sqlite | redis
	Slot     string            `yaml:"slot"`
	File     FileStorageConfig `yaml:"file"`
	Postgres PostgresConfig    `yaml:"postgres"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Redis    RedisConfig       `yaml:"redis"`
}

type Config struct {
	Server struct {
		Port     int    `yaml:"port"`
		Mode     string `yaml:"mode"` // gin mode: debug | release | test
		ReadOnly bool   `yaml:"read_only"`
	} `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Reports struct {
		FontPath string `yaml:"font_path"`
	} `yaml:"reports"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadConfig reads the YAML file at path, then .env and TASKBOARD_* variables
// on top. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	var cfg Config
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[config] %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config][warn] .env: %v", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Slot == "" {
		c.Storage.Slot = "tasks_storage"
	}
	if c.Storage.File.Dir == "" {
		c.Storage.File.Dir = "./data"
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = "taskboard.db"
	}
	if c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = "localhost:6379"
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = "taskboard:"
	}
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"TASKBOARD_STORAGE_DRIVER": &c.Storage.Driver,
		"TASKBOARD_STORAGE_SLOT":   &c.Storage.Slot,
		"TASKBOARD_FILE_DIR":       &c.Storage.File.Dir,
		"TASKBOARD_POSTGRES_URL":   &c.Storage.Postgres.DSN,
		"TASKBOARD_SQLITE_PATH":    &c.Storage.SQLite.Path,
		"TASKBOARD_REDIS_ADDR":     &c.Storage.Redis.Addr,
		"TASKBOARD_REDIS_PASSWORD": &c.Storage.Redis.Password,
		"TASKBOARD_GIN_MODE":       &c.Server.Mode,
		"TASKBOARD_REPORT_FONT":    &c.Reports.FontPath,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("TASKBOARD_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKBOARD_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := os.LookupEnv("TASKBOARD_READ_ONLY"); ok {
		ro, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKBOARD_READ_ONLY: %w", err)
		}
		c.Server.ReadOnly = ro
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "redis":
	case "postgres":
		if c.Storage.Postgres.DSN == "" {
			return errors.New("storage.postgres.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid server mode %q (debug|release|test)", c.Server.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
