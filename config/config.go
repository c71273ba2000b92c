// Package config loads the luxestore configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"
	StorageSql   = "sql"

	CatalogStatic = "static"
	CatalogSql    = "sql"

	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite3"
)

// Config is the complete luxestore configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Delays   DelaysConfig   `yaml:"delays"`
	Events   EventsConfig   `yaml:"events"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// CookieTTL is how long the sessionId cookie lives in the browser
	CookieTTL time.Duration `yaml:"cookie_ttl"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// StorageConfig selects where the persisted session blob lives
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	Dir       string `yaml:"dir"`
	StateName string `yaml:"state_name"`
	// TTL applies to the redis backend only; zero keeps state forever
	TTL time.Duration `yaml:"ttl"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SqlitePath string `yaml:"sqlite_path"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CatalogConfig struct {
	Source string `yaml:"source"`
}

// DelaysConfig holds the simulated backend latencies
type DelaysConfig struct {
	Login     time.Duration `yaml:"login"`
	AddToCart time.Duration `yaml:"add_to_cart"`
	Payment   time.Duration `yaml:"payment"`
}

// EventsConfig enables order events when Brokers is non-empty
type EventsConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			CookieTTL: 30 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Backend:   StorageFile,
			Dir:       "data",
			StateName: "luxe-store",
		},
		Database: DatabaseConfig{
			Driver:     DriverPostgres,
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "luxestore",
			SSLMode:    "disable",
			SqlitePath: "data/luxestore.db",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Catalog: CatalogConfig{
			Source: CatalogStatic,
		},
		Delays: DelaysConfig{
			Login:     time.Second,
			AddToCart: 500 * time.Millisecond,
			Payment:   2 * time.Second,
		},
		Events: EventsConfig{
			Topic: "orders",
		},
	}
}

// Load reads path over the defaults (an empty path keeps them) and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides connection settings from the environment, the way
// the deployment scripts pass them.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("DATABASE_DRIVER", &c.Database.Driver)
	set("DATABASE_HOST", &c.Database.Host)
	set("DATABASE_PORT", &c.Database.Port)
	set("DATABASE_USER", &c.Database.User)
	set("DATABASE_PASSWORD", &c.Database.Password)
	set("DATABASE_NAME", &c.Database.Name)
	set("REDIS_HOST", &c.Redis.Host)
	set("REDIS_PORT", &c.Redis.Port)
	set("REDIS_PASSWORD", &c.Redis.Password)
	set("LUXE_STORAGE", &c.Storage.Backend)
	set("LUXE_CATALOG", &c.Catalog.Source)
	set("LUXE_ADDR", &c.Server.Addr)
	if v, ok := lookup("KAFKA_BROKERS"); ok && v != "" {
		c.Events.Brokers = splitList(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file backend")
		}
	case StorageRedis, StorageSql:
	default:
		return fmt.Errorf("storage.backend must be one of file, redis, sql (got %q)", c.Storage.Backend)
	}
	if c.Storage.StateName == "" {
		return fmt.Errorf("storage.state_name is required")
	}
	switch c.Catalog.Source {
	case CatalogStatic, CatalogSql:
	default:
		return fmt.Errorf("catalog.source must be static or sql (got %q)", c.Catalog.Source)
	}
	if c.NeedsDatabase() {
		switch c.Database.Driver {
		case DriverPostgres, DriverSqlite:
		default:
			return fmt.Errorf("database.driver must be postgres or sqlite3 (got %q)", c.Database.Driver)
		}
	}
	if c.Delays.Login < 0 || c.Delays.AddToCart < 0 || c.Delays.Payment < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return fmt.Errorf("events.topic is required when brokers are set")
	}
	return nil
}

func (c *Config) NeedsDatabase() bool {
	return c.Storage.Backend == StorageSql || c.Catalog.Source == CatalogSql
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	d := c.Database
	if d.Driver == DriverSqlite {
		return d.SqlitePath
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}
