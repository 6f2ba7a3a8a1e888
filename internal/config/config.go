package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Dataset    DatasetConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Content    ContentConfig
	Enrichment EnrichmentConfig
	Log        LogConfig
	Worker     WorkerConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

// DatasetConfig - где брать индекс мест и индекс локаций для подсказок
type DatasetConfig struct {
	Source        string // file | postgres
	PlacesPath    string
	LocationsPath string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Backend         string // redis | memory
	PageTTL         time.Duration
	CleanupInterval time.Duration
}

// ContentConfig - удалённый сервис страниц (pages/exists)
type ContentConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RateLimit      float64
	Burst          int
}

type EnrichmentConfig struct {
	DefaultRadiusMiles float64
	DefaultMaxResults  int
	Concurrency        int
	LookupTimeout      time.Duration
	RequestTimeout     time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int
	ClaimIdle         time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			AllowOrigins: v.GetString("API_ALLOW_ORIGINS"),
		},
		Dataset: DatasetConfig{
			Source:        strings.ToLower(v.GetString("DATASET_SOURCE")),
			PlacesPath:    v.GetString("DATASET_PLACES_PATH"),
			LocationsPath: v.GetString("DATASET_LOCATIONS_PATH"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend:         strings.ToLower(v.GetString("CACHE_BACKEND")),
			PageTTL:         time.Duration(v.GetInt("PAGE_CACHE_TTL")) * time.Second,
			CleanupInterval: time.Duration(v.GetInt("PAGE_CACHE_CLEANUP_INTERVAL")) * time.Second,
		},
		Content: ContentConfig{
			BaseURL:        strings.TrimRight(v.GetString("CONTENT_BASE_URL"), "/"),
			RequestTimeout: time.Duration(v.GetInt("CONTENT_REQUEST_TIMEOUT_MS")) * time.Millisecond,
			RateLimit:      v.GetFloat64("CONTENT_RATE_LIMIT"),
			Burst:          v.GetInt("CONTENT_BURST"),
		},
		Enrichment: EnrichmentConfig{
			DefaultRadiusMiles: v.GetFloat64("ENRICHMENT_DEFAULT_RADIUS_MILES"),
			DefaultMaxResults:  v.GetInt("ENRICHMENT_DEFAULT_MAX_RESULTS"),
			Concurrency:        v.GetInt("ENRICHMENT_CONCURRENCY"),
			LookupTimeout:      time.Duration(v.GetInt("ENRICHMENT_LOOKUP_TIMEOUT_MS")) * time.Millisecond,
			RequestTimeout:     time.Duration(v.GetInt("ENRICHMENT_REQUEST_TIMEOUT_MS")) * time.Millisecond,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			ClaimIdle:         time.Duration(v.GetInt("WORKER_CLAIM_IDLE")) * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "http://localhost:5173,http://localhost:8081"
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = "file"
	}
	if c.Dataset.PlacesPath == "" {
		c.Dataset.PlacesPath = "data/search_index_light.json"
	}
	if c.Dataset.LocationsPath == "" {
		c.Dataset.LocationsPath = "data/locations.json"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.PageTTL == 0 {
		c.Cache.PageTTL = 10 * time.Minute
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = 20 * time.Minute
	}
	if c.Content.BaseURL == "" {
		c.Content.BaseURL = "http://localhost:8000"
	}
	if c.Content.RequestTimeout == 0 {
		c.Content.RequestTimeout = 5 * time.Second
	}
	if c.Content.RateLimit == 0 {
		c.Content.RateLimit = 20
	}
	if c.Content.Burst == 0 {
		c.Content.Burst = 5
	}
	if c.Enrichment.DefaultRadiusMiles == 0 {
		c.Enrichment.DefaultRadiusMiles = 5
	}
	if c.Enrichment.DefaultMaxResults == 0 {
		c.Enrichment.DefaultMaxResults = 5
	}
	if c.Enrichment.Concurrency == 0 {
		c.Enrichment.Concurrency = 1
	}
	if c.Enrichment.LookupTimeout == 0 {
		c.Enrichment.LookupTimeout = 3 * time.Second
	}
	if c.Enrichment.RequestTimeout == 0 {
		c.Enrichment.RequestTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "nearby-warmup-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 2000 * time.Millisecond
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Worker.ClaimIdle == 0 {
		c.Worker.ClaimIdle = 60 * time.Second
	}
}

func (c *Config) validate() error {
	switch c.Dataset.Source {
	case "file", "postgres":
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("cache backend redis requires REDIS_ENABLED=true")
	}
	if c.Enrichment.Concurrency < 1 {
		return fmt.Errorf("enrichment concurrency must be >= 1, got %d", c.Enrichment.Concurrency)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
