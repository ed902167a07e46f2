package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"

	EmbeddingProviderGemini = "gemini"
	EmbeddingProviderHash   = "hash"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	JWT       JWTConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type StoreConfig struct {
	Backend       string
	DataDir       string
	MigrationsDir string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type EmbeddingConfig struct {
	Provider  string
	APIKey    string
	Model     string
	Dimension int
	Timeout   time.Duration
	RPS       float64
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)

	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("DATA_DIR", "data")

	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 24*time.Hour)

	v.SetDefault("EMBEDDING_PROVIDER", EmbeddingProviderGemini)
	v.SetDefault("EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("EMBEDDING_DIMENSION", 768)
	v.SetDefault("EMBEDDING_TIMEOUT", 20*time.Second)
	v.SetDefault("EMBEDDING_RPS", 0)

	v.SetDefault("JWT_EXPIRES_IN", 24*time.Hour)
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Store = StoreConfig{
		Backend:       strings.ToLower(opt("STORE_BACKEND")),
		DataDir:       opt("DATA_DIR"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              opt("DB_HOST"),
		DBPort:              opt("DB_PORT"),
		DBName:              opt("DB_NAME"),
		DBUser:              opt("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE"),
		ConnectTimeout:      v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:        v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:        v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime: v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime: v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.Embedding = EmbeddingConfig{
		Provider:  strings.ToLower(opt("EMBEDDING_PROVIDER")),
		APIKey:    opt("GEMINI_API_KEY"),
		Model:     opt("EMBEDDING_MODEL"),
		Dimension: v.GetInt("EMBEDDING_DIMENSION"),
		Timeout:   v.GetDuration("EMBEDDING_TIMEOUT"),
		RPS:       v.GetFloat64("EMBEDDING_RPS"),
	}

	cfg.JWT = JWTConfig{
		Secret:    opt("JWT_SECRET"),
		ExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
	}

	if cfg.Store.Backend == StoreBackendPostgres {
		for _, key := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER"} {
			req(key)
		}
	}
	if cfg.Embedding.Provider == EmbeddingProviderGemini {
		req("GEMINI_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendFile, StoreBackendPostgres:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Embedding.Provider {
	case EmbeddingProviderGemini, EmbeddingProviderHash:
	default:
		return fmt.Errorf("unsupported EMBEDDING_PROVIDER %q", c.Embedding.Provider)
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.Embedding.Dimension)
	}
	return nil
}

// AuthEnabled reports whether bearer tokens select the active user.
func (c Config) AuthEnabled() bool {
	return c.JWT.Secret != ""
}

// RedisEnabled reports whether a redis host was configured.
func (c Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// DSN renders the libpq style connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBSSLMode,
	)
}
