package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Log         LogConfig
	Geocoder    GeocoderConfig
	Tiles       TilesConfig
	Geolocation GeolocationConfig
	Worker      WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
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
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// GeocoderConfig - параметры внешнего сервиса геокодирования
type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout int // seconds
}

// TilesConfig - XYZ-шаблон тайлового сервиса и обязательная атрибуция
type TilesConfig struct {
	URLTemplate string
	Attribution string
	MinZoom     int
	MaxZoom     int
}

// GeolocationConfig - параметры запроса позиции устройства
type GeolocationConfig struct {
	HighAccuracy   bool
	RequestTimeout time.Duration
	MaxFixAge      time.Duration
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	BatchSize     int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			RequestTimeout: viper.GetInt("GEOCODER_REQUEST_TIMEOUT"),
		},
		Tiles: TilesConfig{
			URLTemplate: viper.GetString("TILES_URL_TEMPLATE"),
			Attribution: viper.GetString("TILES_ATTRIBUTION"),
			MinZoom:     viper.GetInt("TILES_MIN_ZOOM"),
			MaxZoom:     viper.GetInt("TILES_MAX_ZOOM"),
		},
		Geolocation: GeolocationConfig{
			HighAccuracy:   viper.GetBool("GEO_HIGH_ACCURACY"),
			RequestTimeout: time.Duration(viper.GetInt("GEO_REQUEST_TIMEOUT_MS")) * time.Millisecond,
			MaxFixAge:      time.Duration(viper.GetInt("GEO_MAX_FIX_AGE_MS")) * time.Millisecond,
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:     viper.GetInt("WORKER_BATCH_SIZE"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "restaurant-discovery/1.0"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10
	}
	if cfg.Tiles.URLTemplate == "" {
		cfg.Tiles.URLTemplate = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	}
	if cfg.Tiles.Attribution == "" {
		cfg.Tiles.Attribution = "© OpenStreetMap contributors"
	}
	if cfg.Tiles.MaxZoom == 0 {
		cfg.Tiles.MaxZoom = 19
	}
	if !viper.IsSet("GEO_HIGH_ACCURACY") {
		cfg.Geolocation.HighAccuracy = true
	}
	if cfg.Geolocation.RequestTimeout == 0 {
		cfg.Geolocation.RequestTimeout = 10 * time.Second
	}
	if cfg.Geolocation.MaxFixAge == 0 {
		cfg.Geolocation.MaxFixAge = 5 * time.Minute
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "listing-coords-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 20
	}

	return cfg, nil
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

// PositionOptions собирает параметры запроса позиции из конфигурации
func (c *Config) PositionOptions() (highAccuracy bool, timeout, maxAge time.Duration) {
	return c.Geolocation.HighAccuracy, c.Geolocation.RequestTimeout, c.Geolocation.MaxFixAge
}
