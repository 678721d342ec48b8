package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and optionally a file).
type Config struct {
	App     AppConfig
	DB      DBConfig
	Elastic ElasticConfig
	Redis   RedisConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig MySQL connection settings.
// If DatabaseURL is non-empty it is used as the full DSN (user:pass@tcp(host:port)/dbname?params).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
}

// DSN builds the go-sql-driver/mysql connection string.
// parseTime is required so DATETIME columns scan into time.Time.
func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// ElasticConfig Elasticsearch connection settings.
type ElasticConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string // product index name
}

// RedisConfig Redis connection settings. Empty URL disables caching.
type RedisConfig struct {
	URL string // redis://[:password@]host:port/db
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret         string
	ExpMinutes     int // access token lifetime
	RefreshExpDays int // refresh token lifetime
	Issuer         string
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables (and optionally a file).
// Env vars win. Expected names: APP_ENV, DB_HOST, ELASTIC_ADDRESSES, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env or config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "catalog-search-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 3306),
			User:        getString(v, "DB_USER", "root"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalog"),
		},
		Elastic: ElasticConfig{
			Addresses: splitList(getString(v, "ELASTIC_ADDRESSES", "http://localhost:9200")),
			Username:  getString(v, "ELASTIC_USERNAME", ""),
			Password:  getString(v, "ELASTIC_PASSWORD", ""),
			Index:     getString(v, "ELASTIC_PRODUCT_INDEX", "products"),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		JWT: JWTConfig{
			Secret:         getString(v, "JWT_SECRET", ""),
			ExpMinutes:     getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			RefreshExpDays: getInt(v, "JWT_REFRESH_EXPIRATION_DAYS", 7),
			Issuer:         getString(v, "JWT_ISSUER", "catalog-search-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
