package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Orders  OrdersConfig
	Notice  NoticeConfig
	Session SessionConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Driver == StorageDriverSQL {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Driver == StorageDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODCART_APP_ENV" default:"dev"`
	Port         string `envconfig:"FOODCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FOODCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the backend that plays the role of the persisted store.
type StorageConfig struct {
	Driver    string `envconfig:"FOODCART_STORAGE_DRIVER" default:"memory"`
	Namespace string `envconfig:"FOODCART_STORAGE_NAMESPACE" default:"fc"`
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if s.Driver == "" {
		s.Driver = StorageDriverMemory
	}
	switch s.Driver {
	case StorageDriverMemory, StorageDriverRedis, StorageDriverSQL:
		return nil
	}
	return fmt.Errorf("unsupported storage driver %q", s.Driver)
}

type DBConfig struct {
	DSN    string `envconfig:"FOODCART_DB_DSN"`
	Driver string `envconfig:"FOODCART_DB_DRIVER" default:"sqlite"`

	Host     string `envconfig:"FOODCART_DB_HOST"`
	Port     int    `envconfig:"FOODCART_DB_PORT" default:"5432"`
	User     string `envconfig:"FOODCART_DB_USER"`
	Password string `envconfig:"FOODCART_DB_PASSWORD"`
	Name     string `envconfig:"FOODCART_DB_NAME"`
	SSLMode  string `envconfig:"FOODCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODCART_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FOODCART_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FOODCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AutoMigrate     bool          `envconfig:"FOODCART_DB_AUTO_MIGRATE" default:"true"`
}

// IsSQLite reports whether the configured SQL driver is sqlite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODCART_REDIS_URL"`
	Address      string        `envconfig:"FOODCART_REDIS_ADDR"`
	Password     string        `envconfig:"FOODCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type OrdersConfig struct {
	// IDFormat is either "uuid" or "legacy" (last six digits of the epoch millis).
	IDFormat string `envconfig:"FOODCART_ORDER_ID_FORMAT" default:"uuid"`
	// DateLayout formats the order date the way an en-IN locale renders it.
	DateLayout string `envconfig:"FOODCART_ORDER_DATE_LAYOUT" default:"2/1/2006"`
	Timezone   string `envconfig:"FOODCART_ORDER_TIMEZONE" default:"Asia/Kolkata"`
}

// Location resolves the configured timezone, defaulting to UTC when unknown.
func (o OrdersConfig) Location() *time.Location {
	if o.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type NoticeConfig struct {
	TTL time.Duration `envconfig:"FOODCART_NOTICE_TTL" default:"3s"`
}

// SessionConfig bounds how long an unused page session stays in memory. Its
// persisted records are untouched by eviction.
type SessionConfig struct {
	IdleTTL time.Duration `envconfig:"FOODCART_SESSION_IDLE_TTL" default:"30m"`
}

type CatalogConfig struct {
	MenuPath string `envconfig:"FOODCART_MENU_PATH" default:"menu.yaml"`
}

// PreferPersistentStorage swaps the process-local memory driver for the SQL
// driver, defaulting to a sqlite file. Short-lived processes such as the CLI
// use it so their writes outlive the process.
func (c *Config) PreferPersistentStorage() (bool, error) {
	if c.Storage.Driver != StorageDriverMemory {
		return false, nil
	}
	c.Storage.Driver = StorageDriverSQL
	return true, c.DB.ensureDSN()
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() || strings.TrimSpace(db.Driver) == "" {
		db.Driver = DBDriverSQLite
		db.DSN = "foodcart.db"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range postgresDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
