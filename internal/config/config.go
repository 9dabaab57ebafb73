package config

import (
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/ticoencargo/cartera/pkg/logger"
)

const ConfigTagName = "env"
const ConfigDefaultTagName = "default"

var config *Config

// Config holds config envs and values used across the binaries. Only
// this struct must be used to hold configuration values, no direct
// access to env, ini or any other config source should be made.
type Config struct {
	AppEnv              string `env:"APP_ENV" default:"dev"`
	AppName             string `env:"APP_NAME" default:"tico_encargo"`
	AppDebug            bool   `env:"APP_DEBUG" default:"1"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI"`

	HttpListenAddr         string `env:"HTTP_LISTEN_ADDR" default:":8080"`
	HttpServerReadTimeout  int    `env:"HTTP_SERVER_READ_TIMEOUT"`
	HttpServerWriteTimeout int    `env:"HTTP_SERVER_WRITE_TIMEOUT"`

	// Remote data store. The placeholders are deliberately
	// non-functional: without real settings every load call fails and
	// the loader degrades to empty collections.
	StoreURL    string `env:"STORE_URL" default:"https://placeholder.store.invalid"`
	StoreAPIKey string `env:"STORE_API_KEY" default:"placeholder-key"`

	// Dev store server
	StoreListenAddr  string `env:"STORE_LISTEN_ADDR" default:":54321"`
	StoreDBDriver    string `env:"STORE_DB_DRIVER" default:"postgres"`
	StoreDBPath      string `env:"STORE_DB_PATH" default:"cartera.db"`
	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDatabase string `env:"POSTGRES_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	AuditStreamName   string `env:"AUDIT_STREAM_NAME" default:"cartera:audit"`
	AuditStreamMaxLen int64  `env:"AUDIT_STREAM_MAX_LEN" default:"10000"`

	PromNamespace string `env:"PROM_NAMESPACE"`

	LogLevel []string `env:"LOG_LEVEL"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)

	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}
