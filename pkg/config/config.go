package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Twilio       TwilioConfig
	Dispatch     DispatchConfig
	Webhooks     WebhookConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OBITFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"OBITFLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"OBITFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OBITFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"OBITFLOW_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"OBITFLOW_DB_DSN"`
	Driver string `envconfig:"OBITFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"OBITFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"OBITFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"OBITFLOW_DB_USER"`
	LegacyPassword string `envconfig:"OBITFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"OBITFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"OBITFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OBITFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OBITFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OBITFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OBITFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OBITFLOW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OBITFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"OBITFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"OBITFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OBITFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OBITFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OBITFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OBITFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OBITFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig describes the tokens minted by the hosted auth provider. The API
// only verifies them; issuance lives with the provider.
type JWTConfig struct {
	Secret string `envconfig:"OBITFLOW_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"OBITFLOW_JWT_ISSUER" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OBITFLOW_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"OBITFLOW_GCP_PROJECT_ID"`
	ApplicationCredentials string `envconfig:"OBITFLOW_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	CaseEventsTopic        string `envconfig:"OBITFLOW_PUBSUB_CASE_EVENTS_TOPIC" default:"of-case-events"`
	CaseEventsSubscription string `envconfig:"OBITFLOW_PUBSUB_CASE_EVENTS_SUBSCRIPTION"`
}

type TwilioConfig struct {
	AccountSID string `envconfig:"OBITFLOW_TWILIO_ACCOUNT_SID"`
	AuthToken  string `envconfig:"OBITFLOW_TWILIO_AUTH_TOKEN"`
	FromNumber string `envconfig:"OBITFLOW_TWILIO_FROM_NUMBER"`
}

// DispatchConfig bounds the SMS fan-out. The upstream system had no timeout
// at all; the 10s default here is an added safety margin so a hung provider
// call cannot stall the settle-all barrier.
type DispatchConfig struct {
	SendTimeout   time.Duration `envconfig:"OBITFLOW_DISPATCH_SEND_TIMEOUT" default:"10s"`
	RetryAttempts int           `envconfig:"OBITFLOW_DISPATCH_RETRY_ATTEMPTS" default:"3"`
	RetryBase     time.Duration `envconfig:"OBITFLOW_DISPATCH_RETRY_BASE" default:"250ms"`
}

type WebhookConfig struct {
	SignatureEventTTL time.Duration `envconfig:"OBITFLOW_WEBHOOK_SIGNATURE_EVENT_TTL" default:"72h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
