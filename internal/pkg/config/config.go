package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Log    LogConfig
	Wheel  WheelConfig
	Bonus  BonusConfig
	State  StateConfig
	Redis  RedisConfig
	DB     DBConfig
	Mongo  MongoConfig
	Events EventsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Moscow"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

type WheelConfig struct {
	SpinCost             int           `envconfig:"SPIN_COST" default:"3"`
	RevealDelay          time.Duration `envconfig:"SPIN_REVEAL_DELAY" default:"3500ms"`
	RewardTTL            time.Duration `envconfig:"REWARD_TTL" default:"24h"`
	FallbackRewardID     int           `envconfig:"FALLBACK_REWARD_ID" default:"2"`
	CatalogPath          string        `envconfig:"CATALOG_PATH"`
	PromoCodePrefix      string        `envconfig:"PROMO_CODE_PREFIX" default:"PLAST"`
	PromoCodeLength      int           `envconfig:"PROMO_CODE_LENGTH" default:"6"`
	PromoCodeMaxAttempts int           `envconfig:"PROMO_CODE_MAX_ATTEMPTS" default:"5"`
	SweepInterval        time.Duration `envconfig:"SWEEP_INTERVAL" default:"1s"`
}

type BonusConfig struct {
	DailyAmount              int           `envconfig:"DAILY_BONUS" default:"10"`
	SubscriptionAmount       int           `envconfig:"SUBSCRIPTION_BONUS" default:"50"`
	SubscriptionConfirmDelay time.Duration `envconfig:"SUBSCRIPTION_CONFIRM_DELAY" default:"2s"`
	SubscriptionURL          string        `envconfig:"SUBSCRIPTION_URL" default:"https://t.me/levo_del"`
	TimeZone                 string        `envconfig:"BONUS_TIMEZONE" default:"Europe/Moscow"`
}

// Driver: memory | redis | postgres | mongo
type StateConfig struct {
	Driver            string        `envconfig:"STATE_DRIVER" default:"memory"`
	Namespace         string        `envconfig:"STATE_NAMESPACE" default:"default"`
	PersistMaxRetries int           `envconfig:"PERSIST_MAX_RETRIES" default:"3"`
	PersistRetryBase  time.Duration `envconfig:"PERSIST_RETRY_BASE" default:"100ms"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	PoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"10"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"prize_wheel"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Moscow"`
}

type MongoConfig struct {
	URI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database   string `envconfig:"MONGO_DATABASE" default:"prize_wheel"`
	Collection string `envconfig:"MONGO_COLLECTION" default:"promotion_state"`
}

// Driver: log | kafka
type EventsConfig struct {
	Driver       string   `envconfig:"EVENTS_DRIVER" default:"log"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"promotions.events"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *BonusConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BONUS_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Wheel: WheelConfig{
			SpinCost:             3,
			RevealDelay:          3500 * time.Millisecond,
			RewardTTL:            24 * time.Hour,
			FallbackRewardID:     2,
			PromoCodePrefix:      "PLAST",
			PromoCodeLength:      6,
			PromoCodeMaxAttempts: 5,
			SweepInterval:        time.Second,
		},
		Bonus: BonusConfig{
			DailyAmount:              10,
			SubscriptionAmount:       50,
			SubscriptionConfirmDelay: 2 * time.Second,
			SubscriptionURL:          "https://t.me/levo_del",
			TimeZone:                 "UTC",
		},
		State: StateConfig{
			Driver:            "memory",
			Namespace:         "test",
			PersistMaxRetries: 2,
			PersistRetryBase:  time.Millisecond,
		},
		Events: EventsConfig{
			Driver: "log",
		},
	}
}
