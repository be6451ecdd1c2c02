package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Auth    AuthConfig
	Fees    FeesConfig
	Jobs    JobsConfig
	Notify  NotifyConfig
	Devices DevicesConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	GinMode         string        `envconfig:"GIN_MODE" default:"debug"`
}

type DBConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"app"`
	Password        string        `envconfig:"DB_PASSWORD" default:"password"`
	Name            string        `envconfig:"DB_NAME" default:"booking"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

func (c DBConfig) BuildDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET" default:"local-dev-secret"`
}

// FeesConfig is the platform fee policy applied on top of the space price.
// Percent is applied to daily total plus cleaning fee, FixedFeeCents is added
// once per reservation.
type FeesConfig struct {
	Percent       float64 `envconfig:"FEES_PLATFORM_PERCENT" default:"5"`
	FixedFeeCents int64   `envconfig:"FEES_FIXED_CENTS" default:"150"`
}

type JobsConfig struct {
	ExpirySweepInterval time.Duration `envconfig:"JOBS_EXPIRY_SWEEP_INTERVAL" default:"60s"`
	DailyHourUTC        int           `envconfig:"JOBS_DAILY_HOUR_UTC" default:"6"`
}

type NotifyConfig struct {
	AMQPURL   string `envconfig:"NOTIFY_AMQP_URL" default:""`
	Exchange  string `envconfig:"NOTIFY_EXCHANGE" default:"booking.notifications"`
	QueueName string `envconfig:"NOTIFY_QUEUE" default:"reservation-events"`
}

type DevicesConfig struct {
	GatewayURL string        `envconfig:"DEVICES_GATEWAY_URL" default:""`
	APIKey     string        `envconfig:"DEVICES_API_KEY" default:""`
	Timeout    time.Duration `envconfig:"DEVICES_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// NewTestConfig returns a config suitable for unit tests. No external
// endpoints are set so gateways fall back to their in-process stubs.
func NewTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", ShutdownTimeout: time.Second, GinMode: "test"},
		DB: DBConfig{
			Host: "localhost", Port: "5432", User: "app", Password: "password",
			Name: "booking_test", SSLMode: "disable",
			MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: time.Minute,
		},
		CORS: CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Log:  LogConfig{Level: "debug"},
		Auth: AuthConfig{JWTSecret: "test-secret"},
		Fees: FeesConfig{Percent: 5, FixedFeeCents: 150},
		Jobs: JobsConfig{ExpirySweepInterval: time.Minute, DailyHourUTC: 6},
	}
}
