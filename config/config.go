package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Cache    CacheConfig    `yaml:"cache"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
	Mode    string `yaml:"mode"`
	Swagger bool   `yaml:"swagger"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	SSLMode            string `yaml:"ssl_mode"`
	MaxConns           int32  `yaml:"max_conns"`
	MinConns           int32  `yaml:"min_conns"`
	LockTimeoutSeconds int    `yaml:"lock_timeout_seconds"`
	AutoMigrate        bool   `yaml:"auto_migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) LockTimeout() time.Duration {
	return time.Duration(d.LockTimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	TicketEventsTopic string   `yaml:"ticket_events_topic"`
	GroupID           string   `yaml:"group_id"`
	PublishRetries    int      `yaml:"publish_retries"`
}

type CacheConfig struct {
	FlightsTTLSeconds int `yaml:"flights_ttl_seconds"`
}

func (c CacheConfig) FlightsTTL() time.Duration {
	return time.Duration(c.FlightsTTLSeconds) * time.Second
}

type BookingConfig struct {
	MinCounter         int `yaml:"min_counter"`
	MaxCounter         int `yaml:"max_counter"`
	MaxSaleSkewMinutes int `yaml:"max_sale_skew_minutes"`
}

func (b BookingConfig) MaxSaleSkew() time.Duration {
	return time.Duration(b.MaxSaleSkewMinutes) * time.Minute
}

type WorkerConfig struct {
	AuditSweepMinutes int `yaml:"audit_sweep_minutes"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"output_path"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

// Enabled reports whether bearer tokens are checked on protected routes.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references from the environment, decodes the YAML
// document and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.LockTimeoutSeconds == 0 {
		c.Database.LockTimeoutSeconds = 5
	}
	if c.Kafka.TicketEventsTopic == "" {
		c.Kafka.TicketEventsTopic = "ticket-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "airline-worker"
	}
	if c.Kafka.PublishRetries == 0 {
		c.Kafka.PublishRetries = 3
	}
	if c.Cache.FlightsTTLSeconds == 0 {
		c.Cache.FlightsTTLSeconds = 60
	}
	if c.Booking.MinCounter == 0 {
		c.Booking.MinCounter = 1
	}
	if c.Booking.MaxCounter == 0 {
		c.Booking.MaxCounter = 100
	}
	if c.Booking.MaxSaleSkewMinutes == 0 {
		c.Booking.MaxSaleSkewMinutes = 24 * 60
	}
	if c.Worker.AuditSweepMinutes == 0 {
		c.Worker.AuditSweepMinutes = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Database.Host == "" || c.Database.Name == "" {
		return errors.New("database host and name are required")
	}
	if c.Database.MinConns < 0 || c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("invalid pool size: min=%d max=%d", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Database.LockTimeoutSeconds < 0 {
		return errors.New("lock_timeout_seconds must not be negative")
	}
	if c.Worker.AuditSweepMinutes < 0 {
		return errors.New("audit_sweep_minutes must not be negative")
	}
	if c.Kafka.PublishRetries < 0 {
		return errors.New("publish_retries must not be negative")
	}
	if c.Booking.MinCounter < 1 || c.Booking.MaxCounter < c.Booking.MinCounter {
		return fmt.Errorf("invalid counter range: %d..%d", c.Booking.MinCounter, c.Booking.MaxCounter)
	}
	return nil
}
