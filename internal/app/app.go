package app

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"

	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	EventsNone     = "none"
	EventsKafka    = "kafka"
	EventsRabbitMQ = "rabbitmq"
)

type Config struct {
	ServerPort string        `yaml:"srv_port" env:"SRV_PORT"`
	MaxConns   int           `yaml:"max_conns" env:"MAX_CONNS"`
	APIURL     string        `yaml:"api_url" env:"API_URL"`
	APITimeout time.Duration `yaml:"api_timeout" env:"API_TIMEOUT"`

	CfgStorage ConfigStorage `yaml:"storage" envPrefix:"STORAGE_"`
	CfgEvents  ConfigEvents  `yaml:"events" envPrefix:"EVENTS_"`
	CfgES      ConfigES      `yaml:"es" envPrefix:"ES_"`

	IndexerInterval time.Duration `yaml:"indexer_interval" env:"INDEXER_INTERVAL"`
}

// ConfigStorage где хранится корзина и последний заказ
type ConfigStorage struct {
	Backend string        `yaml:"backend" env:"BACKEND"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`

	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" env:"REDIS_PREFIX"`

	CfgDB        ConfigDB `yaml:"db" envPrefix:"DB_"`
	MaxOpenConns int      `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
}

type ConfigDB struct {
	Login    string `yaml:"login" env:"LOGIN"`
	Password string `yaml:"password" env:"PASSWORD"`
	Port     uint   `yaml:"port" env:"PORT"`
	Database string `yaml:"database" env:"DATABASE"`
	Host     string `yaml:"host" env:"HOST"`
}

// DSN строка подключения для lib/pq
func (c ConfigDB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Login, c.Password, c.Database,
	)
}

type ConfigEvents struct {
	Backend      string   `yaml:"backend" env:"BACKEND"`
	KafkaBrokers []string `yaml:"kafka_brokers" env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `yaml:"kafka_topic" env:"KAFKA_TOPIC"`
	RabbitURL    string   `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	RabbitQueue  string   `yaml:"rabbitmq_queue" env:"RABBITMQ_QUEUE"`
	QueueSize    int      `yaml:"queue_size" env:"QUEUE_SIZE"`
}

type ConfigES struct {
	Addresses []string `yaml:"addresses" env:"ADDRESSES" envSeparator:","`
	Index     string   `yaml:"index" env:"INDEX"`
}

func defaultConfig() Config {
	return Config{
		ServerPort: ":8080",
		MaxConns:   512,
		APIURL:     "http://localhost:3000",
		APITimeout: 10 * time.Second,
		CfgStorage: ConfigStorage{
			Backend:      StorageSQLite,
			Timeout:      3 * time.Second,
			SQLitePath:   "data/storefront.db",
			RedisAddr:    "redis:6379",
			RedisPrefix:  "storefront:",
			MaxOpenConns: 10,
		},
		CfgEvents: ConfigEvents{
			Backend:     EventsNone,
			KafkaTopic:  "cart-events",
			RabbitQueue: "cart-events",
			QueueSize:   256,
		},
		CfgES: ConfigES{
			Index: "products",
		},
		IndexerInterval: 10 * time.Minute,
	}
}

// NewConfig читает yaml и накладывает переменные окружения поверх него.
// Отсутствующий файл не ошибка: остаются значения по умолчанию.
func NewConfig(configPath string) (*Config, error) {
	c := defaultConfig()

	cfg, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(cfg, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// ConfigPath путь к конфигу из CONFIG_PATH или по умолчанию
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultConfigPath
}

func (c *Config) Validate() error {
	switch c.CfgStorage.Backend {
	case StorageSQLite, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.CfgStorage.Backend)
	}

	switch c.CfgEvents.Backend {
	case EventsNone, "":
	case EventsKafka:
		if len(c.CfgEvents.KafkaBrokers) == 0 {
			return fmt.Errorf("kafka events backend requires brokers")
		}
	case EventsRabbitMQ:
		if c.CfgEvents.RabbitURL == "" {
			return fmt.Errorf("rabbitmq events backend requires url")
		}
	default:
		return fmt.Errorf("unknown events backend %q", c.CfgEvents.Backend)
	}

	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}

	return nil
}
