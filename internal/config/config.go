package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type IdentityConfig struct {
	Env        string `yaml:"env" env-default:"local"`
	Tokens     `yaml:"tokens"`
	RabbitMQ   `yaml:"rabbitmq"`
	Postgres   `yaml:"postgres"`
	HTTPServer `yaml:"http_server"`
}

type LinksConfig struct {
	Env        string `yaml:"env" env-default:"local"`
	Tokens     `yaml:"tokens"`
	Scraper    `yaml:"scraper"`
	Postgres   `yaml:"postgres"`
	HTTPServer `yaml:"http_server"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host" env-default:"postgres"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"password" env-required:"true"`
	DBName   string `yaml:"dbname" env-required:"true"`
	SSLMode  string `yaml:"sslmode" env-default:"disabled"`
}

// Tokens must be configured identically in both services: the bearer
// handshake relies on a shared secret and algorithm, never on a network call.
type Tokens struct {
	Secret         string        `yaml:"secret" env:"TOKEN_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env-default:"30m"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env-required:"true"`
	QueueName string `yaml:"queue_name" env-required:"true"`
}

type Scraper struct {
	Timeout   time.Duration `yaml:"timeout" env-default:"5s"`
	UserAgent string        `yaml:"user_agent" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
}

func MustLoadIdentity(configPath string) *IdentityConfig {
	var cfg IdentityConfig

	mustLoad(configPath, &cfg)

	return &cfg
}

func MustLoadLinks(configPath string) *LinksConfig {
	var cfg LinksConfig

	mustLoad(configPath, &cfg)

	return &cfg
}

func mustLoad(configPath string, cfg interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("Config file does not exist" + configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		panic("Failed to read config" + err.Error())
	}
}
