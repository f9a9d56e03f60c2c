package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	MoveDelay time.Duration `yaml:"move-delay" env:"MOVE_DELAY" env-default:"10ms"`
	Room      string        `yaml:"room" env:"ROOM" env-default:"main"`
	HTTP      HTTP          `yaml:"http"`
	Stats     Stats         `yaml:"stats"`
	Redis     Redis         `yaml:"redis"`
}

type HTTP struct {
	ReadTimeout  time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write-timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle-timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"30s"`
}

// Stats controls the game result ledger. Results go to redis only when enabled.
type Stats struct {
	Enabled     bool `yaml:"enabled" env:"STATS_ENABLED" env-default:"false"`
	RecentLimit int  `yaml:"recent-limit" env:"STATS_RECENT_LIMIT" env-default:"20"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the yml file at path and applies env overrides on top of it.
// A missing file is not an error: defaults and env are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
