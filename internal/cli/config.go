package cli

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	ServerURL string        `env:"ROSTER_SERVER" envDefault:"http://localhost:8080"`
	Timeout   time.Duration `env:"ROSTER_TIMEOUT" envDefault:"30s"`
	Output    string        `env:"ROSTER_OUTPUT" envDefault:"text"`
}

// LoadConfig reads the CLI configuration from the environment
func LoadConfig() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
