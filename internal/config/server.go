package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BoardPairs is the number of card pairs per room; the deck palette
	// bounds it at room-creation time.
	BoardPairs    int `env:"BOARD_PAIRS" envDefault:"12"`
	RevealDelayMS int `env:"REVEAL_DELAY_MS" envDefault:"1000"`
	MatchPoints   int `env:"MATCH_POINTS" envDefault:"100"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// RevealDelay is how long a resolved pair stays visible before the unflip
// and turn switch.
func (c ServerConfig) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}
