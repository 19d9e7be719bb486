package config

import "time"

// Empire is the trading platform the bot sells through.
type Empire struct {
	BaseURL      string        `env:"EMPIRE_BASE_URL" envDefault:"https://csgoempire.io/api/v2"`
	BearerToken  string        `env:"EMPIRE_BEARER_AUTH,required" json:"-"`
	PollInterval time.Duration `env:"EMPIRE_POLL_INTERVAL" envDefault:"60s"`
	PollJitter   time.Duration `env:"EMPIRE_POLL_JITTER" envDefault:"120s"`
}
