package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"cs_market/internal/domain"
	"cs_market/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

type Config struct {
	Empire   Empire
	Steam    Steam
	CSFloat  CSFloat
	Postgres Postgres
	Redis    Redis
	Bot      Bot
	Ops      Ops
}

type Bot struct {
	Token   string `env:"BOT_TOKEN,required" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID,required"`
	AdminID int64  `env:"BOT_ADMIN_ID,required"`
}

// Load reads .env when present, parses the environment and validates the
// result. Configuration faults are fatal: the caller exits.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, domain.WrapError(err, errcodes.ConfigurationError, "env.Parse")
	}

	if err := validate.Struct(config); err != nil {
		return Config{}, domain.WrapError(err, errcodes.ConfigurationError, "invalid configuration")
	}

	return config, nil
}
