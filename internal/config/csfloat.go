package config

import "time"

// CSFloat is the float marketplace used as the pricing source.
type CSFloat struct {
	BaseURL         string        `env:"FLOAT_BASE_URL" envDefault:"https://csfloat.com"`
	APIKey          string        `env:"FLOAT_API_KEY,required" json:"-"`
	Divider         float64       `env:"DIVIDER,required" validate:"ne=0"`
	RefreshInterval time.Duration `env:"PRICE_REFRESH_INTERVAL" envDefault:"1h"`
	BatchSize       int           `env:"PRICE_REFRESH_BATCH" envDefault:"20"`
	BatchPause      time.Duration `env:"PRICE_REFRESH_PAUSE" envDefault:"61s"`
}
