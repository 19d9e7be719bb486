package config

import "time"

// Ops groups the operator-facing listeners.
type Ops struct {
	APIListenAddress     string        `env:"API_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ShutdownTimeout      time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFieldMaxLen       int           `env:"LOG_FIELD_MAX_LEN" envDefault:"2048"`
}
