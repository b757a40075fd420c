package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del viewer.
type Config struct {
	Viewer   ViewerConfig   `yaml:"viewer"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// ViewerConfig controla la estrategia de display.
type ViewerConfig struct {
	TradingPair string `yaml:"trading_pair"`
	Lines       int    `yaml:"lines"`
	TickSeconds int    `yaml:"tick_seconds"` // cadencia del reloj del host
}

// ExchangeConfig contiene los endpoints y credenciales del connector.
// Las credenciales solo vienen del entorno, nunca del YAML.
type ExchangeConfig struct {
	RESTBase  string `yaml:"rest_base"`
	WSBase    string `yaml:"ws_base"`
	Depth     int    `yaml:"depth"`
	APIKey    string `yaml:"-"`
	APISecret string `yaml:"-"`
}

// StorageConfig controla el recorder de muestras.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // vacío = recorder desactivado
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del entorno sobreescriben los del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// TickInterval devuelve la cadencia del reloj como time.Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Viewer.TickSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.Exchange.APIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		cfg.Exchange.APISecret = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Viewer.TradingPair == "" {
		cfg.Viewer.TradingPair = "BTC-USDT"
	}
	if cfg.Viewer.Lines <= 0 {
		cfg.Viewer.Lines = 10
	}
	if cfg.Viewer.TickSeconds <= 0 {
		cfg.Viewer.TickSeconds = 1
	}
	if cfg.Exchange.RESTBase == "" {
		cfg.Exchange.RESTBase = "https://api.binance.com"
	}
	if cfg.Exchange.WSBase == "" {
		cfg.Exchange.WSBase = "wss://stream.binance.com:9443"
	}
	if cfg.Exchange.Depth <= 0 {
		cfg.Exchange.Depth = 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
