package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SymbolConfig seeds one tracked instrument for the market simulator.
type SymbolConfig struct {
	Symbol string  `yaml:"symbol"`
	Name   string  `yaml:"name"`
	Price  float64 `yaml:"price"`
}

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Trading struct {
		FeeRate      float64 `yaml:"fee_rate"`
		XPPerTrade   int64   `yaml:"xp_per_trade"`
		StartingCash float64 `yaml:"starting_cash"`
	} `yaml:"trading"`
	Market struct {
		TickMs  int            `yaml:"tick_ms"`
		AlertMs int            `yaml:"alert_ms"`
		Symbols []SymbolConfig `yaml:"symbols"`
	} `yaml:"market"`
	Assistant struct {
		Model string `yaml:"model"`
	} `yaml:"assistant"`

	// Environment-only settings, never read from the yaml file.
	JWTSecret    string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`
}

// Load reads the yaml config at path and applies environment overrides.
// A missing file is fine; defaults keep the server bootable with no config
// at all. A .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Logging.Level = "info"
	cfg.Trading.FeeRate = 0.001
	cfg.Trading.XPPerTrade = 50
	cfg.Trading.StartingCash = 50000
	cfg.Market.TickMs = 3000
	cfg.Market.AlertMs = 15000
	cfg.Market.Symbols = []SymbolConfig{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 173.50},
		{Symbol: "TSLA", Name: "Tesla, Inc.", Price: 205.60},
		{Symbol: "NVDA", Name: "NVIDIA Corp", Price: 875.20},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 142.10},
		{Symbol: "AMZN", Name: "Amazon.com", Price: 178.15},
	}
	cfg.Assistant.Model = "gemini-2.5-flash"
	cfg.JWTSecret = "tradepulse-dev-secret-change-in-production"
	return cfg
}
