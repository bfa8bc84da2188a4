package config

import (
	"os"
	"strconv"
)

// Config carries runtime defaults sourced from the environment.
// Command line flags take precedence over every field.
type Config struct {
	Environment string
	LogLevel    string

	Scan struct {
		MinDays       int
		MaxDays       int
		YearsBack     int
		LookAheadDays int
		NearUnanimous bool
	}

	Backtest struct {
		InitialCapital float64
		TradeStake     float64
	}

	Data struct {
		Source        string // yahoo, csv, bybit
		DataRoot      string
		BybitCategory string
	}

	Monitoring struct {
		MetricsPort int
	}

	Firestore struct {
		ProjectID  string
		Collection string
	}
}

// Load reads the configuration from the environment, applying defaults
// for anything unset.
func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	cfg.Scan.MinDays = getEnvInt("SCAN_MIN_DAYS", 20)
	cfg.Scan.MaxDays = getEnvInt("SCAN_MAX_DAYS", 60)
	cfg.Scan.YearsBack = getEnvInt("SCAN_YEARS_BACK", 10)
	cfg.Scan.LookAheadDays = getEnvInt("SCAN_LOOK_AHEAD_DAYS", 365)
	cfg.Scan.NearUnanimous = getEnvBool("SCAN_NEAR_UNANIMOUS", false)

	cfg.Backtest.InitialCapital = getEnvFloat("BACKTEST_INITIAL_CAPITAL", 25000)
	cfg.Backtest.TradeStake = getEnvFloat("BACKTEST_TRADE_STAKE", 1000)

	cfg.Data.Source = getEnv("DATA_SOURCE", "yahoo")
	cfg.Data.DataRoot = getEnv("DATA_ROOT", "data")
	cfg.Data.BybitCategory = getEnv("BYBIT_CATEGORY", "spot")

	cfg.Monitoring.MetricsPort = getEnvInt("METRICS_PORT", 0)

	cfg.Firestore.ProjectID = getEnv("FIRESTORE_PROJECT_ID", "")
	cfg.Firestore.Collection = getEnv("FIRESTORE_COLLECTION", "stock_patterns")

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
