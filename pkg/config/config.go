package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"rentroll-reconciliation/internal/constants"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string // development, staging, production

	// Matching knobs. Weights default to the production values in
	// internal/constants; only override all three together.
	MatchThreshold  float64
	AddressWeight   float64
	FloorDoorWeight float64
	SizeWeight      float64

	// Database performance settings
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime int // minutes
	DBConnMaxIdleTime int // minutes
	DBReadTimeout     time.Duration
	DBWriteTimeout    time.Duration

	// Logging
	LogLevel  string
	LogFormat string // "json" or "text"

	// Metrics
	MetricsEnabled bool
	MetricsPath    string
}

func Load() *Config {
	threshold, _ := strconv.ParseFloat(getEnv("MATCH_THRESHOLD", "0.7"), 64)
	addressWeight, floorDoorWeight, sizeWeight := loadWeights()

	dbMaxOpenConns, _ := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	dbMaxIdleConns, _ := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "10"))
	dbConnMaxLifetime, _ := strconv.Atoi(getEnv("DB_CONN_MAX_LIFETIME_MINUTES", "10"))
	dbConnMaxIdleTime, _ := strconv.Atoi(getEnv("DB_CONN_MAX_IDLE_TIME_MINUTES", "5"))
	dbReadTO, _ := time.ParseDuration(getEnv("DB_READ_TIMEOUT", "8s"))
	dbWriteTO, _ := time.ParseDuration(getEnv("DB_WRITE_TIMEOUT", "6s"))

	env := strings.ToLower(getEnv("ENV", "development"))
	metricsDefault := env == "development" || env == "staging"
	metricsEnabled, _ := strconv.ParseBool(getEnv("METRICS_ENABLED", strconv.FormatBool(metricsDefault)))

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Env:         env,

		MatchThreshold:  threshold,
		AddressWeight:   addressWeight,
		FloorDoorWeight: floorDoorWeight,
		SizeWeight:      sizeWeight,

		DBMaxOpenConns:    dbMaxOpenConns,
		DBMaxIdleConns:    dbMaxIdleConns,
		DBConnMaxLifetime: dbConnMaxLifetime,
		DBConnMaxIdleTime: dbConnMaxIdleTime,
		DBReadTimeout:     dbReadTO,
		DBWriteTimeout:    dbWriteTO,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: metricsEnabled,
		MetricsPath:    getEnv("METRICS_PATH", "/metrics"),
	}
}

// loadWeights reads the three score weights as a trio: if any fails to parse
// or they do not sum to 1.0, all three fall back to the production defaults.
// A partial override would silently skew every composite score.
func loadWeights() (address, floorDoor, size float64) {
	address, errA := strconv.ParseFloat(getEnv("ADDRESS_WEIGHT", "0.4"), 64)
	floorDoor, errF := strconv.ParseFloat(getEnv("FLOOR_DOOR_WEIGHT", "0.3"), 64)
	size, errS := strconv.ParseFloat(getEnv("SIZE_WEIGHT", "0.3"), 64)

	if errA != nil || errF != nil || errS != nil ||
		address <= 0 || floorDoor <= 0 || size <= 0 ||
		math.Abs(address+floorDoor+size-1.0) > 0.01 {
		return constants.AddressWeight, constants.FloorDoorWeight, constants.SizeWeight
	}
	return address, floorDoor, size
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
