package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultDataDir is where snapshots and change markers live unless
// overridden.
const DefaultDataDir = "~/.local/share/orwatch"

// DefaultIntervalMinutes is the watch-mode polling interval.
const DefaultIntervalMinutes = 60

// Config carries the runtime configuration for a run.
type Config struct {
	ScheduleURL     string
	DataDir         string
	IntervalMinutes int

	// Passphrase enables encryption of archived schedule files when set.
	Passphrase string

	PushoverAppToken string
	PushoverUserKey  string
	PushoverDevice   string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ScheduleURL:     getEnv("ORWATCH_URL", ""),
		DataDir:         getEnv("ORWATCH_DATA_DIR", DefaultDataDir),
		IntervalMinutes: getEnvInt("ORWATCH_INTERVAL_MIN", DefaultIntervalMinutes),
		Passphrase:      getEnv("ORWATCH_PASSPHRASE", ""),

		PushoverAppToken: getEnv("PUSHOVER_APP_TOKEN", ""),
		PushoverUserKey:  getEnv("PUSHOVER_USER_KEY", ""),
		PushoverDevice:   getEnv("PUSHOVER_DEVICE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
