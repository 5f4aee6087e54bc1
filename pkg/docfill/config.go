package docfill

import (
	"os"
	"strings"
	"sync"
)

// Config contains the engine's configuration knobs.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error, off).
	LogLevel string
	// CleanEmptyFragments removes runs fully consumed by a replacement
	// instead of keeping them in place with empty text. Either form renders
	// identically; removal yields slightly smaller documents.
	CleanEmptyFragments bool
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "info",
		CleanEmptyFragments: false,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("AGREEMDIR_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("AGREEMDIR_CLEAN_EMPTY_FRAGMENTS"); val != "" {
		config.CleanEmptyFragments = parseBool(val)
	}

	return config
}

func parseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetGlobalConfig returns the global configuration, initializing it from
// the environment on first use.
func GetGlobalConfig() *Config {
	configOnce.Do(func() {
		globalConfigMutex.Lock()
		globalConfig = ConfigFromEnvironment()
		globalConfigMutex.Unlock()
	})

	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()
	return globalConfig
}

// SetGlobalConfig replaces the global configuration. Documents opened after
// the call pick up the new settings.
func SetGlobalConfig(config *Config) {
	if config == nil {
		config = DefaultConfig()
	}

	configOnce.Do(func() {})

	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	initGlobalLogger()
	globalLogger.SetLevel(parseLogLevel(config.LogLevel))
}
