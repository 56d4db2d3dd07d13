// Package config resolves E2E suite configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// TestConfig holds all configuration for E2E tests.
type TestConfig struct {
	// BaseURL is the forge instance under test. Empty means the suite
	// boots its own embedded fixture forge.
	BaseURL     string
	Timeout     time.Duration
	Headless    bool
	SlowMo      int
	Screenshots bool
	Videos      bool
	CI          bool
}

var loadOnce sync.Once

// GetConfig returns the test configuration from environment variables.
// A .env file in the working directory is loaded once; already-set
// environment variables take precedence over .env entries.
func GetConfig() *TestConfig {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[e2e-config] skipping .env: %v", err)
		}
	})

	slowMo := 0
	if v := os.Getenv("SLOW_MO"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("[e2e-config] invalid SLOW_MO %q, ignoring", v)
		} else {
			slowMo = parsed
		}
	}

	timeout := 30 * time.Second
	if v := os.Getenv("E2E_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	return &TestConfig{
		BaseURL:     os.Getenv("BASE_URL"),
		Timeout:     timeout,
		Headless:    os.Getenv("HEADLESS") != "false",
		SlowMo:      slowMo,
		Screenshots: os.Getenv("SCREENSHOTS") != "false",
		Videos:      os.Getenv("VIDEOS") == "true",
		CI:          os.Getenv("CI") != "",
	}
}
