// Package config reads the process configuration from the
// environment. The store location always resolves (it has a default
// and failing to open it later is fatal); Twilio and Gemini
// credentials are optional and their absence disables reminder
// delivery and the AI fallback respectively.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/HendryAvila/anota/internal/store"
	"github.com/HendryAvila/anota/internal/twilio"
)

// Config is the full process configuration, read once at startup and
// read-only afterwards.
type Config struct {
	Addr    string
	DataDir string

	Twilio  twilio.Config
	Gemini  GeminiConfig
	Persona string

	// DispatchInterval > 0 enables the in-process reminder ticker in
	// addition to the dispatch endpoint.
	DispatchInterval time.Duration
}

// GeminiConfig holds the generative-fallback credentials.
type GeminiConfig struct {
	APIKey string
}

// Enabled reports whether the AI fallback is configured.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// FromEnv builds the configuration from environment variables:
//
//	ANOTA_ADDR               listen address (default ":8080")
//	ANOTA_DATA_DIR           SQLite directory (default ~/.anota)
//	ANOTA_PERSONA            fallback persona text
//	ANOTA_DISPATCH_INTERVAL  e.g. "60s"; empty disables the ticker
//	TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM
//	GEMINI_API_KEY
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:    envOr("ANOTA_ADDR", ":8080"),
		DataDir: envOr("ANOTA_DATA_DIR", store.DefaultConfig().DataDir),
		Twilio: twilio.Config{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_FROM"),
		},
		Gemini:  GeminiConfig{APIKey: os.Getenv("GEMINI_API_KEY")},
		Persona: os.Getenv("ANOTA_PERSONA"),
	}

	if raw := os.Getenv("ANOTA_DISPATCH_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			return Config{}, fmt.Errorf("config: invalid ANOTA_DISPATCH_INTERVAL %q", raw)
		}
		cfg.DispatchInterval = interval
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
