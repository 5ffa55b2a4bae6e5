// Package config loads and persists lirabot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/subosito/gotenv"
)

// Config holds all lirabot configuration.
type Config struct {
	General GeneralConfig    `toml:"general"`
	API     APIConfig        `toml:"api"`
	Session SessionConfig    `toml:"session"`
	Catalog CatalogConfig    `toml:"catalog"`
	Pricing PricingOverrides `toml:"pricing"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultBackend string `toml:"default_backend"`
	MaxTokens      int    `toml:"max_tokens"`
	LogDir         string `toml:"log_dir,omitempty"`
	Theme          string `toml:"theme,omitempty"`
}

// APIConfig holds per-backend credentials. Presence of a key gates backend
// availability; validity is the vendor's problem.
type APIConfig struct {
	GroqAPIKey   string `toml:"groq_api_key,omitempty"`
	OpenAIAPIKey string `toml:"openai_api_key,omitempty"`
	GeminiAPIKey string `toml:"gemini_api_key,omitempty"`
}

// SessionConfig holds session bounds and lifecycle settings.
type SessionConfig struct {
	HistoryExchanges int `toml:"history_exchanges"`
	TTLHours         int `toml:"ttl_hours"`
}

// TTL returns the session expiry window as a duration.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// CatalogConfig holds product catalog source settings.
type CatalogConfig struct {
	URL       string `toml:"url,omitempty"`
	APIKey    string `toml:"api_key,omitempty"`
	LocalPath string `toml:"local_path,omitempty"`
}

// PricingOverrides allows user-defined pricing for specific backends.
type PricingOverrides struct {
	Overrides map[string]BackendPricingOverride `toml:"overrides,omitempty"`
}

// BackendPricingOverride holds per-backend rate overrides.
type BackendPricingOverride struct {
	InputPerMTok  float64 `toml:"input_per_mtok"`
	OutputPerMTok float64 `toml:"output_per_mtok"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultBackend: "groq",
			// allow room to avoid mid-sentence cutoffs
			MaxTokens: 220,
			LogDir:    "logs",
			Theme:     "flexoki-dark",
		},
		Session: SessionConfig{
			HistoryExchanges: 3,
			TTLHours:         24,
		},
		Catalog: CatalogConfig{
			LocalPath: "products.json",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lirabot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lirabot")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is applied to the environment first,
// so key lookups via the env accessors see it.
func Load() (Config, error) {
	_ = gotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// APIKey returns the credential for a backend, env var first then config.
func (c Config) APIKey(backend string) string {
	switch backend {
	case "groq":
		return firstNonEmpty(os.Getenv("GROQ_API_KEY"), c.API.GroqAPIKey)
	case "openai":
		return firstNonEmpty(os.Getenv("OPENAI_API_KEY"), c.API.OpenAIAPIKey)
	case "gemini":
		return firstNonEmpty(os.Getenv("GEMINI_API_KEY"), c.API.GeminiAPIKey)
	}
	return ""
}

// CatalogAPIKey returns the catalog credential, env var first then config.
func (c Config) CatalogAPIKey() string {
	return firstNonEmpty(
		os.Getenv("CATALOG_SERVICE_KEY"),
		os.Getenv("CATALOG_API_KEY"),
		c.Catalog.APIKey,
	)
}

// CatalogURL returns the catalog endpoint, env var first then config.
func (c Config) CatalogURL() string {
	return firstNonEmpty(os.Getenv("CATALOG_URL"), c.Catalog.URL)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
