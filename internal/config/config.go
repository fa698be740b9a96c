// Package config loads layered settings: built-in defaults, then
// ~/.portfolio/config.yaml, then PORTFOLIO_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/anmolrajas/portfolio/internal/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PORTFOLIO_"

// Storage backends, chat responders, contact transports.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	ResponderCanned = "canned"
	ResponderOpenAI = "openai"

	TransportOutbox = "outbox"
	TransportHTTP   = "http"
)

// StorageConfig selects where preferences are persisted.
type StorageConfig struct {
	Backend string `koanf:"backend" yaml:"backend"`
	Path    string `koanf:"path" yaml:"path"`
}

// ChatConfig selects the chat widget's reply source.
type ChatConfig struct {
	Responder    string `koanf:"responder" yaml:"responder"`
	Model        string `koanf:"model" yaml:"model"`
	APIKey       string `koanf:"api_key" yaml:"api_key,omitempty"`
	BaseURL      string `koanf:"base_url" yaml:"base_url,omitempty"`
	SystemPrompt string `koanf:"system_prompt" yaml:"system_prompt,omitempty"`
}

// ContactConfig selects how contact submissions are delivered.
type ContactConfig struct {
	Transport  string        `koanf:"transport" yaml:"transport"`
	Endpoint   string        `koanf:"endpoint" yaml:"endpoint,omitempty"`
	Timeout    time.Duration `koanf:"timeout" yaml:"timeout"`
	OwnerEmail string        `koanf:"owner_email" yaml:"owner_email,omitempty"`
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Desktop bool `koanf:"desktop" yaml:"desktop"`
}

// Config holds the application configuration.
type Config struct {
	Content       string              `koanf:"content" yaml:"content,omitempty"` // Portfolio YAML replacing the embedded copy
	Storage       StorageConfig       `koanf:"storage" yaml:"storage"`
	Chat          ChatConfig          `koanf:"chat" yaml:"chat"`
	Contact       ContactConfig       `koanf:"contact" yaml:"contact"`
	Notifications NotificationsConfig `koanf:"notifications" yaml:"notifications"`

	mu       sync.RWMutex
	filePath string
	file     *koanf.Koanf // Values read from filePath, before env overrides
}

// Dir returns the settings directory, ~/.portfolio.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".portfolio"), nil
}

// DefaultPath returns ~/.portfolio/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	storagePath := "prefs.db"
	if dir, err := Dir(); err == nil {
		storagePath = filepath.Join(dir, "prefs.db")
	}
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    storagePath,
		},
		Chat: ChatConfig{
			Responder: ResponderCanned,
			Model:     "gpt-4o-mini",
		},
		Contact: ContactConfig{
			Transport: TransportOutbox,
			Timeout:   10 * time.Second,
		},
		file: koanf.New("."),
	}
}

// sections are the top-level keys that nest; PORTFOLIO_CHAT_API_KEY maps
// to chat.api_key while PORTFOLIO_CONTENT maps to content.
var sections = []string{"storage", "chat", "contact", "notifications"}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Load reads configuration from path, then overlays environment overrides.
// A missing file is not an error. An empty path uses DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.ConfigLoadFailed("~/.portfolio/config.yaml", err)
		}
		path = p
	}

	cfg := DefaultConfig()
	cfg.filePath = path

	if _, err := os.Stat(path); err == nil {
		if err := cfg.file.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	k := cfg.file.Copy()
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.ConfigLoadFailed(path, fmt.Errorf("loading env overrides: %w", err))
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, fmt.Errorf("unmarshalling config: %w", err))
	}

	if cfg.Chat.APIKey == "" {
		cfg.Chat.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Content = ExpandHome(cfg.Content)
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("invalid storage.backend %q: must be one of sqlite, file, memory", c.Storage.Backend))
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		return errors.ConfigInvalid("storage.path is required")
	}

	switch c.Chat.Responder {
	case ResponderCanned:
	case ResponderOpenAI:
		if c.Chat.Model == "" {
			return errors.ConfigInvalid("chat.model is required for the openai responder")
		}
	default:
		return errors.ConfigInvalid(fmt.Sprintf("invalid chat.responder %q: must be one of canned, openai", c.Chat.Responder))
	}

	switch c.Contact.Transport {
	case TransportOutbox:
	case TransportHTTP:
		if c.Contact.Endpoint == "" {
			return errors.ConfigInvalid("contact.endpoint is required for the http transport")
		}
	default:
		return errors.ConfigInvalid(fmt.Sprintf("invalid contact.transport %q: must be one of outbox, http", c.Contact.Transport))
	}
	if c.Contact.Timeout <= 0 {
		return errors.ConfigInvalid("contact.timeout must be positive")
	}

	return nil
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	return c.SaveTo(c.Path())
}

// SaveTo writes the file layer as YAML to path: what the config file held
// plus settings changed through setters. Defaults, PORTFOLIO_* overrides and
// OPENAI_API_KEY are never written.
func (c *Config) SaveTo(path string) error {
	c.mu.RLock()
	raw := map[string]any{}
	if c.file != nil {
		raw = c.file.Raw()
	}
	data, err := yamlv3.Marshal(raw)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// GetNotificationsEnabled reports whether desktop notifications are on.
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Notifications.Desktop
}

// SetNotificationsEnabled turns desktop notifications on or off.
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Notifications.Desktop = enabled
	if c.file == nil {
		c.file = koanf.New(".")
	}
	_ = c.file.Set("notifications.desktop", enabled)
}
