package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/joho/godotenv"
)

// ErrInvalidSelector is returned when a configured CSS selector does not compile.
var ErrInvalidSelector = errors.New("invalid selector")

const (
	defaultNavTimeout = 30 * time.Second

	DefaultTurnSelector  = `main div[data-testid="chat-page"] div[role="article"]`
	DefaultRoleAttr      = "data-content"
	DefaultBotRole       = "ai-message"
	DefaultBlockSelector = "p"
	DefaultStopSelector  = `button[data-testid='stop-button']`
)

// Selectors binds the parser to the host page structure.
type Selectors struct {
	Turn       string
	RoleAttr   string
	BotRole    string
	Block      string
	StopButton string
	// Suggestion is optional. Empty keeps the placeholder strategy.
	Suggestion string
}

// DefaultSelectors matches the current chat page layout.
func DefaultSelectors() Selectors {
	return Selectors{
		Turn:       DefaultTurnSelector,
		RoleAttr:   DefaultRoleAttr,
		BotRole:    DefaultBotRole,
		Block:      DefaultBlockSelector,
		StopButton: DefaultStopSelector,
	}
}

// Validate compiles every non-empty selector.
func (s Selectors) Validate() error {
	named := []struct{ name, sel string }{
		{"turn", s.Turn},
		{"block", s.Block},
		{"stop", s.StopButton},
		{"suggestion", s.Suggestion},
	}
	for _, n := range named {
		if n.sel == "" {
			if n.name == "suggestion" {
				continue
			}
			return fmt.Errorf("%w: %s selector is empty", ErrInvalidSelector, n.name)
		}
		if _, err := cascadia.Compile(n.sel); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalidSelector, n.name, n.sel, err)
		}
	}
	if strings.TrimSpace(s.RoleAttr) == "" {
		return fmt.Errorf("%w: role attribute is empty", ErrInvalidSelector)
	}
	return nil
}

// Config holds the driver configuration.
type Config struct {
	ChatURL     string
	Headless    bool
	StoragePath string
	NavTimeout  time.Duration
	Selectors   Selectors
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	sel := DefaultSelectors()
	sel.Turn = getEnvOrDefault("CHAT_TURN_SELECTOR", sel.Turn)
	sel.RoleAttr = getEnvOrDefault("CHAT_ROLE_ATTR", sel.RoleAttr)
	sel.BotRole = getEnvOrDefault("CHAT_BOT_ROLE", sel.BotRole)
	sel.Block = getEnvOrDefault("CHAT_BLOCK_SELECTOR", sel.Block)
	sel.StopButton = getEnvOrDefault("CHAT_STOP_SELECTOR", sel.StopButton)
	sel.Suggestion = getEnvOrDefault("CHAT_SUGGESTION_SELECTOR", "")

	timeout, err := parseDurationEnv("CHAT_NAV_TIMEOUT", defaultNavTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ChatURL:     getEnvOrDefault("CHAT_URL", ""),
		Headless:    ParseBoolEnv("AGENT_HEADLESS", false),
		StoragePath: getEnvOrDefault("CHAT_STORAGE_STATE", ""),
		NavTimeout:  timeout,
		Selectors:   sel,
	}
	if err := cfg.Selectors.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// ParseBoolEnv reads a boolean env var, falling back to def on unknown values.
func ParseBoolEnv(name string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func parseDurationEnv(name string, def time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		return def, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}
