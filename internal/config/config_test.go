package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"CHAT_URL", "AGENT_HEADLESS", "CHAT_STORAGE_STATE", "CHAT_NAV_TIMEOUT",
		"CHAT_TURN_SELECTOR", "CHAT_ROLE_ATTR", "CHAT_BOT_ROLE", "CHAT_BLOCK_SELECTOR",
		"CHAT_STOP_SELECTOR", "CHAT_SUGGESTION_SELECTOR"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultSelectors(), cfg.Selectors)
	assert.Equal(t, 30*time.Second, cfg.NavTimeout)
	assert.False(t, cfg.Headless)
	assert.Empty(t, cfg.ChatURL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CHAT_URL", "https://chat.example.com")
	t.Setenv("AGENT_HEADLESS", "yes")
	t.Setenv("CHAT_NAV_TIMEOUT", "5s")
	t.Setenv("CHAT_BOT_ROLE", "assistant")
	t.Setenv("CHAT_SUGGESTION_SELECTOR", `button[data-testid*="suggestion-"]`)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.ChatURL)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.NavTimeout)
	assert.Equal(t, "assistant", cfg.Selectors.BotRole)
	assert.Equal(t, `button[data-testid*="suggestion-"]`, cfg.Selectors.Suggestion)
}

func TestFromEnvRejectsBadSelector(t *testing.T) {
	t.Setenv("CHAT_TURN_SELECTOR", "div[role=")
	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrInvalidSelector)
}

func TestFromEnvRejectsBadTimeout(t *testing.T) {
	t.Setenv("CHAT_NAV_TIMEOUT", "soon")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	sel := DefaultSelectors()
	require.NoError(t, sel.Validate())

	sel.RoleAttr = " "
	assert.ErrorIs(t, sel.Validate(), ErrInvalidSelector)

	sel = DefaultSelectors()
	sel.StopButton = ""
	assert.ErrorIs(t, sel.Validate(), ErrInvalidSelector)
}

func TestParseBoolEnv(t *testing.T) {
	tests := map[string]bool{"1": true, "on": true, "TRUE": true, "off": false, "0": false, "maybe": true, "": true}
	for val, want := range tests {
		t.Setenv("PARSER_TEST_BOOL", val)
		assert.Equal(t, want, ParseBoolEnv("PARSER_TEST_BOOL", true), val)
	}
}
