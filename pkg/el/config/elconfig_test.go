package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowbeam/el/pkg/el/config"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s := config.LoadSettings(config.New(nil))
	assert.True(t, s.RegexEnabled)
	assert.Empty(t, s.AllowedFunctions)
}

func TestLoadSettingsRegexDisabled(t *testing.T) {
	s := config.LoadSettings(config.New(map[string]any{"regex_enabled": false}))
	assert.False(t, s.RegexEnabled)
}

func TestSettingsAllowsEmptyAllowList(t *testing.T) {
	s := config.Settings{}
	assert.True(t, s.Allows("toUpper"))
}

func TestSettingsAllowsRestrictedList(t *testing.T) {
	s := config.Settings{AllowedFunctions: []string{"toUpper", "toLower"}}
	assert.True(t, s.Allows("toUpper"))
	assert.False(t, s.Allows("matches"))
}
