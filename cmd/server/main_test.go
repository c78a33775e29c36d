package main

import (
	"os"
	"testing"

	"github.com/woozymasta/randomspot/internal/config"
	"github.com/woozymasta/randomspot/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetMaxAttemptsEnv clears MAX_ATTEMPTS for the test and restores it afterwards.
func unsetMaxAttemptsEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MAX_ATTEMPTS", "")
	require.NoError(t, os.Unsetenv("MAX_ATTEMPTS"))
}

func parseOptions(t *testing.T, args ...string) Options {
	t.Helper()
	var opts Options
	_, err := flags.NewParser(&opts, flags.None).ParseArgs(args)
	require.NoError(t, err)
	return opts
}

func TestApplyOptionsMaxAttempts(t *testing.T) {
	unsetMaxAttemptsEnv(t)

	tests := []struct {
		name string
		yaml string
		args []string
		want int
	}{
		{"flag overrides config", "max_attempts: 500\nregions: []\n", []string{"--max-attempts", "42"}, 42},
		{"flag overrides normalized default", "regions: []\n", []string{"-m", "7"}, 7},
		{"config without flag", "max_attempts: 500\nregions: []\n", nil, 500},
		{"neither", "regions: []\n", nil, config.DefaultMaxAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.yaml))
			require.NoError(t, err)

			applyOptions(cfg, parseOptions(t, tt.args...))
			assert.Equal(t, tt.want, server.NewServerContext(cfg).Config.MaxAttempts)
		})
	}
}

func TestApplyOptionsMissingConfig(t *testing.T) {
	unsetMaxAttemptsEnv(t)

	cfg := &config.Config{}
	applyOptions(cfg, parseOptions(t))
	assert.Equal(t, config.DefaultMaxAttempts, server.NewServerContext(cfg).Config.MaxAttempts)

	t.Setenv("MAX_ATTEMPTS", "250")
	cfg = &config.Config{}
	applyOptions(cfg, parseOptions(t))
	assert.Equal(t, 250, server.NewServerContext(cfg).Config.MaxAttempts)
}
