package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "prospect.db", cfg.Store.Path)
	assert.Equal(t, "https://mapping.ncua.gov/api/CreditUnions", cfg.Feeds.CreditUnionURL)
	assert.Equal(t, "https://banks.data.fdic.gov/api/financials", cfg.Feeds.BankURL)
	assert.Equal(t, 60, cfg.Feeds.TimeoutSecs)
	assert.Equal(t, 3, cfg.Feeds.MaxRetries)
	assert.InDelta(t, 2.0, cfg.Feeds.RatePerSec, 0.001)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(2048), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "https://login.salesforce.com", cfg.Salesforce.LoginURL)
	assert.Equal(t, 25, cfg.Leads.DefaultLimit)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/prospect
log:
  level: debug
  format: console
server:
  port: 9090
leads:
  default_limit: 50
  budget_season: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/prospect", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Leads.DefaultLimit)
	assert.True(t, cfg.Leads.BudgetSeason)
	// Defaults still apply for unset values
	assert.Equal(t, 3, cfg.Feeds.MaxRetries)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("PROSPECT_ANTHROPIC_KEY", "sk-test")
	t.Setenv("PROSPECT_LOG_LEVEL", "warn")
	t.Setenv("PROSPECT_SALESFORCE_CLIENT_ID", "3MVG9client")
	t.Setenv("PROSPECT_SALESFORCE_USERNAME", "ops@example.com")
	t.Setenv("PROSPECT_SALESFORCE_KEY_PATH", "/etc/sf/key.pem")
	t.Setenv("PROSPECT_STORE_DATABASE_URL", "postgres://localhost/prospect")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "3MVG9client", cfg.Salesforce.ClientID)
	assert.Equal(t, "ops@example.com", cfg.Salesforce.Username)
	assert.Equal(t, "/etc/sf/key.pem", cfg.Salesforce.KeyPath)
	assert.Equal(t, "postgres://localhost/prospect", cfg.Store.DatabaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		component string
		wantErr   bool
	}{
		{"chat missing key", Config{}, "chat", true},
		{"chat with key", Config{Anthropic: AnthropicConfig{Key: "sk"}}, "chat", false},
		{"salesforce missing", Config{}, "salesforce", true},
		{"salesforce complete", Config{Salesforce: SalesforceConfig{ClientID: "id", Username: "u"}}, "salesforce", false},
		{"postgres without url", Config{Store: StoreConfig{Driver: "postgres"}}, "store", true},
		{"sqlite needs nothing", Config{Store: StoreConfig{Driver: "sqlite"}}, "store", false},
		{"unknown component", Config{}, "other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.component)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level", Format: "json"}))
}
