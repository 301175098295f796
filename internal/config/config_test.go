package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PassesValidation(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultMonths, cfg.Simulation.Months)
	assert.Equal(t, DefaultInitialSubscribers, cfg.Cohort.InitialSubscribers)
	assert.Equal(t, int64(DefaultHatchLimit), cfg.Hatch.Limit)
	assert.Equal(t, HalvingTriggerProceeds, cfg.Subscription.HalvingTrigger)
	assert.NotEmpty(t, cfg.Behavior.TopUpAmounts)
	assert.NotEmpty(t, cfg.Behavior.SpeculatorBuyAmounts)
	assert.NotEmpty(t, cfg.Behavior.SpeculatorSellPercents)
}

func TestLoadAndValidate_AppliesDefaultsToPartialFile(t *testing.T) {
	path := writeConfigFile(t, `
simulation:
  months: 6
  seed: 99
cohort:
  initial_subscribers: 10
`)

	cfg, err := LoadAndValidate(path)
	require.NoError(t, err)

	// Explicit values survive.
	assert.Equal(t, 6, cfg.Simulation.Months)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 10, cfg.Cohort.InitialSubscribers)

	// Omitted values get defaults.
	assert.Equal(t, DefaultYear, cfg.Simulation.Year)
	assert.Equal(t, DefaultFiatRate, cfg.Simulation.FiatRate)
	assert.Equal(t, int64(DefaultInitialPrice), cfg.Subscription.InitialPrice)
	assert.Equal(t, int64(DefaultHatchLimit), cfg.Hatch.Limit)
}

func TestLoadAndValidate_PreservesExplicitZeroValues(t *testing.T) {
	path := writeConfigFile(t, `
simulation:
  seed: 0
cohort:
  initial_speculators: 0
  subscriber_growth: 0
  speculator_growth: 0
`)

	cfg, err := LoadAndValidate(path)
	require.NoError(t, err)

	// A configured zero is a real value, not a request for the default:
	// zero growth means no new entrants after the initial cohort, and a
	// speculator-free run is a valid scenario.
	assert.Equal(t, int64(0), cfg.Simulation.Seed)
	assert.Equal(t, 0, cfg.Cohort.InitialSpeculators)
	assert.Equal(t, 0.0, cfg.Cohort.SubscriberGrowth)
	assert.Equal(t, 0.0, cfg.Cohort.SpeculatorGrowth)

	// Keys omitted alongside them still default.
	assert.Equal(t, DefaultInitialSubscribers, cfg.Cohort.InitialSubscribers)
	assert.Equal(t, DefaultMonths, cfg.Simulation.Months)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("ECONOMY_LEDGER_PATH", "/tmp/run42/ledger.csv")

	path := writeConfigFile(t, `
output:
  ledger_path: ${ECONOMY_LEDGER_PATH}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/run42/ledger.csv", cfg.Output.LedgerPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadAndValidate_RejectsInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "simulation: [not a mapping")

	_, err := LoadAndValidate(path)
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero months", func(c *Config) { c.Simulation.Months = -1 }},
		{"zero fiat rate", func(c *Config) { c.Simulation.FiatRate = -0.5 }},
		{"negative growth", func(c *Config) { c.Cohort.SubscriberGrowth = -0.1 }},
		{"unknown taper", func(c *Config) { c.Cohort.Taper = "linear" }},
		{"inverted gain range", func(c *Config) {
			c.Cohort.TargetGainMin = 2.0
			c.Cohort.TargetGainMax = 1.0
		}},
		{"unknown halving trigger", func(c *Config) { c.Subscription.HalvingTrigger = "never" }},
		{"negative subscription price", func(c *Config) { c.Subscription.InitialPrice = -100 }},
		{"sell percent above 100", func(c *Config) {
			c.Behavior.SpeculatorSellPercents = []WeightedValue{{Value: 150, Weight: 1}}
		}},
		{"empty distribution", func(c *Config) { c.Behavior.TopUpAmounts = nil }},
		{"zero weight", func(c *Config) {
			c.Behavior.TopUpAmounts = []WeightedValue{{Value: 500, Weight: 0}}
		}},
		{"negative hatch limit", func(c *Config) { c.Hatch.Limit = -1 }},
		{"hatcher sell percent out of range", func(c *Config) { c.Hatch.SellPercent = 101 }},
		{"reserve ratio out of range", func(c *Config) { c.Curve.ReserveRatioPPM = 1000000 }},
		{"negative friction", func(c *Config) { c.Curve.FrictionPPM = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_SupplyTriggerRequiresThreshold(t *testing.T) {
	cfg := Default()
	cfg.Subscription.HalvingTrigger = HalvingTriggerSupply
	cfg.Subscription.SupplyThreshold = 0
	assert.Error(t, cfg.Validate())

	cfg.Subscription.SupplyThreshold = 200000
	assert.NoError(t, cfg.Validate())
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
