package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"scan", "hook", "view", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup(reportsFlagName))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup(excludeFlagName))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup(quietFlagName))
}

func TestScanCmd_Flags(t *testing.T) {
	for _, name := range []string{outputFlagName, jsonFlagName, ciFlagName, noOpenFlagName, parallelFlagName} {
		assert.NotNil(t, scanCmd.Flags().Lookup(name), "missing flag %s", name)
	}

	short := scanCmd.Flags().ShorthandLookup("o")
	require.NotNil(t, short)
	assert.Equal(t, outputFlagName, short.Name)
}

func TestExcludeList_SplitsCommaEntries(t *testing.T) {
	original := viper.GetStringSlice(excludeConfigKey)
	t.Cleanup(func() { viper.Set(excludeConfigKey, original) })

	viper.Set(excludeConfigKey, []string{"vendor, third_party", "gen.py"})

	assert.Equal(t, []string{"vendor", "third_party", "gen.py"}, excludeList())
}

func TestExcludeList_Empty(t *testing.T) {
	original := viper.GetStringSlice(excludeConfigKey)
	t.Cleanup(func() { viper.Set(excludeConfigKey, original) })

	viper.Set(excludeConfigKey, []string{})

	assert.Empty(t, excludeList())
}

func TestBindFlagToConfig(t *testing.T) {
	// Persistent flags are bound so config and env values feed them.
	assert.Equal(t, defaultReportsDir, viper.GetString(reportsConfigKey))
}
