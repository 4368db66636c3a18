// Package cmd provides the root command and CLI setup for aigcap.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"aigcap.dev/pkg/aigcap/internal/adapter"
	"aigcap.dev/pkg/aigcap/internal/controller"
	"aigcap.dev/pkg/aigcap/internal/domain"
	"aigcap.dev/pkg/aigcap/pkg"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var browser adapter.BrowserOpener
var scanner domain.Scanner
var workflow domain.Workflow
var ui controller.UI

// reportsDirFlag is a root-level flag shared by commands that read/write
// report directories.
var reportsDirFlag string

// excludePatterns filters scanned paths for applicable commands.
var excludePatterns []string

// quietFlag suppresses console output; only errors and the CI verdict remain.
var quietFlag bool

func init() {
	configureRootFlags(rootCmd)
	configureLogger("", viper.GetBool(logVerboseKey))

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	browser = adapter.NewBrowserOpener()
	scanner = domain.NewScanner(fsAdapter)
	workflow = domain.NewWorkflow(
		scanner,
		reportStore,
		browser,
		ui,
	)
}

const rootLongDescription = `aigcap tracks AI-generated code through annotation headers embedded in
source comments. It scans a project tree, reports which files carry AI
contributions and whether a human has reviewed them, and enforces the
annotation contract on agent file operations via editor hooks.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aigcap",
		Short: "AI-generated code annotation and review coverage tool",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(
			&reportsDirFlag, reportsFlagName,
			viper.GetString(reportsConfigKey),
			"directory for scan report artifacts",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportsFlagName), reportsConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files or directories by name (comma list, can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&quietFlag, quietFlagName, "q", false, "suppress console output (reports are still written)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// excludeList flattens the exclude flag values, splitting comma lists.
func excludeList() []string {
	var names []string
	for _, entry := range viper.GetStringSlice(excludeConfigKey) {
		names = append(names, pkg.SplitList(entry)...)
	}

	return names
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
