package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aigcap.dev/pkg/aigcap/internal/domain"
	m "aigcap.dev/pkg/aigcap/internal/model"
)

var scanHTMLFlag string
var scanJSONFlag string
var scanCIFlag bool
var scanNoOpenFlag bool
var scanParallelFlag int

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project tree for AI annotation coverage",
		Long: `Walk the given directory (default: current directory), classify every
source file by its AI annotation header and write JSON and HTML reports.

With --ci the command exits non-zero when any AI-generated file has not
been reviewed by a human.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := m.Path(".")
			if len(args) > 0 {
				root = m.Path(args[0])
			}

			// Usage output would drown the gate verdict in CI logs.
			cmd.SilenceUsage = true

			ctx := cmd.Context()

			report, err := workflow.Scan(ctx, domain.ScanArgs{
				Root:      root,
				Exclude:   excludeList(),
				Parallel:  viper.GetInt(scanParallelConfigKey),
				ReportDir: m.Path(viper.GetString(reportsConfigKey)),
				HTMLPath:  m.Path(scanHTMLFlag),
				JSONPath:  m.Path(scanJSONFlag),
				CI:        scanCIFlag,
				NoOpen:    scanNoOpenFlag,
				Quiet:     quietFlag,
			})
			if err != nil {
				return err
			}

			pass := domain.CIDecision(report)
			if scanCIFlag {
				ui.DisplayGate(ctx, pass)

				if !pass {
					return domain.ErrUnreviewedFiles
				}
			}

			return nil
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scanHTMLFlag, outputFlagName, "o", "", "write the HTML report to this file instead of the reports directory")
	cmd.Flags().StringVar(&scanJSONFlag, jsonFlagName, "", "write an additional JSON report to this file")
	cmd.Flags().BoolVar(&scanCIFlag, ciFlagName, false, "gate mode: exit non-zero when unreviewed AI files exist")
	cmd.Flags().BoolVar(&scanNoOpenFlag, noOpenFlagName, false, "do not open the HTML report in a browser")
	cmd.Flags().IntVarP(&scanParallelFlag, parallelFlagName, "p", viper.GetInt(scanParallelConfigKey), "number of parallel workers for file classification")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), scanParallelConfigKey)
}
