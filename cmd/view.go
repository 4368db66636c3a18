package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aigcap.dev/pkg/aigcap/internal/domain"
	m "aigcap.dev/pkg/aigcap/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the most recent coverage report",
		Long:  "View the most recent coverage report from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportDir := m.Path(viper.GetString(reportsConfigKey))
			return workflow.View(cmd.Context(), domain.ViewArgs{ReportDir: reportDir})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
