// Package report handles the planned spending report command
package report

import (
	"fjacquet/planned-spending/cmd/common"
	"fjacquet/planned-spending/cmd/root"
	"fjacquet/planned-spending/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the report command
var Cmd = NewCommand()

// NewCommand builds the report command.
func NewCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report the annual spending planned by reminders",
		Long: `Project every spending reminder over the year starting at --as-of (today by default),
group reminders sharing a description and list the groups by annual total, largest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportFunc(cmd, output)
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, csv, json or yaml")
	cmd.Flags().IntP("width", "w", 8, "Width of the total column in text output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: standard output)")
	return cmd
}

func reportFunc(cmd *cobra.Command, output string) error {
	c, err := root.ContainerFrom(cmd.Context())
	if err != nil {
		return err
	}
	log := c.GetLogger()
	cfg := c.GetConfig()

	planner, err := c.GetPlanner(cmd.Context())
	if err != nil {
		return err
	}
	rep, err := planner.PlannedSpending(cmd.Context())
	if err != nil {
		return err
	}

	w, closeOutput, err := common.OpenOutput(cmd.OutOrStdout(), output)
	if err != nil {
		return err
	}
	if err := c.GetReportGenerator().Render(w, rep, cfg.Report.Format); err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return err
	}

	if output != "" {
		log.Info("Report written", logging.F(logging.FieldFile, output), logging.F(logging.FieldFormat, cfg.Report.Format))
	}
	return nil
}
