// Package list handles the per-reminder spending listing
package list

import (
	"fmt"

	"fjacquet/planned-spending/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the list command
var Cmd = NewCommand()

// NewCommand builds the list command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List spending reminders with their spend per occurrence",
		Long:  `List every reminder with a positive spend per occurrence, ungrouped and sorted by description.`,
		Args:  cobra.NoArgs,
		RunE:  listFunc,
	}
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.ContainerFrom(cmd.Context())
	if err != nil {
		return err
	}

	planner, err := c.GetPlanner(cmd.Context())
	if err != nil {
		return err
	}
	items, err := planner.SpendingReminders(cmd.Context())
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(c.GetReportGenerator().GenerateList(items)); err != nil {
		return fmt.Errorf("failed to write list: %w", err)
	}
	return nil
}
