// Package importbook handles copying a YAML or CSV reminder book into the SQLite store
package importbook

import (
	"fmt"

	"fjacquet/planned-spending/cmd/common"
	"fjacquet/planned-spending/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = NewCommand()

// NewCommand builds the import command.
func NewCommand() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a YAML or CSV reminder book into the SQLite store",
		Long: `Import the book named by --source into the SQLite database named by --db.
Reminders, accounts and currencies already in the database are replaced by the
imported ones with the same key; --replace empties the database first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return importFunc(cmd, replace)
		},
	}
	cmd.Flags().String("db", "", "SQLite database (default: store.path from the configuration)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Remove everything from the database before importing")
	return cmd
}

func importFunc(cmd *cobra.Command, replace bool) error {
	c, err := root.ContainerFrom(cmd.Context())
	if err != nil {
		return err
	}
	cfg := c.GetConfig()
	ctx := cmd.Context()

	s, err := c.OpenStore(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	if replace {
		if err := s.Clear(ctx); err != nil {
			return err
		}
	}

	n, err := common.ImportBook(ctx, s, cfg.Source.Type, cfg.Source.Path, c.GetLogger())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d reminders into %s\n", n, cfg.Store.Path)
	return nil
}
