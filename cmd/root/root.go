// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/planned-spending/internal/config"
	"fjacquet/planned-spending/internal/container"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	Source     string
	SourceType string
	AsOf       string
	LogLevel   string
	LogFormat  string
}

type containerKey struct{}

// Cmd is the root command
var Cmd = NewCommand()

// NewCommand builds the root command with its persistent flags. Subcommands are added by the caller.
func NewCommand() *cobra.Command {
	flags := &CommonFlags{}
	cmd := &cobra.Command{
		Use:   "planned-spending",
		Short: "Project recurring reminders over the next year and report planned spending.",
		Long: `planned-spending reads a book of scheduled transactions (reminders),
projects every spending reminder over the coming year and reports the expected
annual spending, with duplicate reminders grouped under one description.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			c, err := ContainerFrom(cmd.Context())
			if err != nil {
				return nil
			}
			return c.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.planned-spending, .planned-spending or .)")
	pf.StringVarP(&flags.Source, "source", "s", "", "Reminder book: YAML or CSV file, or SQLite database")
	pf.StringVar(&flags.SourceType, "source-type", "", "Source type: yaml, csv or sqlite (default: from the file extension)")
	pf.StringVar(&flags.AsOf, "as-of", "", "First day of the projection, YYYY-MM-DD (default: today)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&flags.LogFormat, "log-format", "", "Log format: text or json")
	pf.String("delimiter", ",", "Field separator for CSV books and CSV reports")
	return cmd
}

func setup(cmd *cobra.Command, flags *CommonFlags) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	cfg, err := config.InitializeConfigWithFlags(flags.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, containerKey{}, c))
	return nil
}

// ContainerFrom returns the container set up by the root command for the running command.
func ContainerFrom(ctx context.Context) (*container.Container, error) {
	if ctx != nil {
		if c, ok := ctx.Value(containerKey{}).(*container.Container); ok {
			return c, nil
		}
	}
	return nil, errors.New("application not initialized")
}
