package root_test

import (
	"bytes"
	"context"
	"testing"

	"fjacquet/planned-spending/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "planned-spending", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "planned spending")
	assert.Contains(t, root.Cmd.Long, "scheduled transactions")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := root.NewCommand()

	for _, name := range []string{"config", "source", "source-type", "as-of", "log-level", "log-format", "delimiter"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "s", cmd.PersistentFlags().Lookup("source").Shorthand)
}

func TestRootCommand_SetsUpContainer(t *testing.T) {
	chdir(t, t.TempDir())
	cmd := root.NewCommand()

	var asOf string
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.ContainerFrom(cmd.Context())
			if err != nil {
				return err
			}
			start, _ := c.GetProjector().Window()
			asOf = start.Format("2006-01-02")
			return nil
		},
	}
	cmd.AddCommand(probe)
	cmd.SetArgs([]string{"probe", "--as-of", "2024-02-29"})
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "2024-02-29", asOf)
}

func TestRootCommand_InvalidAsOf(t *testing.T) {
	chdir(t, t.TempDir())
	cmd := root.NewCommand()
	cmd.AddCommand(&cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }})
	cmd.SetArgs([]string{"probe", "--as-of", "tomorrow"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid report.as_of")
}

func TestContainerFrom_NotInitialized(t *testing.T) {
	_, err := root.ContainerFrom(context.Background())
	assert.Error(t, err)
	_, err = root.ContainerFrom(nil) //nolint:staticcheck // nil context is handled
	assert.Error(t, err)
}
