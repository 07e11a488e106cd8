package importbook_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/planned-spending/cmd/importbook"
	"fjacquet/planned-spending/cmd/report"
	"fjacquet/planned-spending/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvBook = "reminder_id,description,rule,account,account_type,currency,decimal_places,amount,split_description\n" +
	"1,Utilities,monthly:1:15,Water,expense,EUR,2,3000,water\n" +
	"1,Utilities,,Power,expense,EUR,2,7000,power\n" +
	"1,Utilities,,Bank,bank,EUR,2,-10000,\n"

func newRoot() *cobra.Command {
	cmd := root.NewCommand()
	cmd.AddCommand(importbook.NewCommand(), report.NewCommand())
	return cmd
}

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import", importbook.Cmd.Use)
	assert.NotNil(t, importbook.Cmd.Flags().Lookup("db"))
	assert.Equal(t, "false", importbook.Cmd.Flags().Lookup("replace").DefValue)
}

func TestImportThenReport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.csv"), []byte(csvBook), 0600))

	cmd := newRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", "--source", "book.csv", "--db", "data/book.db", "--log-level", "error"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Imported 1 reminders into data/book.db\n", out.String())

	cmd = newRoot()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", "--source", "data/book.db", "--as-of", "2025-03-01", "--log-level", "error"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "2 spending reminders; annual spending for each:\n"+
		"  840.00 Utilities: power\n"+
		"  360.00 Utilities: water\n", out.String())
}

func TestImportCommand_Replace(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.csv"), []byte(csvBook), 0600))

	for i := 0; i < 2; i++ {
		cmd := newRoot()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"import", "--source", "book.csv", "--db", "book.db", "--replace", "--log-level", "error"})
		require.NoError(t, cmd.Execute())
	}
	assert.FileExists(t, filepath.Join(dir, "book.db"))
}
