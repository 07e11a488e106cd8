package list_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/planned-spending/cmd/list"
	"fjacquet/planned-spending/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvBook = "reminder_id,description,rule,account,account_type,currency,decimal_places,amount\n" +
	"1,Rent A,monthly:1:1,Rent,expense,CHF,2,180000\n" +
	"1,Rent A,,Bank,bank,CHF,2,-180000\n" +
	"2,Coffee,daily,Food,expense,CHF,2,450\n" +
	"3,Savings,monthly:1:25,Pillar,asset,CHF,2,50000\n"

func TestListCommand_Metadata(t *testing.T) {
	assert.Equal(t, "list", list.Cmd.Use)
	assert.NotNil(t, list.Cmd.RunE)
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.csv"), []byte(csvBook), 0600))

	cmd := root.NewCommand()
	cmd.AddCommand(list.NewCommand())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "--source", "book.csv", "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Coffee spend 4.50\nRent A spend 1800.00\nNumber of spending reminders: 2\n", out.String())
}
