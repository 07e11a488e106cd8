package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/planned-spending/internal/book"
	"fjacquet/planned-spending/internal/config"
	"fjacquet/planned-spending/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBook = `
currencies: [{code: USD, decimal_places: 2}]
accounts:
  - {name: Food, type: expense, currency: USD}
reminders:
  - id: "1"
    description: Groceries A
    rule: {kind: daily}
    splits: [{account: Food, amount: 1000}]
  - id: "2"
    description: Groceries B
    rule: {kind: daily}
    splits: [{account: Food, amount: 500}]
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testBook), 0600))

	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Source.Path = path
	cfg.Store.Path = filepath.Join(t.TempDir(), "book.db")
	cfg.Report.Format = "text"
	cfg.Report.AsOf = "2025-01-01"
	cfg.Report.Width = 8
	cfg.CSV.Delimiter = ","
	return cfg
}

func TestNewContainer(t *testing.T) {
	_, err := NewContainer(nil)
	assert.EqualError(t, err, "configuration cannot be nil")

	cfg := testConfig(t)
	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.GetLogger())
	assert.Same(t, cfg, c.GetConfig())
	assert.NotNil(t, c.GetReportGenerator())
	start, _ := c.GetProjector().Window()
	assert.Equal(t, "2025-01-01", start.Format("2006-01-02"))
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Format = "pdf"

	_, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	assert.ErrorContains(t, err, "invalid report format")
}

func TestContainer_Planner(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(t), logging.NewMockLogger())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	planner, err := c.GetPlanner(ctx)
	require.NoError(t, err)

	rep, err := planner.PlannedSpending(ctx)
	require.NoError(t, err)
	require.Len(t, rep.Lines, 1)
	assert.Equal(t, "Groceries", rep.Lines[0].Key)
	assert.Equal(t, "5475.00", rep.Lines[0].AnnualTotal.StringFixed(2))

	src1, err := c.GetSource(ctx)
	require.NoError(t, err)
	src2, err := c.GetSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, src1, src2)
}

func TestContainer_MissingSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.Path = filepath.Join(t.TempDir(), "missing.yaml")
	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	_, err = c.GetPlanner(context.Background())
	assert.Error(t, err)
	assert.NoError(t, c.Close())
}

func TestContainer_OpenStore(t *testing.T) {
	cfg := testConfig(t)
	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)

	ctx := context.Background()
	s, err := c.OpenStore(ctx, "")
	require.NoError(t, err)
	require.NoError(t, s.SaveBook(ctx, &book.Book{}))
	assert.FileExists(t, cfg.Store.Path)

	require.NoError(t, c.Close())
	assert.True(t, logger.HasEntry("DEBUG", "Container closed"))
}
