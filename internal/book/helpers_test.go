package book

import (
	"testing"
	"time"

	"fjacquet/planned-spending/internal/dateutils"

	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutils.ParseDate(s)
	require.NoError(t, err)
	return d
}
