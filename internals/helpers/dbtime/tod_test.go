// file: internals/helpers/dbtime/tod_test.go
package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndOn(t *testing.T) {
	tod, err := Parse("09:30:00")
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := tod.On(date)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), got)
}

func TestParseShortForm(t *testing.T) {
	tod, err := Parse("07:05")
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 7, 5, 0, 0, time.UTC), tod.On(date))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not a time")
	assert.Error(t, err)
}

func TestScanFromDriverValues(t *testing.T) {
	var tod Tod
	require.NoError(t, tod.Scan("10:15:00"))

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC), tod.On(date))

	var fromBytes Tod
	require.NoError(t, fromBytes.Scan([]byte("23:59:59")))
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC), fromBytes.On(date))
}
