package csv

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstreams-network/artist-economy/internal/domain"
)

func sampleOHLCRow() *domain.OHLCRow {
	return &domain.OHLCRow{
		Bucket: 3,
		Open:   decimal.NewFromFloat(0.05),
		Close:  decimal.NewFromFloat(0.07),
		High:   decimal.NewFromFloat(0.09),
		Low:    decimal.NewFromFloat(0.04),
		Volume: 12500,

		ArtistRevenueFiat:  decimal.NewFromInt(420),
		ProjectRevenueFiat: decimal.NewFromFloat(96.5),
	}
}

func TestMonthOHLCWriter_IncludesRevenueColumns(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewMonthOHLCWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.WriteOHLC(sampleOHLCRow()))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Month", "Open", "Close", "High", "Low", "Vol",
		"Artist_Revenue_Fiat", "Project_Revenue_Fiat",
	}, records[0])
	assert.Equal(t, []string{
		"3", "0.0500", "0.0700", "0.0900", "0.0400", "12500",
		"420.00", "96.50",
	}, records[1])
}

func TestDayOHLCWriter_OmitsRevenueColumns(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewDayOHLCWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.WriteOHLC(sampleOHLCRow()))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Day", "Open", "Close", "High", "Low", "Vol"}, records[0])
	assert.Equal(t, []string{"3", "0.0500", "0.0700", "0.0900", "0.0400", "12500"}, records[1])
}
