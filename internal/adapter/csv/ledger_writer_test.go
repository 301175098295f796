package csv

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

func sampleLedgerRow() *domain.LedgerRow {
	return &domain.LedgerRow{
		Month:         2,
		Day:           36,
		ParticipantID: 7,
		Role:          domain.TagSubscriber,
		Direction:     domain.DirectionBuy,

		ExternalAmount: units.ToWei(1000),
		InternalAmount: units.ToWei(400),
		SupplyInternal: units.ToWei(100000),
		BondedExternal: units.ToWei(150000),
		LockedInternal: units.ToWei(50000),

		ExchangeRate:          decimal.NewFromFloat(2.5),
		PriceFiat:             decimal.NewFromFloat(0.05),
		ExternalInternalRatio: decimal.NewFromFloat(1.5),
		ExternalAmountFiat:    decimal.NewFromInt(20),
		BondedExternalFiat:    decimal.NewFromInt(3000),
		ProjectBalanceFiat:    decimal.NewFromFloat(0.6),
		ArtistBalanceFiat:     decimal.NewFromFloat(12.34),

		Speculators: 3,
		Subscribers: 30,
	}
}

func TestLedgerWriter_DefaultLayout(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewLedgerWriter(&buf, nil)
	require.NoError(t, err)

	require.NoError(t, w.WriteLedger(sampleLedgerRow()))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Month", "Day", "Fan_ID", "Fan_Type", "Buy_Sell",
		"Value_External", "Value_External_Fiat", "Value_Internal",
		"Supply_Internal", "Bonded_External", "Bonded_External_Fiat",
		"Exchange_Rate", "Price_Fiat", "External_Internal_Ratio",
		"Project_Balance_Fiat", "Artist_Balance_Fiat", "Locked_Internal",
		"Speculators", "Subscribers",
	}, records[0])

	assert.Equal(t, []string{
		"2", "36", "7", "SUB", "B",
		"1000", "20.00", "400",
		"100000", "150000", "3000.00",
		"2.5000", "0.0500", "1.5000",
		"0.60", "12.34", "50000",
		"3", "30",
	}, records[1])
}

func TestLedgerWriter_ConfigurableColumns(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewLedgerWriter(&buf, []string{ColMonth, ColRole, ColExchangeRate})
	require.NoError(t, err)

	require.NoError(t, w.WriteLedger(sampleLedgerRow()))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Month", "Fan_Type", "Exchange_Rate"}, records[0])
	assert.Equal(t, []string{"2", "SUB", "2.5000"}, records[1])
}

func TestLedgerWriter_RejectsUnknownColumn(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewLedgerWriter(&buf, []string{ColMonth, "sentiment"})
	assert.Error(t, err)
}

func TestLedgerWriter_RoundsWeiAmountsToWholeUnits(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewLedgerWriter(&buf, []string{ColExternal})
	require.NoError(t, err)

	row := sampleLedgerRow()
	// 1000.6 display units round to 1001.
	row.ExternalAmount.Add(units.ToWei(1000), units.FromFloat(0.6))

	require.NoError(t, w.WriteLedger(row))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, records[1])
}
