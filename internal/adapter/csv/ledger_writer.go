// Package csv implements the file output sinks: one CSV record per
// ledger row and per OHLC row. The ledger column layout is
// configuration-driven per run variant, not hardcoded.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// Ledger column keys accepted in the output configuration.
const (
	ColMonth                 = "month"
	ColDay                   = "day"
	ColParticipantID         = "participant_id"
	ColRole                  = "role"
	ColDirection             = "direction"
	ColExternal              = "external"
	ColExternalFiat          = "external_fiat"
	ColInternal              = "internal"
	ColSupplyInternal        = "supply_internal"
	ColBondedExternal        = "bonded_external"
	ColBondedExternalFiat    = "bonded_external_fiat"
	ColExchangeRate          = "exchange_rate"
	ColPriceFiat             = "price_fiat"
	ColExternalInternalRatio = "external_internal_ratio"
	ColProjectBalanceFiat    = "project_balance_fiat"
	ColArtistBalanceFiat     = "artist_balance_fiat"
	ColLockedInternal        = "locked_internal"
	ColSpeculators           = "speculators"
	ColSubscribers           = "subscribers"
)

type column struct {
	header string
	format func(*domain.LedgerRow) string
}

var ledgerColumns = map[string]column{
	ColMonth:         {"Month", func(r *domain.LedgerRow) string { return strconv.Itoa(r.Month) }},
	ColDay:           {"Day", func(r *domain.LedgerRow) string { return strconv.Itoa(r.Day) }},
	ColParticipantID: {"Fan_ID", func(r *domain.LedgerRow) string { return strconv.Itoa(r.ParticipantID) }},
	ColRole:          {"Fan_Type", func(r *domain.LedgerRow) string { return string(r.Role) }},
	ColDirection:     {"Buy_Sell", func(r *domain.LedgerRow) string { return string(r.Direction) }},
	ColExternal: {"Value_External", func(r *domain.LedgerRow) string {
		return units.RoundFromWei(r.ExternalAmount).String()
	}},
	ColExternalFiat: {"Value_External_Fiat", func(r *domain.LedgerRow) string {
		return r.ExternalAmountFiat.StringFixed(2)
	}},
	ColInternal: {"Value_Internal", func(r *domain.LedgerRow) string {
		return units.RoundFromWei(r.InternalAmount).String()
	}},
	ColSupplyInternal: {"Supply_Internal", func(r *domain.LedgerRow) string {
		return units.RoundFromWei(r.SupplyInternal).String()
	}},
	ColBondedExternal: {"Bonded_External", func(r *domain.LedgerRow) string {
		return units.RoundFromWei(r.BondedExternal).String()
	}},
	ColBondedExternalFiat: {"Bonded_External_Fiat", func(r *domain.LedgerRow) string {
		return r.BondedExternalFiat.StringFixed(2)
	}},
	ColExchangeRate: {"Exchange_Rate", func(r *domain.LedgerRow) string {
		return r.ExchangeRate.StringFixed(4)
	}},
	ColPriceFiat: {"Price_Fiat", func(r *domain.LedgerRow) string {
		return r.PriceFiat.StringFixed(4)
	}},
	ColExternalInternalRatio: {"External_Internal_Ratio", func(r *domain.LedgerRow) string {
		return r.ExternalInternalRatio.StringFixed(4)
	}},
	ColProjectBalanceFiat: {"Project_Balance_Fiat", func(r *domain.LedgerRow) string {
		return r.ProjectBalanceFiat.StringFixed(2)
	}},
	ColArtistBalanceFiat: {"Artist_Balance_Fiat", func(r *domain.LedgerRow) string {
		return r.ArtistBalanceFiat.StringFixed(2)
	}},
	ColLockedInternal: {"Locked_Internal", func(r *domain.LedgerRow) string {
		return units.RoundFromWei(r.LockedInternal).String()
	}},
	ColSpeculators: {"Speculators", func(r *domain.LedgerRow) string { return strconv.Itoa(r.Speculators) }},
	ColSubscribers: {"Subscribers", func(r *domain.LedgerRow) string { return strconv.Itoa(r.Subscribers) }},
}

// DefaultLedgerColumns is the full column layout of the reference run.
func DefaultLedgerColumns() []string {
	return []string{
		ColMonth, ColDay, ColParticipantID, ColRole, ColDirection,
		ColExternal, ColExternalFiat, ColInternal,
		ColSupplyInternal, ColBondedExternal, ColBondedExternalFiat,
		ColExchangeRate, ColPriceFiat, ColExternalInternalRatio,
		ColProjectBalanceFiat, ColArtistBalanceFiat, ColLockedInternal,
		ColSpeculators, ColSubscribers,
	}
}

// LedgerWriter streams ledger rows as CSV records with a configurable
// column schema.
type LedgerWriter struct {
	w       *csv.Writer
	columns []column
}

// NewLedgerWriter creates a ledger CSV sink over w with the given
// column keys and writes the header record. Empty keys select the
// default layout.
func NewLedgerWriter(w io.Writer, columnKeys []string) (*LedgerWriter, error) {
	if len(columnKeys) == 0 {
		columnKeys = DefaultLedgerColumns()
	}

	columns := make([]column, len(columnKeys))
	header := make([]string, len(columnKeys))
	for i, key := range columnKeys {
		col, ok := ledgerColumns[key]
		if !ok {
			return nil, fmt.Errorf("unknown ledger column %q", key)
		}
		columns[i] = col
		header[i] = col.header
	}

	lw := &LedgerWriter{w: csv.NewWriter(w), columns: columns}
	if err := lw.w.Write(header); err != nil {
		return nil, fmt.Errorf("write ledger header: %w", err)
	}
	return lw, nil
}

// WriteLedger appends one row.
func (lw *LedgerWriter) WriteLedger(row *domain.LedgerRow) error {
	record := make([]string, len(lw.columns))
	for i, col := range lw.columns {
		record[i] = col.format(row)
	}
	return lw.w.Write(record)
}

// Flush writes any buffered records to the underlying writer.
func (lw *LedgerWriter) Flush() error {
	lw.w.Flush()
	return lw.w.Error()
}
