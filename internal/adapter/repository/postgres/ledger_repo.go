package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lightstreams-network/artist-economy/internal/domain"
)

// LedgerRepository implements domain.LedgerSink over PostgreSQL,
// tagging every row with the simulation run it belongs to. Amounts in
// smallest units are stored as numeric strings to preserve
// arbitrary-precision values.
type LedgerRepository struct {
	db    *DB
	ctx   context.Context
	runID uuid.UUID
}

// NewLedgerRepository creates a new ledger repository bound to one run
func NewLedgerRepository(ctx context.Context, db *DB, runID uuid.UUID) *LedgerRepository {
	return &LedgerRepository{db: db, ctx: ctx, runID: runID}
}

// WriteLedger appends one ledger row
func (r *LedgerRepository) WriteLedger(row *domain.LedgerRow) error {
	insertQuery := `
		INSERT INTO ledger_rows (
			run_id, month, day, participant_id, role, direction,
			external_amount, internal_amount, supply_internal, bonded_external, locked_internal,
			exchange_rate, price_fiat, external_internal_ratio,
			project_balance_fiat, artist_balance_fiat, speculators, subscribers
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(r.ctx, insertQuery,
		r.runID,
		row.Month,
		row.Day,
		row.ParticipantID,
		string(row.Role),
		string(row.Direction),
		row.ExternalAmount.String(),
		row.InternalAmount.String(),
		row.SupplyInternal.String(),
		row.BondedExternal.String(),
		row.LockedInternal.String(),
		row.ExchangeRate.String(),
		row.PriceFiat.String(),
		row.ExternalInternalRatio.String(),
		row.ProjectBalanceFiat.String(),
		row.ArtistBalanceFiat.String(),
		row.Speculators,
		row.Subscribers,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger row: %w", err)
	}
	return nil
}

// Flush is a no-op: rows are written synchronously
func (r *LedgerRepository) Flush() error {
	return nil
}

// OHLCRepository implements domain.OHLCSink over PostgreSQL for one
// granularity of one run.
type OHLCRepository struct {
	db          *DB
	ctx         context.Context
	runID       uuid.UUID
	granularity string
}

// NewOHLCRepository creates a new OHLC repository bound to one run.
// granularity is "day" or "month".
func NewOHLCRepository(ctx context.Context, db *DB, runID uuid.UUID, granularity string) *OHLCRepository {
	return &OHLCRepository{db: db, ctx: ctx, runID: runID, granularity: granularity}
}

// WriteOHLC appends one OHLC row
func (r *OHLCRepository) WriteOHLC(row *domain.OHLCRow) error {
	insertQuery := `
		INSERT INTO ohlc_rows (
			run_id, granularity, bucket, open, close, high, low, volume,
			artist_revenue_fiat, project_revenue_fiat
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(r.ctx, insertQuery,
		r.runID,
		r.granularity,
		row.Bucket,
		row.Open.String(),
		row.Close.String(),
		row.High.String(),
		row.Low.String(),
		row.Volume,
		row.ArtistRevenueFiat.String(),
		row.ProjectRevenueFiat.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ohlc row: %w", err)
	}
	return nil
}

// Flush is a no-op: rows are written synchronously
func (r *OHLCRepository) Flush() error {
	return nil
}
