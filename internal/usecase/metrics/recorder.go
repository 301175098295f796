package metrics

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// ErrDegenerateEvent is returned when a ledger recording is attempted
// with a non-positive internal or external amount. That is a logic
// error in the calling policy: letting it through would propagate
// infinite or NaN ratios and silently corrupt every downstream OHLC
// extremum.
var ErrDegenerateEvent = errors.New("degenerate ledger event: amounts must be positive")

// Recorder is the metrics aggregator: it converts each buy/sell event
// plus externally-observed economy state into a ledger row and rolls up
// day and month OHLC buckets and revenue accounting.
//
// Record mutates shared bucket state, so it must be called from a
// single logical sequence; ordering is dictated by the sorted
// population scan.
type Recorder struct {
	economy  domain.TokenEconomy
	state    *domain.SimulationState
	fiatRate decimal.Decimal

	ledgerSinks []domain.LedgerSink
	monthSinks  []domain.OHLCSink
	daySinks    []domain.OHLCSink

	prevSupply *big.Int
	lastPrice  decimal.Decimal
	havePrice  bool

	day   bucket
	month bucket
}

// NewRecorder creates an aggregator writing ledger rows to ledgerSinks
// and OHLC rows to the month and day sinks. Day sinks may be empty.
func NewRecorder(
	economy domain.TokenEconomy,
	state *domain.SimulationState,
	fiatRate decimal.Decimal,
	ledgerSinks []domain.LedgerSink,
	monthSinks []domain.OHLCSink,
	daySinks []domain.OHLCSink,
) *Recorder {
	return &Recorder{
		economy:     economy,
		state:       state,
		fiatRate:    fiatRate,
		ledgerSinks: ledgerSinks,
		monthSinks:  monthSinks,
		daySinks:    daySinks,
		prevSupply:  new(big.Int),
	}
}

// Record builds the ledger row for one event, appends it to the ledger
// sinks and updates the running day/month aggregates.
func (r *Recorder) Record(ctx context.Context, tick domain.Tick, p *domain.Participant,
	role domain.RoleTag, direction domain.Direction,
	externalWei, internalWei *big.Int) (*domain.LedgerRow, error) {

	if internalWei == nil || externalWei == nil ||
		internalWei.Sign() <= 0 || externalWei.Sign() <= 0 {
		return nil, fmt.Errorf("%w (role=%s direction=%s month=%d day=%d)",
			ErrDegenerateEvent, role, direction, tick.Month, tick.Day)
	}

	supply, err := r.economy.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("query total supply: %w", err)
	}
	reserve, err := r.economy.ReserveBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reserve balance: %w", err)
	}

	rate := units.ExchangeRate(externalWei, internalWei)
	r.state.LastExchangeRate = rate

	ratio := decimal.Zero
	if supply.Sign() > 0 {
		ratio = units.ExchangeRate(reserve, supply)
	}

	price := units.PricePerToken(externalWei, internalWei, r.fiatRate)

	projectBalance, err := r.projectBalance(ctx)
	if err != nil {
		return nil, err
	}

	locked, err := r.lockedInternal(ctx)
	if err != nil {
		return nil, err
	}

	row := &domain.LedgerRow{
		Month:          tick.Month,
		Day:            tick.Day,
		Role:           role,
		Direction:      direction,
		ExternalAmount: new(big.Int).Set(externalWei),
		InternalAmount: new(big.Int).Set(internalWei),
		SupplyInternal: supply,
		BondedExternal: reserve,
		LockedInternal: locked,

		ExchangeRate:          rate,
		PriceFiat:             price,
		ExternalInternalRatio: ratio.Round(4),
		ExternalAmountFiat:    units.ToFiat(externalWei, r.fiatRate),
		BondedExternalFiat:    units.ToFiat(reserve, r.fiatRate),
		ProjectBalanceFiat:    units.ToFiat(projectBalance, r.fiatRate),
		ArtistBalanceFiat:     units.ToFiat(r.state.ArtistBalance, r.fiatRate),

		Speculators: r.state.ActiveSpeculators,
		Subscribers: r.state.ActiveSubscribers,
	}
	if p != nil {
		row.ParticipantID = p.ID
	}

	r.observe(price)
	r.addVolume(supply)

	for _, sink := range r.ledgerSinks {
		if err := sink.WriteLedger(row); err != nil {
			return nil, fmt.Errorf("write ledger row: %w", err)
		}
	}
	return row, nil
}

// projectBalance is the external asset held by the fee recipient plus
// the hatcher, the two accounts project revenue accrues to.
func (r *Recorder) projectBalance(ctx context.Context) (*big.Int, error) {
	fee, err := r.economy.ReserveBalanceOf(ctx, domain.AccountFeeRecipient)
	if err != nil {
		return nil, fmt.Errorf("query fee recipient balance: %w", err)
	}
	hatcher, err := r.economy.ReserveBalanceOf(ctx, domain.AccountHatcher)
	if err != nil {
		return nil, fmt.Errorf("query hatcher balance: %w", err)
	}
	return new(big.Int).Add(fee, hatcher), nil
}

func (r *Recorder) lockedInternal(ctx context.Context) (*big.Int, error) {
	contribution, err := r.economy.InitialContribution(ctx, domain.AccountHatcher)
	if err != nil {
		return nil, fmt.Errorf("query hatcher contribution: %w", err)
	}
	return new(big.Int).Set(contribution.LockedInternal), nil
}

// observe feeds one price sample into the open day and month buckets.
func (r *Recorder) observe(price decimal.Decimal) {
	r.day.observe(price)
	r.month.observe(price)
	r.lastPrice = price
	r.havePrice = true
}

// addVolume increments day and month volume by the rounded absolute
// supply delta since the previous event.
func (r *Recorder) addVolume(supply *big.Int) {
	delta := new(big.Int).Sub(supply, r.prevSupply)
	delta.Abs(delta)
	vol := units.RoundFromWei(delta).IntPart()

	r.day.volume += vol
	r.month.volume += vol
	r.prevSupply = new(big.Int).Set(supply)
}
