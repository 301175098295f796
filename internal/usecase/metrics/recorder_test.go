package metrics

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// MockTokenEconomy is a mock implementation of domain.TokenEconomy for testing
type MockTokenEconomy struct {
	mock.Mock
}

func (m *MockTokenEconomy) Mint(ctx context.Context, account string, externalAmount *big.Int) (*big.Int, error) {
	args := m.Called(ctx, account, externalAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) Burn(ctx context.Context, account string, internalAmount *big.Int) (*big.Int, error) {
	args := m.Called(ctx, account, internalAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) HatchContribute(ctx context.Context, account string, externalAmount *big.Int) error {
	args := m.Called(ctx, account, externalAmount)
	return args.Error(0)
}

func (m *MockTokenEconomy) IsHatched(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenEconomy) ClaimTokens(ctx context.Context, account string) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) TotalSupply(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) ReserveBalance(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) ReserveBalanceOf(ctx context.Context, account string) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenEconomy) InitialContribution(ctx context.Context, account string) (*domain.Contribution, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

// captureLedgerSink collects written ledger rows in order.
type captureLedgerSink struct {
	rows []*domain.LedgerRow
}

func (s *captureLedgerSink) WriteLedger(row *domain.LedgerRow) error {
	s.rows = append(s.rows, row)
	return nil
}

// captureOHLCSink collects written OHLC rows in order.
type captureOHLCSink struct {
	rows []*domain.OHLCRow
}

func (s *captureOHLCSink) WriteOHLC(row *domain.OHLCRow) error {
	s.rows = append(s.rows, row)
	return nil
}

// stubEconomyState wires a mock economy reporting fixed balances.
func stubEconomyState(economy *MockTokenEconomy, ctx context.Context, supply, reserve, fee, hatcher, locked *big.Int) {
	economy.On("TotalSupply", ctx).Return(supply, nil)
	economy.On("ReserveBalance", ctx).Return(reserve, nil)
	economy.On("ReserveBalanceOf", ctx, domain.AccountFeeRecipient).Return(fee, nil)
	economy.On("ReserveBalanceOf", ctx, domain.AccountHatcher).Return(hatcher, nil)
	economy.On("InitialContribution", ctx, domain.AccountHatcher).
		Return(&domain.Contribution{LockedInternal: locked, PaidExternal: new(big.Int)}, nil)
}

func TestRecord_BuildsDerivedFields(t *testing.T) {
	ctx := context.Background()
	economy := new(MockTokenEconomy)
	state := domain.NewSimulationState(units.ToWei(100))
	ledger := &captureLedgerSink{}

	stubEconomyState(economy, ctx,
		units.ToWei(100000), units.ToWei(150000),
		units.ToWei(10), units.ToWei(20), units.ToWei(50000))

	r := NewRecorder(economy, state, decimal.NewFromFloat(0.02),
		[]domain.LedgerSink{ledger}, nil, nil)

	p := domain.NewParticipant(7, domain.RoleSubscriber, 1, 5)
	tick := domain.Tick{Month: 1, Date: 5, Day: 5}

	row, err := r.Record(ctx, tick, p, domain.TagSubscriber, domain.DirectionBuy,
		units.ToWei(600), units.ToWei(400))
	require.NoError(t, err)
	require.Len(t, ledger.rows, 1)
	assert.Same(t, row, ledger.rows[0])

	assert.Equal(t, 1, row.Month)
	assert.Equal(t, 5, row.Day)
	assert.Equal(t, 7, row.ParticipantID)
	assert.Equal(t, domain.TagSubscriber, row.Role)
	assert.Equal(t, domain.DirectionBuy, row.Direction)

	// 600 external for 400 internal: rate 1.5, price 1.5 * 0.02.
	assert.True(t, row.ExchangeRate.Equal(decimal.NewFromFloat(1.5)), "got %s", row.ExchangeRate)
	assert.True(t, row.PriceFiat.Equal(decimal.NewFromFloat(0.03)), "got %s", row.PriceFiat)
	assert.True(t, state.LastExchangeRate.Equal(decimal.NewFromFloat(1.5)),
		"the published rate becomes the market rate")

	// 150000 reserve over 100000 supply.
	assert.True(t, row.ExternalInternalRatio.Equal(decimal.NewFromFloat(1.5)))

	assert.True(t, row.ExternalAmountFiat.Equal(decimal.NewFromInt(12)), "got %s", row.ExternalAmountFiat)
	assert.True(t, row.BondedExternalFiat.Equal(decimal.NewFromInt(3000)))
	// Fee recipient 10 plus hatcher 20, at rate 0.02.
	assert.True(t, row.ProjectBalanceFiat.Equal(decimal.NewFromFloat(0.6)), "got %s", row.ProjectBalanceFiat)
	assert.True(t, row.ArtistBalanceFiat.IsZero())

	assert.Zero(t, row.SupplyInternal.Cmp(units.ToWei(100000)))
	assert.Zero(t, row.BondedExternal.Cmp(units.ToWei(150000)))
	assert.Zero(t, row.LockedInternal.Cmp(units.ToWei(50000)))
}

func TestRecord_RejectsDegenerateEvents(t *testing.T) {
	ctx := context.Background()
	economy := new(MockTokenEconomy)
	state := domain.NewSimulationState(units.ToWei(100))
	r := NewRecorder(economy, state, decimal.NewFromFloat(0.02), nil, nil, nil)

	tick := domain.Tick{Month: 1, Date: 1, Day: 1}

	_, err := r.Record(ctx, tick, nil, domain.TagSubscriber, domain.DirectionBuy,
		units.ToWei(100), new(big.Int))
	assert.True(t, errors.Is(err, ErrDegenerateEvent))

	_, err = r.Record(ctx, tick, nil, domain.TagSubscriber, domain.DirectionBuy,
		nil, units.ToWei(100))
	assert.True(t, errors.Is(err, ErrDegenerateEvent))

	_, err = r.Record(ctx, tick, nil, domain.TagSubscriber, domain.DirectionSell,
		big.NewInt(-5), units.ToWei(100))
	assert.True(t, errors.Is(err, ErrDegenerateEvent))

	// No degenerate event may reach the economy queries or the sinks.
	economy.AssertNotCalled(t, "TotalSupply", mock.Anything)
}

func TestRecord_VolumeIsSupplyDelta(t *testing.T) {
	ctx := context.Background()
	economy := new(MockTokenEconomy)
	state := domain.NewSimulationState(units.ToWei(100))
	month := &captureOHLCSink{}

	economy.On("TotalSupply", ctx).Return(units.ToWei(100000), nil).Once()
	economy.On("TotalSupply", ctx).Return(units.ToWei(100500), nil).Once()
	economy.On("TotalSupply", ctx).Return(units.ToWei(100200), nil).Once()
	economy.On("ReserveBalance", ctx).Return(units.ToWei(150000), nil)
	economy.On("ReserveBalanceOf", ctx, domain.AccountFeeRecipient).Return(new(big.Int), nil)
	economy.On("ReserveBalanceOf", ctx, domain.AccountHatcher).Return(new(big.Int), nil)
	economy.On("InitialContribution", ctx, domain.AccountHatcher).
		Return(&domain.Contribution{LockedInternal: new(big.Int), PaidExternal: new(big.Int)}, nil)

	r := NewRecorder(economy, state, decimal.NewFromFloat(0.02),
		nil, []domain.OHLCSink{month}, nil)

	tick := domain.Tick{Month: 1, Date: 1, Day: 1}
	r.BeginMonth(1)

	for i := 0; i < 3; i++ {
		_, err := r.Record(ctx, tick, nil, domain.TagSpeculator, domain.DirectionBuy,
			units.ToWei(100), units.ToWei(100))
		require.NoError(t, err)
	}
	require.NoError(t, r.EndMonth(1))

	// Absolute supply deltas: 100000, then +500, then -300.
	require.Len(t, month.rows, 1)
	assert.Equal(t, int64(100000+500+300), month.rows[0].Volume)
}

func TestOHLC_MonthBucketTracksExtrema(t *testing.T) {
	ctx := context.Background()
	economy := new(MockTokenEconomy)
	state := domain.NewSimulationState(units.ToWei(100))
	month := &captureOHLCSink{}

	stubEconomyState(economy, ctx,
		units.ToWei(1000), units.ToWei(1000),
		new(big.Int), new(big.Int), new(big.Int))

	// Fiat rate 1 so the recorded price equals the exchange rate.
	r := NewRecorder(economy, state, decimal.NewFromInt(1),
		nil, []domain.OHLCSink{month}, nil)

	tick := domain.Tick{Month: 1, Date: 1, Day: 1}
	r.BeginMonth(1)

	for _, external := range []int64{2, 1, 3, 2} {
		_, err := r.Record(ctx, tick, nil, domain.TagSpeculator, domain.DirectionBuy,
			units.ToWei(external), units.ToWei(1))
		require.NoError(t, err)
	}

	state.AddArtistRevenue(units.ToWei(100))
	state.AddProjectRevenue(units.ToWei(40))
	require.NoError(t, r.EndMonth(1))

	require.Len(t, month.rows, 1)
	row := month.rows[0]
	assert.Equal(t, 1, row.Bucket)
	assert.True(t, row.Open.Equal(decimal.NewFromInt(2)), "open %s", row.Open)
	assert.True(t, row.High.Equal(decimal.NewFromInt(3)), "high %s", row.High)
	assert.True(t, row.Low.Equal(decimal.NewFromInt(1)), "low %s", row.Low)
	assert.True(t, row.Close.Equal(decimal.NewFromInt(2)), "close %s", row.Close)

	assert.True(t, row.ArtistRevenueFiat.Equal(decimal.NewFromInt(100)))
	assert.True(t, row.ProjectRevenueFiat.Equal(decimal.NewFromInt(40)))

	// The month boundary resets the revenue accumulators exactly once.
	assert.Zero(t, state.ArtistRevenueMonth.Sign())
	assert.Zero(t, state.ProjectRevenueMonth.Sign())
}

func TestOHLC_EmptyBucketCarriesPreviousClose(t *testing.T) {
	ctx := context.Background()
	economy := new(MockTokenEconomy)
	state := domain.NewSimulationState(units.ToWei(100))
	month := &captureOHLCSink{}

	stubEconomyState(economy, ctx,
		units.ToWei(1000), units.ToWei(1000),
		new(big.Int), new(big.Int), new(big.Int))

	r := NewRecorder(economy, state, decimal.NewFromInt(1),
		nil, []domain.OHLCSink{month}, nil)

	r.BeginMonth(1)
	_, err := r.Record(ctx, domain.Tick{Month: 1, Date: 1, Day: 1}, nil,
		domain.TagSpeculator, domain.DirectionBuy, units.ToWei(2), units.ToWei(1))
	require.NoError(t, err)
	require.NoError(t, r.EndMonth(1))

	// A month with no trades at all.
	r.BeginMonth(2)
	require.NoError(t, r.EndMonth(2))

	require.Len(t, month.rows, 2)
	row := month.rows[1]
	two := decimal.NewFromInt(2)
	assert.True(t, row.Open.Equal(two))
	assert.True(t, row.Close.Equal(two))
	assert.True(t, row.High.Equal(two))
	assert.True(t, row.Low.Equal(two))
	assert.Zero(t, row.Volume)
}

func TestOHLC_DayBucketsAreIndependentOfMonthBuckets(t *testing.T) {
	ctx := context.Background()
	economy := new(MockTokenEconomy)
	state := domain.NewSimulationState(units.ToWei(100))
	month := &captureOHLCSink{}
	day := &captureOHLCSink{}

	stubEconomyState(economy, ctx,
		units.ToWei(1000), units.ToWei(1000),
		new(big.Int), new(big.Int), new(big.Int))

	r := NewRecorder(economy, state, decimal.NewFromInt(1),
		nil, []domain.OHLCSink{month}, []domain.OHLCSink{day})

	r.BeginMonth(1)

	r.BeginDay(1)
	_, err := r.Record(ctx, domain.Tick{Month: 1, Date: 1, Day: 1}, nil,
		domain.TagSpeculator, domain.DirectionBuy, units.ToWei(3), units.ToWei(1))
	require.NoError(t, err)
	require.NoError(t, r.EndDay(1))

	r.BeginDay(2)
	_, err = r.Record(ctx, domain.Tick{Month: 1, Date: 2, Day: 2}, nil,
		domain.TagSpeculator, domain.DirectionBuy, units.ToWei(5), units.ToWei(1))
	require.NoError(t, err)
	require.NoError(t, r.EndDay(2))

	require.NoError(t, r.EndMonth(1))

	require.Len(t, day.rows, 2)
	assert.True(t, day.rows[0].Open.Equal(decimal.NewFromInt(3)))
	assert.True(t, day.rows[0].Close.Equal(decimal.NewFromInt(3)))
	assert.True(t, day.rows[1].Open.Equal(decimal.NewFromInt(5)))

	// The month bucket spans both days.
	require.Len(t, month.rows, 1)
	assert.True(t, month.rows[0].Open.Equal(decimal.NewFromInt(3)))
	assert.True(t, month.rows[0].Close.Equal(decimal.NewFromInt(5)))
	assert.True(t, month.rows[0].High.Equal(decimal.NewFromInt(5)))
	assert.True(t, month.rows[0].Low.Equal(decimal.NewFromInt(3)))
}
