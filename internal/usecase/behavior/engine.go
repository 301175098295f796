package behavior

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"math/rand"

	"github.com/lightstreams-network/artist-economy/internal/config"
	"github.com/lightstreams-network/artist-economy/internal/dist"
	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// Recorder turns one buy/sell event plus externally-observed economy
// state into a ledger row. Implemented by the metrics aggregator.
type Recorder interface {
	Record(ctx context.Context, tick domain.Tick, p *domain.Participant,
		role domain.RoleTag, direction domain.Direction,
		externalWei, internalWei *big.Int) (*domain.LedgerRow, error)
}

// Engine holds the per-role behavior policies. Each policy is invoked
// once per simulated day for every participant whose schedule matches
// that day; all randomness flows through the injected source.
type Engine struct {
	economy  domain.TokenEconomy
	recorder Recorder
	state    *domain.SimulationState
	rng      *rand.Rand
	log      *slog.Logger

	topUpAmounts     *dist.Weighted
	specBuyAmounts   *dist.Weighted
	specSellPercents *dist.Weighted

	minRetainedBalance *big.Int
	halvingTrigger     string
	maxSaleProceeds    *big.Int
	supplyThreshold    *big.Int
}

// NewEngine creates a behavior engine from the run configuration.
func NewEngine(
	economy domain.TokenEconomy,
	recorder Recorder,
	state *domain.SimulationState,
	cfg *config.Config,
	rng *rand.Rand,
	log *slog.Logger,
) (*Engine, error) {
	topUp, err := newWeighted(cfg.Behavior.TopUpAmounts)
	if err != nil {
		return nil, fmt.Errorf("topup amounts: %w", err)
	}
	specBuy, err := newWeighted(cfg.Behavior.SpeculatorBuyAmounts)
	if err != nil {
		return nil, fmt.Errorf("speculator buy amounts: %w", err)
	}
	specSell, err := newWeighted(cfg.Behavior.SpeculatorSellPercents)
	if err != nil {
		return nil, fmt.Errorf("speculator sell percents: %w", err)
	}

	return &Engine{
		economy:            economy,
		recorder:           recorder,
		state:              state,
		rng:                rng,
		log:                log,
		topUpAmounts:       topUp,
		specBuyAmounts:     specBuy,
		specSellPercents:   specSell,
		minRetainedBalance: units.ToWei(cfg.Subscription.MinRetainedBalance),
		halvingTrigger:     cfg.Subscription.HalvingTrigger,
		maxSaleProceeds:    units.ToWei(cfg.Subscription.MaxSaleProceeds),
		supplyThreshold:    units.ToWei(cfg.Subscription.SupplyThreshold),
	}, nil
}

func newWeighted(values []config.WeightedValue) (*dist.Weighted, error) {
	outcomes := make([]dist.Outcome, len(values))
	for i, wv := range values {
		outcomes[i] = dist.Outcome{Value: wv.Value, Weight: wv.Weight}
	}
	return dist.NewWeighted(outcomes...)
}
