package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// SimulationState is the shared mutable run state, passed explicitly
// into every behavior-engine and aggregator call. It replaces the
// module-level counters of the original simulation; there are no
// process-wide singletons. Mutated only by the single sequential caller.
type SimulationState struct {
	// SubscriptionPrice is the current per-period subscription price in
	// smallest internal units. It halves under the adaptive-pricing rule.
	SubscriptionPrice *big.Int

	// Running counts of participants that have become active.
	ActiveSubscribers int
	ActiveSpeculators int

	// LastExchangeRate is the exchange rate of the most recent recorded
	// event, the market rate speculator sell gating is checked against.
	LastExchangeRate decimal.Decimal

	// ArtistBalance is the cumulative external proceeds attributed to
	// the artist over the whole run.
	ArtistBalance *big.Int

	// Monthly revenue accumulators, reset exactly once per month boundary.
	ArtistRevenueMonth  *big.Int
	ProjectRevenueMonth *big.Int

	// RaiseInternal is the internal supply minted during the hatch.
	RaiseInternal *big.Int
}

// NewSimulationState creates run state with the given initial
// subscription price in smallest internal units.
func NewSimulationState(subscriptionPrice *big.Int) *SimulationState {
	return &SimulationState{
		SubscriptionPrice:   new(big.Int).Set(subscriptionPrice),
		ArtistBalance:       new(big.Int),
		ArtistRevenueMonth:  new(big.Int),
		ProjectRevenueMonth: new(big.Int),
		RaiseInternal:       new(big.Int),
	}
}

// AddArtistRevenue credits external proceeds to the artist, both the
// cumulative balance and the current month's accumulator.
func (s *SimulationState) AddArtistRevenue(externalWei *big.Int) {
	s.ArtistBalance.Add(s.ArtistBalance, externalWei)
	s.ArtistRevenueMonth.Add(s.ArtistRevenueMonth, externalWei)
}

// AddProjectRevenue credits external proceeds to the project.
func (s *SimulationState) AddProjectRevenue(externalWei *big.Int) {
	s.ProjectRevenueMonth.Add(s.ProjectRevenueMonth, externalWei)
}

// ResetMonthlyRevenue zeroes the monthly revenue accumulators.
func (s *SimulationState) ResetMonthlyRevenue() {
	s.ArtistRevenueMonth = new(big.Int)
	s.ProjectRevenueMonth = new(big.Int)
}

// HalveSubscriptionPrice applies the adaptive-pricing rule for all
// subsequent periods.
func (s *SimulationState) HalveSubscriptionPrice() {
	s.SubscriptionPrice = new(big.Int).Div(s.SubscriptionPrice, big.NewInt(2))
}
