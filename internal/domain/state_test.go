package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddArtistRevenue_AccumulatesBalanceAndMonth(t *testing.T) {
	s := NewSimulationState(big.NewInt(100))

	s.AddArtistRevenue(big.NewInt(40))
	s.AddArtistRevenue(big.NewInt(60))

	assert.Zero(t, s.ArtistBalance.Cmp(big.NewInt(100)))
	assert.Zero(t, s.ArtistRevenueMonth.Cmp(big.NewInt(100)))
}

func TestResetMonthlyRevenue_KeepsCumulativeBalance(t *testing.T) {
	s := NewSimulationState(big.NewInt(100))
	s.AddArtistRevenue(big.NewInt(70))
	s.AddProjectRevenue(big.NewInt(30))

	s.ResetMonthlyRevenue()

	assert.Zero(t, s.ArtistRevenueMonth.Sign())
	assert.Zero(t, s.ProjectRevenueMonth.Sign())
	assert.Zero(t, s.ArtistBalance.Cmp(big.NewInt(70)), "cumulative balance survives the monthly reset")
}

func TestHalveSubscriptionPrice(t *testing.T) {
	s := NewSimulationState(big.NewInt(100))

	s.HalveSubscriptionPrice()
	assert.Zero(t, s.SubscriptionPrice.Cmp(big.NewInt(50)))

	s.HalveSubscriptionPrice()
	assert.Zero(t, s.SubscriptionPrice.Cmp(big.NewInt(25)))
}
