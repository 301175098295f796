package domain

import (
	"context"
	"math/big"
)

// Contribution is the initial hatch-phase contribution recorded for one
// account: the internal tokens still locked under vesting and the
// external amount paid for them.
type Contribution struct {
	LockedInternal *big.Int
	PaidExternal   *big.Int
}

// TokenEconomy is the bonding-curve token contract the simulation trades
// against. The simulation is agnostic to the curve's internal math; it
// only observes externally reported balances and supply. All amounts are
// non-negative arbitrary-precision integers in the smallest unit.
type TokenEconomy interface {
	// Mint buys internal tokens with externalAmount of reserve asset and
	// returns the internal amount received by the account.
	Mint(ctx context.Context, account string, externalAmount *big.Int) (*big.Int, error)

	// Burn sells internalAmount of tokens back to the curve and returns
	// the external amount received by the account, net of any fee.
	Burn(ctx context.Context, account string, internalAmount *big.Int) (*big.Int, error)

	// HatchContribute locks externalAmount into the hatch phase for the
	// account.
	HatchContribute(ctx context.Context, account string, externalAmount *big.Int) error

	// IsHatched reports whether the hatch threshold has been reached.
	IsHatched(ctx context.Context) (bool, error)

	// ClaimTokens transfers any newly unlocked tokens to the account and
	// returns the claimed internal amount. Claiming with nothing unlocked
	// is a no-op returning zero.
	ClaimTokens(ctx context.Context, account string) (*big.Int, error)

	// TotalSupply returns the current total internal token supply.
	TotalSupply(ctx context.Context) (*big.Int, error)

	// BalanceOf returns the internal token balance of the account.
	BalanceOf(ctx context.Context, account string) (*big.Int, error)

	// ReserveBalance returns the external reserve held by the curve.
	ReserveBalance(ctx context.Context) (*big.Int, error)

	// ReserveBalanceOf returns the external asset balance of an account
	// outside the curve (e.g. the fee recipient or the hatcher).
	ReserveBalanceOf(ctx context.Context, account string) (*big.Int, error)

	// InitialContribution returns the hatch contribution recorded for the
	// account.
	InitialContribution(ctx context.Context, account string) (*Contribution, error)
}
