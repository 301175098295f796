// Package economy provides an in-process reference implementation of
// the bonding-curve token contract: a hatch phase at a fixed initial
// price with a theta split to the funding pool, followed by
// constant-reserve-ratio mint/burn with a friction fee routed to the
// fee recipient. It exists so the simulator runs without external
// contracts; no numerical exactness against any specific on-chain
// formula is promised.
package economy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/lightstreams-network/artist-economy/internal/config"
	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

const ppmDenominator = 1000000.0

// Vesting unlocks are claim-driven: each claim releases one month's
// share of the originally locked amount, derived from the configured
// vesting duration at ~30 days per month.
const secondsPerMonth = 2592000

var (
	// ErrNotHatched is returned by trades attempted before the hatch
	// threshold is reached.
	ErrNotHatched = errors.New("economy is not hatched yet")

	// ErrInsufficientBalance is returned by burns exceeding the
	// account's internal token balance.
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

var _ domain.TokenEconomy = (*Curve)(nil)

type contribution struct {
	originalLocked *big.Int
	locked         *big.Int
	paid           *big.Int
}

// Curve is the reference token economy. It is not safe for concurrent
// use; the simulation calls it from a single sequence.
type Curve struct {
	reserveRatio  float64
	theta         float64
	initialPrice  float64
	friction      float64
	hatchLimit    *big.Int
	minContrib    *big.Int
	vestingMonths int64

	hatched     bool
	contributed *big.Int

	reserve *big.Int // external asset bonded in the curve
	supply  *big.Int // total internal token supply

	balances        map[string]*big.Int
	reserveBalances map[string]*big.Int
	contributions   map[string]*contribution
}

// New creates a curve from the opaque bonding-curve parameters plus the
// hatch threshold in external display units.
func New(cfg config.CurveConfig, hatchLimit int64) *Curve {
	vestingMonths := cfg.VestingDurationSeconds / secondsPerMonth
	if vestingMonths < 1 {
		vestingMonths = 1
	}

	return &Curve{
		reserveRatio:  float64(cfg.ReserveRatioPPM) / ppmDenominator,
		theta:         float64(cfg.ThetaPPM) / ppmDenominator,
		initialPrice:  float64(cfg.P0PPM) / ppmDenominator,
		friction:      float64(cfg.FrictionPPM) / ppmDenominator,
		hatchLimit:    units.ToWei(hatchLimit),
		minContrib:    units.ToWei(cfg.MinContribution),
		vestingMonths: vestingMonths,

		contributed:     new(big.Int),
		reserve:         new(big.Int),
		supply:          new(big.Int),
		balances:        make(map[string]*big.Int),
		reserveBalances: make(map[string]*big.Int),
		contributions:   make(map[string]*contribution),
	}
}

// HatchContribute locks externalAmount at the fixed initial price. The
// theta share of the contribution goes to the funding pool, the rest is
// bonded as reserve. Minted tokens stay locked under vesting.
func (c *Curve) HatchContribute(ctx context.Context, account string, externalAmount *big.Int) error {
	if c.hatched {
		return errors.New("hatch phase is already over")
	}
	if externalAmount.Cmp(c.minContrib) < 0 {
		return fmt.Errorf("contribution below minimum of %s", c.minContrib.String())
	}

	minted := units.FromFloat(units.Float(externalAmount) / c.initialPrice)
	poolShare := units.FromFloat(units.Float(externalAmount) * c.theta)
	bonded := new(big.Int).Sub(externalAmount, poolShare)

	c.supply.Add(c.supply, minted)
	c.reserve.Add(c.reserve, bonded)
	c.creditReserve(domain.AccountFundingPool, poolShare)
	c.contributed.Add(c.contributed, externalAmount)

	entry, ok := c.contributions[account]
	if !ok {
		entry = &contribution{
			originalLocked: new(big.Int),
			locked:         new(big.Int),
			paid:           new(big.Int),
		}
		c.contributions[account] = entry
	}
	entry.originalLocked.Add(entry.originalLocked, minted)
	entry.locked.Add(entry.locked, minted)
	entry.paid.Add(entry.paid, externalAmount)

	if c.contributed.Cmp(c.hatchLimit) >= 0 {
		c.hatched = true
	}
	return nil
}

// IsHatched reports whether the hatch threshold has been reached.
func (c *Curve) IsHatched(ctx context.Context) (bool, error) {
	return c.hatched, nil
}

// ClaimTokens releases one vesting share of the account's locked
// contribution into its spendable balance. A claim with nothing locked
// is a no-op returning zero.
func (c *Curve) ClaimTokens(ctx context.Context, account string) (*big.Int, error) {
	entry, ok := c.contributions[account]
	if !ok || entry.locked.Sign() == 0 {
		return new(big.Int), nil
	}

	unlock := new(big.Int).Div(entry.originalLocked, big.NewInt(c.vestingMonths))
	if unlock.Sign() == 0 || unlock.Cmp(entry.locked) > 0 {
		unlock = new(big.Int).Set(entry.locked)
	}

	entry.locked.Sub(entry.locked, unlock)
	c.creditBalance(account, unlock)
	return unlock, nil
}

// Mint buys tokens with externalAmount of reserve asset along the
// constant-reserve-ratio curve and credits them to the account.
func (c *Curve) Mint(ctx context.Context, account string, externalAmount *big.Int) (*big.Int, error) {
	if !c.hatched {
		return nil, ErrNotHatched
	}
	if externalAmount.Sign() <= 0 {
		return nil, errors.New("mint amount must be positive")
	}

	deposit := units.Float(externalAmount)
	reserve := units.Float(c.reserve)
	supply := units.Float(c.supply)

	mintedTokens := supply * (math.Pow(1+deposit/reserve, c.reserveRatio) - 1)
	minted := units.FromFloat(mintedTokens)
	if minted.Sign() <= 0 {
		return nil, errors.New("mint returned no tokens")
	}

	c.reserve.Add(c.reserve, externalAmount)
	c.supply.Add(c.supply, minted)
	c.creditBalance(account, minted)
	return minted, nil
}

// Burn sells internalAmount of the account's tokens back to the curve.
// The friction fee is routed to the fee recipient; the net external
// proceeds are credited to the account and returned.
func (c *Curve) Burn(ctx context.Context, account string, internalAmount *big.Int) (*big.Int, error) {
	if !c.hatched {
		return nil, ErrNotHatched
	}
	balance := c.balanceOf(account)
	if balance.Cmp(internalAmount) < 0 {
		return nil, fmt.Errorf("%w: have %s, need %s",
			ErrInsufficientBalance, balance.String(), internalAmount.String())
	}

	sold := units.Float(internalAmount)
	reserve := units.Float(c.reserve)
	supply := units.Float(c.supply)

	returned := reserve * (1 - math.Pow(1-sold/supply, 1/c.reserveRatio))
	gross := units.FromFloat(returned)
	if gross.Cmp(c.reserve) > 0 {
		gross = new(big.Int).Set(c.reserve)
	}

	fee := units.FromFloat(returned * c.friction)
	net := new(big.Int).Sub(gross, fee)

	c.reserve.Sub(c.reserve, gross)
	c.supply.Sub(c.supply, internalAmount)
	balance.Sub(balance, internalAmount)

	c.creditReserve(domain.AccountFeeRecipient, fee)
	c.creditReserve(account, net)
	return net, nil
}

// TotalSupply returns the current total internal token supply.
func (c *Curve) TotalSupply(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.supply), nil
}

// BalanceOf returns the internal token balance of the account.
func (c *Curve) BalanceOf(ctx context.Context, account string) (*big.Int, error) {
	return new(big.Int).Set(c.balanceOf(account)), nil
}

// ReserveBalance returns the external reserve bonded in the curve.
func (c *Curve) ReserveBalance(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.reserve), nil
}

// ReserveBalanceOf returns the external asset balance of an account
// outside the curve.
func (c *Curve) ReserveBalanceOf(ctx context.Context, account string) (*big.Int, error) {
	if balance, ok := c.reserveBalances[account]; ok {
		return new(big.Int).Set(balance), nil
	}
	return new(big.Int), nil
}

// InitialContribution returns the hatch contribution recorded for the
// account, zero-valued when the account never contributed.
func (c *Curve) InitialContribution(ctx context.Context, account string) (*domain.Contribution, error) {
	entry, ok := c.contributions[account]
	if !ok {
		return &domain.Contribution{
			LockedInternal: new(big.Int),
			PaidExternal:   new(big.Int),
		}, nil
	}
	return &domain.Contribution{
		LockedInternal: new(big.Int).Set(entry.locked),
		PaidExternal:   new(big.Int).Set(entry.paid),
	}, nil
}

func (c *Curve) balanceOf(account string) *big.Int {
	balance, ok := c.balances[account]
	if !ok {
		balance = new(big.Int)
		c.balances[account] = balance
	}
	return balance
}

func (c *Curve) creditBalance(account string, amount *big.Int) {
	c.balanceOf(account).Add(c.balanceOf(account), amount)
}

func (c *Curve) creditReserve(account string, amount *big.Int) {
	balance, ok := c.reserveBalances[account]
	if !ok {
		balance = new(big.Int)
		c.reserveBalances[account] = balance
	}
	balance.Add(balance, amount)
}
