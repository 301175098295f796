package behavior

import (
	"context"
	"fmt"
	"math/big"

	"github.com/lightstreams-network/artist-economy/internal/domain"
)

// HatcherSell claims any newly unlocked tokens for the hatcher identity
// and burns the given percentage of the resulting balance, with
// proceeds recorded as project revenue. Once both the locked and the
// spendable balance reach zero the schedule terminates naturally:
// further calls are no-ops.
func (e *Engine) HatcherSell(ctx context.Context, tick domain.Tick, percent int64) error {
	contribution, err := e.economy.InitialContribution(ctx, domain.AccountHatcher)
	if err != nil {
		return fmt.Errorf("hatcher contribution: %w", err)
	}
	if contribution.LockedInternal.Sign() > 0 {
		if _, err := e.economy.ClaimTokens(ctx, domain.AccountHatcher); err != nil {
			return fmt.Errorf("hatcher claim: %w", err)
		}
	}

	balance, err := e.economy.BalanceOf(ctx, domain.AccountHatcher)
	if err != nil {
		return fmt.Errorf("hatcher balance: %w", err)
	}

	sellAmount := new(big.Int).Mul(balance, big.NewInt(percent))
	sellAmount.Div(sellAmount, big.NewInt(100))
	if sellAmount.Sign() == 0 {
		e.log.Debug("hatcher has nothing to sell",
			"month", tick.Month, "day", tick.Day)
		return nil
	}

	proceeds, err := e.economy.Burn(ctx, domain.AccountHatcher, sellAmount)
	if err != nil {
		return fmt.Errorf("hatcher burn: %w", err)
	}
	e.state.AddProjectRevenue(proceeds)

	_, err = e.recorder.Record(ctx, tick, nil, domain.TagHatcher, domain.DirectionSell, proceeds, sellAmount)
	return err
}
