package behavior

import (
	"context"
	"fmt"
	"math/big"

	"github.com/lightstreams-network/artist-economy/internal/config"
	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// SubscriberAct runs the subscriber policy for one due day:
//  1. Top up when the balance after one subscription payment would fall
//     below the minimum retained balance (or there is no balance yet).
//     The very first top-up is a deposit only and does not pay the
//     artist; the subscriber becomes active and stops there.
//  2. Burn one subscription price back through the economy; the net
//     proceeds are artist revenue, the fee delta is project revenue.
//  3. Halve the subscription price for all subsequent periods once the
//     configured adaptive-pricing trigger fires.
func (e *Engine) SubscriberAct(ctx context.Context, p *domain.Participant, tick domain.Tick) error {
	afterPayment := new(big.Int).Sub(p.Tokens, e.state.SubscriptionPrice)
	if p.Tokens.Sign() == 0 || afterPayment.Cmp(e.minRetainedBalance) < 0 {
		firstAction, err := e.subscriberTopUp(ctx, p, tick)
		if err != nil {
			return err
		}
		if firstAction {
			return nil
		}
	}

	return e.subscriberPay(ctx, p, tick)
}

// subscriberTopUp mints a randomized purchase and reports whether this
// was the subscriber's first-ever action.
func (e *Engine) subscriberTopUp(ctx context.Context, p *domain.Participant, tick domain.Tick) (bool, error) {
	topUpAmount := units.ToWei(e.topUpAmounts.Sample(e.rng))

	purchased, err := e.economy.Mint(ctx, domain.AccountBuyer, topUpAmount)
	if err != nil {
		return false, fmt.Errorf("subscriber %d top-up mint: %w", p.ID, err)
	}
	p.Tokens.Add(p.Tokens, purchased)

	if _, err := e.recorder.Record(ctx, tick, p, domain.TagSubscriber, domain.DirectionBuy, topUpAmount, purchased); err != nil {
		return false, err
	}

	if !p.Active {
		p.Active = true
		e.state.ActiveSubscribers++
		return true, nil
	}
	return false, nil
}

func (e *Engine) subscriberPay(ctx context.Context, p *domain.Participant, tick domain.Tick) error {
	sellAmount := new(big.Int).Set(e.state.SubscriptionPrice)

	// Pre-check: never submit a burn exceeding current holdings.
	if p.Tokens.Cmp(sellAmount) < 0 {
		e.log.Warn("subscriber holdings below subscription price, skipping payment",
			"participant", p.ID, "month", tick.Month, "day", tick.Day)
		return nil
	}

	feeBefore, err := e.economy.ReserveBalanceOf(ctx, domain.AccountFeeRecipient)
	if err != nil {
		return fmt.Errorf("subscriber %d fee balance: %w", p.ID, err)
	}

	proceeds, err := e.economy.Burn(ctx, domain.AccountBuyer, sellAmount)
	if err != nil {
		return fmt.Errorf("subscriber %d subscription burn: %w", p.ID, err)
	}
	p.Tokens.Sub(p.Tokens, sellAmount)

	feeAfter, err := e.economy.ReserveBalanceOf(ctx, domain.AccountFeeRecipient)
	if err != nil {
		return fmt.Errorf("subscriber %d fee balance: %w", p.ID, err)
	}

	e.state.AddArtistRevenue(proceeds)
	e.state.AddProjectRevenue(new(big.Int).Sub(feeAfter, feeBefore))

	row, err := e.recorder.Record(ctx, tick, p, domain.TagArtist, domain.DirectionSell, proceeds, sellAmount)
	if err != nil {
		return err
	}

	e.applyPriceHalving(proceeds, row.SupplyInternal)
	return nil
}

// applyPriceHalving fires the adaptive-pricing rule. Which observation
// gates it differs between simulation variants, so the trigger is
// configuration, not policy.
func (e *Engine) applyPriceHalving(proceeds, supply *big.Int) {
	switch e.halvingTrigger {
	case config.HalvingTriggerProceeds:
		if proceeds.Cmp(e.maxSaleProceeds) > 0 {
			e.state.HalveSubscriptionPrice()
		}
	case config.HalvingTriggerSupply:
		if supply.Cmp(e.supplyThreshold) > 0 {
			e.state.HalveSubscriptionPrice()
		}
	}
}
