package behavior

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
)

// SpeculatorAct runs the speculator policy for one simulated day: a
// randomized purchase on the activation day, then from the sell month
// onward a sell attempt gated on the target exchange rate.
func (e *Engine) SpeculatorAct(ctx context.Context, p *domain.Participant, tick domain.Tick) error {
	if p.Month == tick.Month && p.BuyDay == tick.Date {
		if err := e.speculatorBuy(ctx, p, tick); err != nil {
			return err
		}
	}

	if p.SellMonth == tick.Month || p.Selling {
		p.Selling = true
		return e.speculatorSell(ctx, p, tick)
	}
	return nil
}

func (e *Engine) speculatorBuy(ctx context.Context, p *domain.Participant, tick domain.Tick) error {
	buyAmount := units.ToWei(e.specBuyAmounts.Sample(e.rng))

	purchased, err := e.economy.Mint(ctx, domain.AccountBuyer, buyAmount)
	if err != nil {
		return fmt.Errorf("speculator %d mint: %w", p.ID, err)
	}

	if !p.Active {
		p.Active = true
		e.state.ActiveSpeculators++
	}

	if _, err := e.recorder.Record(ctx, tick, p, domain.TagSpeculator, domain.DirectionBuy, buyAmount, purchased); err != nil {
		return err
	}

	p.Tokens = new(big.Int).Set(purchased)
	// The reference rate speculator gating compares against is the rate
	// observed at purchase time, which the recorder just published.
	p.EntryRate = e.state.LastExchangeRate
	p.Selling = false
	return nil
}

// speculatorSell sells a randomized fraction of holdings once the
// observed market rate exceeds the target. Zero holdings and already
// sold positions are expected steady-state no-ops.
func (e *Engine) speculatorSell(ctx context.Context, p *domain.Participant, tick domain.Tick) error {
	if p.Tokens.Sign() <= 0 || p.Sold {
		return nil
	}

	target := p.EntryRate.Mul(decimal.NewFromInt(1).Add(p.TargetGain))
	if e.state.LastExchangeRate.LessThanOrEqual(target) {
		return nil // wait for the market to move past the target
	}

	percent := e.specSellPercents.Sample(e.rng)
	sellAmount := new(big.Int).Mul(p.Tokens, big.NewInt(percent))
	sellAmount.Div(sellAmount, big.NewInt(100))
	if sellAmount.Sign() == 0 {
		return nil
	}
	if sellAmount.Cmp(p.Tokens) > 0 {
		e.log.Warn("speculator sell amount exceeds holdings, skipping",
			"participant", p.ID, "month", tick.Month, "day", tick.Day)
		return nil
	}

	feeBefore, err := e.economy.ReserveBalanceOf(ctx, domain.AccountFeeRecipient)
	if err != nil {
		return fmt.Errorf("speculator %d fee balance: %w", p.ID, err)
	}

	proceeds, err := e.economy.Burn(ctx, domain.AccountBuyer, sellAmount)
	if err != nil {
		return fmt.Errorf("speculator %d burn: %w", p.ID, err)
	}
	p.Tokens.Sub(p.Tokens, sellAmount)

	feeAfter, err := e.economy.ReserveBalanceOf(ctx, domain.AccountFeeRecipient)
	if err != nil {
		return fmt.Errorf("speculator %d fee balance: %w", p.ID, err)
	}
	e.state.AddProjectRevenue(new(big.Int).Sub(feeAfter, feeBefore))

	if _, err := e.recorder.Record(ctx, tick, p, domain.TagSpeculator, domain.DirectionSell, proceeds, sellAmount); err != nil {
		return err
	}

	p.Sold = true
	p.Selling = false
	return nil
}
