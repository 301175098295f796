package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are in
// domain. A failing validation is fatal and aborts the run before the
// simulation starts.
func (c *Config) Validate() error {
	if c.Simulation.Year < 1 {
		return errors.New("simulation.year must be positive")
	}
	if c.Simulation.Months < 1 {
		return errors.New("simulation.months must be at least 1")
	}
	if c.Simulation.FiatRate <= 0 {
		return errors.New("simulation.fiat_rate must be positive")
	}

	if c.Cohort.InitialSubscribers < 0 {
		return errors.New("cohort.initial_subscribers cannot be negative")
	}
	if c.Cohort.InitialSpeculators < 0 {
		return errors.New("cohort.initial_speculators cannot be negative")
	}
	if c.Cohort.SubscriberGrowth < 0 {
		return errors.New("cohort.subscriber_growth cannot be negative")
	}
	if c.Cohort.SpeculatorGrowth < 0 {
		return errors.New("cohort.speculator_growth cannot be negative")
	}
	if c.Cohort.MaxSellOffsetMonths < 1 {
		return errors.New("cohort.max_sell_offset_months must be at least 1")
	}
	if c.Cohort.TargetGainMin < 0 || c.Cohort.TargetGainMax < c.Cohort.TargetGainMin {
		return errors.New("cohort target gain range must satisfy 0 <= min <= max")
	}
	if c.Cohort.Taper != TaperNone && c.Cohort.Taper != TaperHalve {
		return fmt.Errorf("cohort.taper must be %q or %q", TaperNone, TaperHalve)
	}

	if c.Subscription.InitialPrice <= 0 {
		return errors.New("subscription.initial_price must be positive")
	}
	if c.Subscription.MinRetainedBalance < 0 {
		return errors.New("subscription.min_retained_balance cannot be negative")
	}
	switch c.Subscription.HalvingTrigger {
	case HalvingTriggerProceeds:
		if c.Subscription.MaxSaleProceeds <= 0 {
			return errors.New("subscription.max_sale_proceeds must be positive")
		}
	case HalvingTriggerSupply:
		if c.Subscription.SupplyThreshold <= 0 {
			return errors.New("subscription.supply_threshold must be positive")
		}
	default:
		return fmt.Errorf("subscription.halving_trigger must be %q or %q",
			HalvingTriggerProceeds, HalvingTriggerSupply)
	}

	if err := validateDistribution("behavior.topup_amounts", c.Behavior.TopUpAmounts); err != nil {
		return err
	}
	if err := validateDistribution("behavior.speculator_buy_amounts", c.Behavior.SpeculatorBuyAmounts); err != nil {
		return err
	}
	if err := validateDistribution("behavior.speculator_sell_percents", c.Behavior.SpeculatorSellPercents); err != nil {
		return err
	}
	for _, wv := range c.Behavior.SpeculatorSellPercents {
		if wv.Value < 1 || wv.Value > 100 {
			return errors.New("behavior.speculator_sell_percents values must be in [1, 100]")
		}
	}

	if c.Hatch.Limit <= 0 {
		return errors.New("hatch.limit must be positive")
	}
	if c.Hatch.SellPercent < 1 || c.Hatch.SellPercent > 100 {
		return errors.New("hatch.sell_percent must be in [1, 100]")
	}
	if c.Hatch.BeginSellMonth < 1 {
		return errors.New("hatch.begin_sell_month must be at least 1")
	}

	if c.Curve.ReserveRatioPPM <= 0 || c.Curve.ReserveRatioPPM >= 1000000 {
		return errors.New("curve.reserve_ratio_ppm must be in (0, 1000000)")
	}
	if c.Curve.ThetaPPM < 0 || c.Curve.ThetaPPM >= 1000000 {
		return errors.New("curve.theta_ppm must be in [0, 1000000)")
	}
	if c.Curve.FrictionPPM < 0 || c.Curve.FrictionPPM >= 1000000 {
		return errors.New("curve.friction_ppm must be in [0, 1000000)")
	}
	if c.Curve.P0PPM <= 0 {
		return errors.New("curve.p0_ppm must be positive")
	}

	return nil
}

func validateDistribution(name string, values []WeightedValue) error {
	if len(values) == 0 {
		return fmt.Errorf("%s must have at least one entry", name)
	}
	for _, wv := range values {
		if wv.Value <= 0 {
			return fmt.Errorf("%s values must be positive", name)
		}
		if wv.Weight <= 0 {
			return fmt.Errorf("%s weights must be positive", name)
		}
	}
	return nil
}
