package config

// Default values for optional configuration fields. The numbers mirror
// the reference economy run: an 18 month horizon, a 250k reserve hatch
// and a 100 token subscription.
const (
	DefaultYear   = 2020
	DefaultMonths = 18
	DefaultSeed   = 1

	DefaultFiatRate = 0.02

	DefaultInitialSubscribers  = 30
	DefaultInitialSpeculators  = 1
	DefaultSubscriberGrowth    = 0.20
	DefaultSpeculatorGrowth    = 0.35
	DefaultMaxSellOffsetMonths = 6
	DefaultTargetGainMin       = 0.20
	DefaultTargetGainMax       = 1.70
	DefaultTaper               = TaperNone

	DefaultInitialPrice       = 100
	DefaultMinRetainedBalance = 100
	DefaultHalvingTrigger     = HalvingTriggerProceeds
	DefaultMaxSaleProceeds    = 500
	DefaultSupplyThreshold    = 200000

	DefaultHatchLimit            = 250000
	DefaultHatcherSellPercent    = 3
	DefaultHatcherBeginSellMonth = 12

	DefaultReserveRatioPPM = 142857
	DefaultThetaPPM        = 400000
	DefaultP0PPM           = 2500000
	DefaultFrictionPPM     = 100000
	DefaultHatchDuration   = 3024000
	DefaultVestingDuration = 15552000 // six 30-day months
	DefaultMinContribution = 1
)

// Policy names used across the config surface.
const (
	TaperNone  = "none"
	TaperHalve = "halve"

	HalvingTriggerProceeds = "proceeds"
	HalvingTriggerSupply   = "supply"
)

func defaultTopUpAmounts() []WeightedValue {
	return []WeightedValue{
		{Value: 500, Weight: 50},
		{Value: 1000, Weight: 30},
		{Value: 2000, Weight: 20},
	}
}

func defaultSpeculatorBuyAmounts() []WeightedValue {
	return []WeightedValue{
		{Value: 5000, Weight: 50},
		{Value: 10000, Weight: 35},
		{Value: 20000, Weight: 15},
	}
}

func defaultSpeculatorSellPercents() []WeightedValue {
	return []WeightedValue{
		{Value: 50, Weight: 50},
		{Value: 70, Weight: 20},
		{Value: 100, Weight: 30},
	}
}

// Default returns the fully populated reference run configuration.
// Load decodes a config file over this value, so keys absent from the
// file keep their defaults while an explicitly configured zero (for
// fields where zero is in domain, e.g. growth rates or cohort sizes)
// survives as zero.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Year:     DefaultYear,
			Months:   DefaultMonths,
			Seed:     DefaultSeed,
			FiatRate: DefaultFiatRate,
		},
		Cohort: CohortConfig{
			InitialSubscribers:  DefaultInitialSubscribers,
			InitialSpeculators:  DefaultInitialSpeculators,
			SubscriberGrowth:    DefaultSubscriberGrowth,
			SpeculatorGrowth:    DefaultSpeculatorGrowth,
			MaxSellOffsetMonths: DefaultMaxSellOffsetMonths,
			TargetGainMin:       DefaultTargetGainMin,
			TargetGainMax:       DefaultTargetGainMax,
			Taper:               DefaultTaper,
		},
		Subscription: SubscriptionConfig{
			InitialPrice:       DefaultInitialPrice,
			MinRetainedBalance: DefaultMinRetainedBalance,
			HalvingTrigger:     DefaultHalvingTrigger,
			MaxSaleProceeds:    DefaultMaxSaleProceeds,
			SupplyThreshold:    DefaultSupplyThreshold,
		},
		Behavior: BehaviorConfig{
			TopUpAmounts:           defaultTopUpAmounts(),
			SpeculatorBuyAmounts:   defaultSpeculatorBuyAmounts(),
			SpeculatorSellPercents: defaultSpeculatorSellPercents(),
		},
		Hatch: HatchConfig{
			Limit:          DefaultHatchLimit,
			SellPercent:    DefaultHatcherSellPercent,
			BeginSellMonth: DefaultHatcherBeginSellMonth,
		},
		Curve: CurveConfig{
			ReserveRatioPPM:        DefaultReserveRatioPPM,
			ThetaPPM:               DefaultThetaPPM,
			P0PPM:                  DefaultP0PPM,
			FrictionPPM:            DefaultFrictionPPM,
			HatchDurationSeconds:   DefaultHatchDuration,
			VestingDurationSeconds: DefaultVestingDuration,
			MinContribution:        DefaultMinContribution,
		},
	}
}
