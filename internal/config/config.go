package config

// Config is the full configuration surface of one simulation run,
// loaded from a YAML file with ${VAR} environment expansion.
type Config struct {
	Simulation   SimulationConfig   `yaml:"simulation"`
	Cohort       CohortConfig       `yaml:"cohort"`
	Subscription SubscriptionConfig `yaml:"subscription"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Hatch        HatchConfig        `yaml:"hatch"`
	Curve        CurveConfig        `yaml:"curve"`
	Output       OutputConfig       `yaml:"output"`
	Database     DatabaseConfig     `yaml:"database"`
}

// SimulationConfig holds the clock and valuation parameters.
type SimulationConfig struct {
	Year     int     `yaml:"year"`
	Months   int     `yaml:"months"`
	Seed     int64   `yaml:"seed"`
	FiatRate float64 `yaml:"fiat_rate"` // reserve display unit -> fiat
}

// CohortConfig drives synthetic population generation.
type CohortConfig struct {
	InitialSubscribers int     `yaml:"initial_subscribers"`
	InitialSpeculators int     `yaml:"initial_speculators"`
	SubscriberGrowth   float64 `yaml:"subscriber_growth"`
	SpeculatorGrowth   float64 `yaml:"speculator_growth"`

	// Speculator sell month is drawn as activation month plus a uniform
	// offset in [1, MaxSellOffsetMonths], capped at the horizon when
	// CapSellMonth is set.
	MaxSellOffsetMonths int  `yaml:"max_sell_offset_months"`
	CapSellMonth        bool `yaml:"cap_sell_month"`

	TargetGainMin float64 `yaml:"target_gain_min"`
	TargetGainMax float64 `yaml:"target_gain_max"`

	// Taper is the growth-deceleration policy applied to monthly new
	// entrants beyond the first year: "none" or "halve".
	Taper string `yaml:"taper"`
}

// SubscriptionConfig holds the adaptive subscription-pricing rule.
type SubscriptionConfig struct {
	InitialPrice       int64 `yaml:"initial_price"`        // internal display units
	MinRetainedBalance int64 `yaml:"min_retained_balance"` // internal display units

	// HalvingTrigger selects which observation halves the subscription
	// price: "proceeds" (sale proceeds exceed MaxSaleProceeds, in
	// external display units) or "supply" (total supply exceeds
	// SupplyThreshold, in internal display units).
	HalvingTrigger  string `yaml:"halving_trigger"`
	MaxSaleProceeds int64  `yaml:"max_sale_proceeds"`
	SupplyThreshold int64  `yaml:"supply_threshold"`
}

// WeightedValue is one (value, weight) entry of a discrete distribution.
type WeightedValue struct {
	Value  int64 `yaml:"value"`
	Weight int   `yaml:"weight"`
}

// BehaviorConfig holds the per-variant amount distributions.
type BehaviorConfig struct {
	// TopUpAmounts are subscriber top-up purchases in external display units.
	TopUpAmounts []WeightedValue `yaml:"topup_amounts"`
	// SpeculatorBuyAmounts are speculator purchases in external display units.
	SpeculatorBuyAmounts []WeightedValue `yaml:"speculator_buy_amounts"`
	// SpeculatorSellPercents are the holdings fractions (percent) a
	// speculator sells once its target rate is exceeded.
	SpeculatorSellPercents []WeightedValue `yaml:"speculator_sell_percents"`
}

// HatchConfig drives the hatch phase and the hatcher unlock/sell schedule.
type HatchConfig struct {
	Limit int64 `yaml:"limit"` // hatch threshold, external display units

	SellPercent    int64 `yaml:"sell_percent"`     // % of claimed balance burned per event
	BeginSellMonth int   `yaml:"begin_sell_month"` // first month with a scheduled hatcher sell
}

// CurveConfig is passed opaquely to the token economy. All ratios are in
// parts per million.
type CurveConfig struct {
	ReserveRatioPPM        int64 `yaml:"reserve_ratio_ppm"`
	ThetaPPM               int64 `yaml:"theta_ppm"`
	P0PPM                  int64 `yaml:"p0_ppm"`
	FrictionPPM            int64 `yaml:"friction_ppm"`
	HatchDurationSeconds   int64 `yaml:"hatch_duration_seconds"`
	VestingDurationSeconds int64 `yaml:"vesting_duration_seconds"`
	MinContribution        int64 `yaml:"min_contribution"` // external display units
}

// OutputConfig selects sinks and the ledger column schema. Empty paths
// disable the corresponding file sink.
type OutputConfig struct {
	LedgerPath    string `yaml:"ledger_path"`
	MonthOHLCPath string `yaml:"month_ohlc_path"`
	DayOHLCPath   string `yaml:"day_ohlc_path"`

	// LedgerColumns is the ordered column schema of the ledger CSV.
	// Empty means the full default layout.
	LedgerColumns []string `yaml:"ledger_columns"`
}

// DatabaseConfig enables the optional postgres sink when DSN is set.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}
