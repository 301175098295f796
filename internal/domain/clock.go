package domain

// Tick is the simulated clock value passed explicitly to every behavior
// policy and aggregator call: the current month, the date within that
// month and the absolute day count since simulation start. Policies
// never read ambient time state.
type Tick struct {
	Month int
	Date  int
	Day   int
}

// Accounts the simulation transacts under. The buyer account stands in
// for the whole synthetic market, as a single wallet executing every
// participant's orders; the hatcher account holds the initial hatch
// contribution; the fee recipient collects burn friction.
const (
	AccountBuyer        = "buyer-simulator"
	AccountHatcher      = "hatcher-simulator"
	AccountFeeRecipient = "fee-recipient"
	AccountFundingPool  = "funding-pool"
)
