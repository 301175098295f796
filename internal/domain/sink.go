package domain

// LedgerSink accepts the ordered stream of ledger rows produced by the
// aggregator. Implementations must preserve append order.
type LedgerSink interface {
	WriteLedger(row *LedgerRow) error
}

// OHLCSink accepts the ordered stream of OHLC rows for one granularity
// (day or month).
type OHLCSink interface {
	WriteOHLC(row *OHLCRow) error
}

// Flusher is implemented by sinks that buffer output. Rows already
// written must survive a flush even when the run aborts afterwards.
type Flusher interface {
	Flush() error
}
