package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Direction represents the side of an economic event
type Direction string

const (
	DirectionBuy  Direction = "B"
	DirectionSell Direction = "S"
)

// RoleTag identifies the actor class of a ledger row. The tags follow
// the CSV vocabulary of the original simulation output: subscriber
// purchases are SUB, subscription payments to the artist are AST,
// speculator trades are SPC and hatcher events are HTC.
type RoleTag string

const (
	TagSubscriber RoleTag = "SUB"
	TagArtist     RoleTag = "AST"
	TagSpeculator RoleTag = "SPC"
	TagHatcher    RoleTag = "HTC"
)

// LedgerRow is an immutable record of one economic event. It is produced
// once per buy/sell event and appended to an unbounded ordered sequence;
// it is never mutated afterwards.
type LedgerRow struct {
	Month         int
	Day           int // absolute day count since simulation start
	ParticipantID int // 0 for events with no participant (hatcher)
	Role          RoleTag
	Direction     Direction

	ExternalAmount *big.Int // reserve asset moved, smallest unit
	InternalAmount *big.Int // tokens moved, smallest unit

	// Externally observed token-economy state at the time of the event.
	SupplyInternal *big.Int
	BondedExternal *big.Int
	LockedInternal *big.Int

	// Derived fields, computed by the aggregator.
	ExchangeRate          decimal.Decimal // external / internal for this event
	PriceFiat             decimal.Decimal // display price per token
	ExternalInternalRatio decimal.Decimal // total reserve / total supply
	ExternalAmountFiat    decimal.Decimal
	BondedExternalFiat    decimal.Decimal
	ProjectBalanceFiat    decimal.Decimal
	ArtistBalanceFiat     decimal.Decimal

	// Running counts of participants that have become active.
	Speculators int
	Subscribers int
}

// OHLCRow is one open-high-low-close-volume record per simulated time
// bucket. For monthly granularity the row also carries the revenue
// attributed to the artist and the project since the previous bucket.
type OHLCRow struct {
	Bucket int // month index or absolute day, depending on granularity
	Open   decimal.Decimal
	Close  decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Volume int64

	ArtistRevenueFiat  decimal.Decimal
	ProjectRevenueFiat decimal.Decimal
}
