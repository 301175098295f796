package domain

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Role represents the behavior profile of a market participant
type Role string

const (
	RoleSubscriber Role = "SUBSCRIBER"
	RoleSpeculator Role = "SPECULATOR"
)

// Participant represents one synthetic market actor.
// The struct is a tagged variant: the common scheduling fields apply to
// every role, while SellMonth, TargetGain and EntryRate are only
// meaningful when Role is RoleSpeculator.
type Participant struct {
	ID    int
	Role  Role
	Month int // 1-based activation month
	// BuyDay is the day within the activation month on which the
	// participant acts, drawn uniformly in [1, daysInMonth] at creation.
	BuyDay int

	// Speculator schedule: the month from which a sell is attempted and
	// the gain ratio over the entry rate that triggers it.
	SellMonth  int
	TargetGain decimal.Decimal

	// Mutable state, owned by the behavior engine.
	Tokens    *big.Int        // current holdings in smallest internal unit
	Active    bool            // set on first successful action
	Sold      bool            // speculator has exited
	Selling   bool            // speculator sell condition latched
	EntryRate decimal.Decimal // exchange rate observed at purchase time
}

// NewParticipant creates a participant with zero holdings.
func NewParticipant(id int, role Role, month, buyDay int) *Participant {
	return &Participant{
		ID:     id,
		Role:   role,
		Month:  month,
		BuyDay: buyDay,
		Tokens: new(big.Int),
	}
}

// Validate ensures the participant adheres to domain rules
// Returns an error if validation fails
func (p *Participant) Validate() error {
	if p.ID < 0 {
		return errors.New("participant id cannot be negative")
	}
	if p.Role != RoleSubscriber && p.Role != RoleSpeculator {
		return errors.New("participant role must be SUBSCRIBER or SPECULATOR")
	}
	if p.Month < 1 {
		return errors.New("participant activation month must be at least 1")
	}
	if p.BuyDay < 1 {
		return errors.New("participant buy day must be at least 1")
	}
	if p.Tokens == nil || p.Tokens.Sign() < 0 {
		return errors.New("participant token holdings cannot be negative")
	}
	if p.Role == RoleSpeculator {
		if p.SellMonth < p.Month {
			return errors.New("speculator sell month cannot precede activation month")
		}
		if p.TargetGain.IsNegative() {
			return errors.New("speculator target gain cannot be negative")
		}
	}
	return nil
}

// SortKey is the canonical event-ordering key: participants are
// processed in ascending (activation month, buy day) order.
func (p *Participant) SortKey() int {
	return p.Month*100 + p.BuyDay
}

// Population is an ordered sequence of participants. After generation it
// is sorted by SortKey and that order is the only order in which the
// event loop scans it within a simulated day.
type Population []*Participant

// Subscribers counts participants with the subscriber role.
func (pop Population) Subscribers() int {
	n := 0
	for _, p := range pop {
		if p.Role == RoleSubscriber {
			n++
		}
	}
	return n
}

// Speculators counts participants with the speculator role.
func (pop Population) Speculators() int {
	n := 0
	for _, p := range pop {
		if p.Role == RoleSpeculator {
			n++
		}
	}
	return n
}
