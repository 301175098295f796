package domain

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParticipantValidate_ValidSubscriber(t *testing.T) {
	p := NewParticipant(0, RoleSubscriber, 1, 15)
	assert.NoError(t, p.Validate())
}

func TestParticipantValidate_ValidSpeculator(t *testing.T) {
	p := NewParticipant(3, RoleSpeculator, 2, 7)
	p.SellMonth = 5
	p.TargetGain = decimal.NewFromFloat(0.35)
	assert.NoError(t, p.Validate())
}

func TestParticipantValidate_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Participant)
	}{
		{"negative id", func(p *Participant) { p.ID = -1 }},
		{"unknown role", func(p *Participant) { p.Role = "INVESTOR" }},
		{"zero month", func(p *Participant) { p.Month = 0 }},
		{"zero buy day", func(p *Participant) { p.BuyDay = 0 }},
		{"nil tokens", func(p *Participant) { p.Tokens = nil }},
		{"negative tokens", func(p *Participant) { p.Tokens = big.NewInt(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParticipant(1, RoleSubscriber, 1, 10)
			tc.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestParticipantValidate_SpeculatorSellMonthBeforeActivation(t *testing.T) {
	p := NewParticipant(1, RoleSpeculator, 4, 10)
	p.SellMonth = 3
	assert.Error(t, p.Validate())
}

func TestSortKey_OrdersByMonthThenDay(t *testing.T) {
	early := NewParticipant(0, RoleSubscriber, 1, 31)
	late := NewParticipant(1, RoleSubscriber, 2, 1)

	assert.Less(t, early.SortKey(), late.SortKey(),
		"any day of an earlier month precedes the first day of the next month")

	sameMonthEarlier := NewParticipant(2, RoleSubscriber, 2, 1)
	sameMonthLater := NewParticipant(3, RoleSubscriber, 2, 28)
	assert.Less(t, sameMonthEarlier.SortKey(), sameMonthLater.SortKey())
}

func TestPopulation_RoleCounts(t *testing.T) {
	pop := Population{
		NewParticipant(0, RoleSubscriber, 1, 1),
		NewParticipant(1, RoleSubscriber, 1, 2),
		NewParticipant(2, RoleSpeculator, 1, 3),
	}

	assert.Equal(t, 2, pop.Subscribers())
	assert.Equal(t, 1, pop.Speculators())
}
