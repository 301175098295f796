// Package dist provides weighted discrete distributions sampled through
// one injectable random source, so simulation variants can reconfigure
// amount tables and tests can substitute a deterministic source.
package dist

import (
	"errors"
	"math/rand"
)

// Outcome is one (value, weight) pair of a weighted distribution.
type Outcome struct {
	Value  int64
	Weight int
}

// Weighted is a discrete distribution over a fixed table of outcomes.
// Sampling walks the cumulative weights, so the table order is part of
// the deterministic-replay contract.
type Weighted struct {
	outcomes []Outcome
	total    int
}

// NewWeighted creates a weighted distribution from the given outcomes.
// Returns an error if the table is empty or any weight is not positive.
func NewWeighted(outcomes ...Outcome) (*Weighted, error) {
	if len(outcomes) == 0 {
		return nil, errors.New("weighted distribution must have at least one outcome")
	}

	total := 0
	for _, o := range outcomes {
		if o.Weight <= 0 {
			return nil, errors.New("weighted distribution outcome weight must be positive")
		}
		total += o.Weight
	}

	table := make([]Outcome, len(outcomes))
	copy(table, outcomes)

	return &Weighted{outcomes: table, total: total}, nil
}

// Sample draws one value from the distribution using the given source.
func (w *Weighted) Sample(rng *rand.Rand) int64 {
	roll := rng.Intn(w.total)

	cumulative := 0
	for _, o := range w.outcomes {
		cumulative += o.Weight
		if roll < cumulative {
			return o.Value
		}
	}

	// Unreachable: the cumulative weights sum to total.
	return w.outcomes[len(w.outcomes)-1].Value
}

// Values returns the distinct values of the distribution in table order.
func (w *Weighted) Values() []int64 {
	values := make([]int64, len(w.outcomes))
	for i, o := range w.outcomes {
		values[i] = o.Value
	}
	return values
}
