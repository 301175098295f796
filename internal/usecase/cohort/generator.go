package cohort

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lightstreams-network/artist-economy/internal/calendar"
	"github.com/lightstreams-network/artist-economy/internal/config"
	"github.com/lightstreams-network/artist-economy/internal/domain"
)

// Params bundles the generator inputs: the calendar frame plus the
// cohort growth settings.
type Params struct {
	Year   int
	Months int
	Cohort config.CohortConfig
}

// Generate produces the ordered population for one run: a subscriber
// cohort and a speculator cohort, each grown by its own compounding
// monthly rate, interleaved and globally sorted by the canonical
// (activation month, buy day) composite key.
//
// All randomness flows through the given source, so a fixed seed
// reproduces the exact same population. Subscribers are drawn first,
// then speculators; changing that order changes the replay.
func Generate(params Params, rng *rand.Rand) (domain.Population, error) {
	if params.Months < 1 {
		return nil, errors.New("cohort generation requires at least one month")
	}
	if params.Cohort.SubscriberGrowth < 0 || params.Cohort.SpeculatorGrowth < 0 {
		return nil, errors.New("cohort growth rates cannot be negative")
	}

	g := &generator{params: params, rng: rng}

	g.generateRole(domain.RoleSubscriber, params.Cohort.InitialSubscribers, params.Cohort.SubscriberGrowth, roundUp)
	g.generateRole(domain.RoleSpeculator, params.Cohort.InitialSpeculators, params.Cohort.SpeculatorGrowth, roundNearest)

	// Stable sort so equal composite keys keep generation order, the
	// property deterministic replay depends on.
	sort.SliceStable(g.population, func(i, j int) bool {
		return g.population[i].SortKey() < g.population[j].SortKey()
	})

	return g.population, nil
}

type generator struct {
	params     Params
	rng        *rand.Rand
	population domain.Population
	nextID     int
}

type rounder func(float64) int

func roundUp(v float64) int      { return int(math.Ceil(v)) }
func roundNearest(v float64) int { return int(math.Round(v)) }

// generateRole grows one cohort month over month: each month adds the
// current increment, then the increment is recomputed from the running
// cohort size times the growth rate.
func (g *generator) generateRole(role domain.Role, initial int, growth float64, round rounder) {
	newEntrants := initial
	cohortSize := 0

	for month := 1; month <= g.params.Months; month++ {
		days := calendar.DaysInMonth(month, g.params.Year)

		for i := 0; i < newEntrants; i++ {
			g.addParticipant(role, month, days)
		}
		cohortSize += newEntrants

		newEntrants = round(float64(cohortSize) * growth)
		if g.params.Cohort.Taper == config.TaperHalve && month >= 12 {
			newEntrants /= 2
		}
	}
}

func (g *generator) addParticipant(role domain.Role, month, days int) {
	p := domain.NewParticipant(g.nextID, role, month, g.rng.Intn(days)+1)
	g.nextID++

	if role == domain.RoleSpeculator {
		p.SellMonth = month + g.rng.Intn(g.params.Cohort.MaxSellOffsetMonths) + 1
		if g.params.Cohort.CapSellMonth && p.SellMonth > g.params.Months {
			p.SellMonth = g.params.Months
		}

		span := g.params.Cohort.TargetGainMax - g.params.Cohort.TargetGainMin
		gain := g.params.Cohort.TargetGainMin + g.rng.Float64()*span
		p.TargetGain = decimal.NewFromFloat(gain).Round(4)
	}

	g.population = append(g.population, p)
}
