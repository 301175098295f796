package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lightstreams-network/artist-economy/internal/calendar"
	"github.com/lightstreams-network/artist-economy/internal/config"
	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/units"
	"github.com/lightstreams-network/artist-economy/internal/usecase/behavior"
	"github.com/lightstreams-network/artist-economy/internal/usecase/metrics"
)

// State is the run phase of the simulation engine.
type State string

const (
	StateInitializing State = "INITIALIZING"
	StateHatchPending State = "HATCH_PENDING"
	StateRunning      State = "RUNNING"
	StateDraining     State = "DRAINING"
	StateFinished     State = "FINISHED"
)

// ErrNotHatched is returned when the economy does not report the hatch
// threshold reached after the hatch contribution.
var ErrNotHatched = errors.New("hatch threshold not reached")

// Engine walks simulated time day-by-day within months, triggering
// scheduled participant actions and periodic hatcher unlock/sell
// events. It is single-threaded and cooperative: all economy calls and
// ledger recordings happen strictly in event order.
type Engine struct {
	cfg        *config.Config
	economy    domain.TokenEconomy
	behavior   *behavior.Engine
	recorder   *metrics.Recorder
	state      *domain.SimulationState
	population domain.Population
	flushers   []domain.Flusher
	log        *slog.Logger

	runState State
	day      int
}

// New creates an engine over an already generated population.
func New(
	cfg *config.Config,
	economy domain.TokenEconomy,
	behaviorEngine *behavior.Engine,
	recorder *metrics.Recorder,
	state *domain.SimulationState,
	population domain.Population,
	flushers []domain.Flusher,
	log *slog.Logger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		economy:    economy,
		behavior:   behaviorEngine,
		recorder:   recorder,
		state:      state,
		population: population,
		flushers:   flushers,
		log:        log,
		runState:   StateInitializing,
	}
}

// State returns the current run phase.
func (e *Engine) State() State {
	return e.runState
}

// Run executes the full simulation. On any failure the error surfaces
// to the caller without partial-state recovery, but rows already
// produced are flushed so partial output remains inspectable.
func (e *Engine) Run(ctx context.Context) (err error) {
	defer func() {
		if flushErr := e.flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	e.runState = StateHatchPending
	if err := e.hatch(ctx); err != nil {
		return err
	}

	e.runState = StateRunning
	for month := 1; month <= e.cfg.Simulation.Months; month++ {
		if err := e.runMonth(ctx, month); err != nil {
			return err
		}
	}

	e.runState = StateDraining
	if err := e.drain(ctx); err != nil {
		return err
	}

	e.runState = StateFinished
	return nil
}

// hatch contributes the configured hatch limit, checks the threshold
// once (not polled per day) and records the hatcher's contribution as
// the opening ledger row.
func (e *Engine) hatch(ctx context.Context) error {
	hatchLimit := units.ToWei(e.cfg.Hatch.Limit)

	if err := e.economy.HatchContribute(ctx, domain.AccountHatcher, hatchLimit); err != nil {
		return fmt.Errorf("hatch contribution: %w", err)
	}

	hatched, err := e.economy.IsHatched(ctx)
	if err != nil {
		return fmt.Errorf("hatch state: %w", err)
	}
	if !hatched {
		return ErrNotHatched
	}

	contribution, err := e.economy.InitialContribution(ctx, domain.AccountHatcher)
	if err != nil {
		return fmt.Errorf("hatch contribution record: %w", err)
	}

	supply, err := e.economy.TotalSupply(ctx)
	if err != nil {
		return fmt.Errorf("hatch supply: %w", err)
	}
	e.state.RaiseInternal = supply

	_, err = e.recorder.Record(ctx, domain.Tick{}, nil, domain.TagHatcher, domain.DirectionBuy,
		contribution.PaidExternal, contribution.LockedInternal)
	if err != nil {
		return err
	}

	e.log.Info("economy hatched",
		"supply", units.RoundFromWei(supply).String(),
		"contributed", units.RoundFromWei(contribution.PaidExternal).String())
	return nil
}

func (e *Engine) runMonth(ctx context.Context, month int) error {
	e.recorder.BeginMonth(month)

	startDay := e.day
	endDay := startDay + calendar.DaysInMonth(month, e.cfg.Simulation.Year)

	if month >= e.cfg.Hatch.BeginSellMonth {
		tick := domain.Tick{Month: month, Day: e.day}
		if err := e.behavior.HatcherSell(ctx, tick, e.cfg.Hatch.SellPercent); err != nil {
			return err
		}
	}

	for e.day < endDay {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.day++
		tick := domain.Tick{Month: month, Date: e.day - startDay, Day: e.day}

		if err := e.runDay(ctx, tick); err != nil {
			return err
		}
	}

	return e.recorder.EndMonth(month)
}

// runDay scans the population in its generated sort order and invokes
// the policy for every participant due on this tick.
func (e *Engine) runDay(ctx context.Context, tick domain.Tick) error {
	e.recorder.BeginDay(tick.Day)

	for _, p := range e.population {
		switch p.Role {
		case domain.RoleSubscriber:
			if e.subscriberDue(p, tick) {
				if err := e.behavior.SubscriberAct(ctx, p, tick); err != nil {
					return err
				}
			}
		case domain.RoleSpeculator:
			if err := e.behavior.SpeculatorAct(ctx, p, tick); err != nil {
				return err
			}
		}
	}

	return e.recorder.EndDay(tick.Day)
}

// subscriberDue reports whether the subscriber acts on this tick: the
// first action waits for the activation month, afterwards the buy day
// recurs every month.
func (e *Engine) subscriberDue(p *domain.Participant, tick domain.Tick) bool {
	if p.BuyDay != tick.Date {
		return false
	}
	if !p.Active {
		return p.Month == tick.Month
	}
	return true
}

// drain performs the wind-down actions outside the regular per-day
// schedule: a final hatcher claim-and-sell of the full claimed balance.
func (e *Engine) drain(ctx context.Context) error {
	tick := domain.Tick{Month: e.cfg.Simulation.Months, Day: e.day}
	return e.behavior.HatcherSell(ctx, tick, 100)
}

func (e *Engine) flush() error {
	for _, f := range e.flushers {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output sink: %w", err)
		}
	}
	return nil
}
