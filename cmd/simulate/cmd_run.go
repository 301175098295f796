package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	csvsink "github.com/lightstreams-network/artist-economy/internal/adapter/csv"
	"github.com/lightstreams-network/artist-economy/internal/adapter/economy"
	"github.com/lightstreams-network/artist-economy/internal/adapter/repository/postgres"
	"github.com/lightstreams-network/artist-economy/internal/config"
	"github.com/lightstreams-network/artist-economy/internal/domain"
	"github.com/lightstreams-network/artist-economy/internal/logger"
	"github.com/lightstreams-network/artist-economy/internal/units"
	"github.com/lightstreams-network/artist-economy/internal/usecase/behavior"
	"github.com/lightstreams-network/artist-economy/internal/usecase/cohort"
	"github.com/lightstreams-network/artist-economy/internal/usecase/engine"
	"github.com/lightstreams-network/artist-economy/internal/usecase/metrics"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one economy simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputDir, _ := cmd.Flags().GetString("output")
			dsn, _ := cmd.Flags().GetString("db")
			verbose, _ := cmd.Flags().GetBool("verbose")

			// Flag presence, not value, decides the override: --seed 0
			// is a real seed.
			var seed *int64
			if cmd.Flags().Changed("seed") {
				v, _ := cmd.Flags().GetInt64("seed")
				seed = &v
			}

			return runSimulation(configPath, outputDir, seed, dsn, verbose)
		},
	}

	cmd.Flags().String("config", "", "Path to the YAML run configuration (defaults apply when empty)")
	cmd.Flags().String("output", "output", "Directory for CSV output files")
	cmd.Flags().Int64("seed", 0, "Override the configured random seed")
	cmd.Flags().String("db", "", "Override the configured PostgreSQL DSN")
	cmd.Flags().Bool("verbose", false, "Enable debug logging")
	return cmd
}

func runSimulation(configPath, outputDir string, seed *int64, dsn string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if seed != nil {
		cfg.Simulation.Seed = *seed
	}
	if dsn != "" {
		cfg.Database.DSN = dsn
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.New(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// One random source drives cohort generation and all per-action
	// amount sampling, so a fixed seed reproduces the full run.
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))

	population, err := cohort.Generate(cohort.Params{
		Year:   cfg.Simulation.Year,
		Months: cfg.Simulation.Months,
		Cohort: cfg.Cohort,
	}, rng)
	if err != nil {
		return fmt.Errorf("generate population: %w", err)
	}
	log.Info("population generated",
		"subscribers", population.Subscribers(),
		"speculators", population.Speculators())

	curve := economy.New(cfg.Curve, cfg.Hatch.Limit)
	state := domain.NewSimulationState(units.ToWei(cfg.Subscription.InitialPrice))

	sinks, err := buildSinks(ctx, cfg, outputDir)
	if err != nil {
		return err
	}
	defer sinks.close()

	recorder := metrics.NewRecorder(curve, state,
		decimal.NewFromFloat(cfg.Simulation.FiatRate),
		sinks.ledger, sinks.month, sinks.day)

	behaviorEngine, err := behavior.NewEngine(curve, recorder, state, cfg, rng, log)
	if err != nil {
		return fmt.Errorf("behavior engine: %w", err)
	}

	sim := engine.New(cfg, curve, behaviorEngine, recorder, state, population, sinks.flushers, log)
	if err := sim.Run(ctx); err != nil {
		return fmt.Errorf("simulation run: %w", err)
	}

	return printSummary(ctx, curve, state, log)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// runSinks bundles every configured output destination of one run.
type runSinks struct {
	ledger   []domain.LedgerSink
	month    []domain.OHLCSink
	day      []domain.OHLCSink
	flushers []domain.Flusher
	files    []*os.File
	db       *postgres.DB
}

func (s *runSinks) close() {
	for _, f := range s.files {
		f.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func buildSinks(ctx context.Context, cfg *config.Config, outputDir string) (*runSinks, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	sinks := &runSinks{}

	ledgerPath := cfg.Output.LedgerPath
	if ledgerPath == "" {
		ledgerPath = filepath.Join(outputDir, "economy_simulation.csv")
	}
	ledgerFile, err := os.Create(ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("create ledger file: %w", err)
	}
	sinks.files = append(sinks.files, ledgerFile)

	ledgerWriter, err := csvsink.NewLedgerWriter(ledgerFile, cfg.Output.LedgerColumns)
	if err != nil {
		return nil, err
	}
	sinks.ledger = append(sinks.ledger, ledgerWriter)
	sinks.flushers = append(sinks.flushers, ledgerWriter)

	monthPath := cfg.Output.MonthOHLCPath
	if monthPath == "" {
		monthPath = filepath.Join(outputDir, "economy_simulation_month_ohlc.csv")
	}
	monthFile, err := os.Create(monthPath)
	if err != nil {
		return nil, fmt.Errorf("create month ohlc file: %w", err)
	}
	sinks.files = append(sinks.files, monthFile)

	monthWriter, err := csvsink.NewMonthOHLCWriter(monthFile)
	if err != nil {
		return nil, err
	}
	sinks.month = append(sinks.month, monthWriter)
	sinks.flushers = append(sinks.flushers, monthWriter)

	if cfg.Output.DayOHLCPath != "" {
		dayFile, err := os.Create(cfg.Output.DayOHLCPath)
		if err != nil {
			return nil, fmt.Errorf("create day ohlc file: %w", err)
		}
		sinks.files = append(sinks.files, dayFile)

		dayWriter, err := csvsink.NewDayOHLCWriter(dayFile)
		if err != nil {
			return nil, err
		}
		sinks.day = append(sinks.day, dayWriter)
		sinks.flushers = append(sinks.flushers, dayWriter)
	}

	if cfg.Database.DSN != "" {
		if err := attachDatabaseSinks(ctx, cfg, sinks); err != nil {
			return nil, err
		}
	}

	return sinks, nil
}

func attachDatabaseSinks(ctx context.Context, cfg *config.Config, sinks *runSinks) error {
	db, err := postgres.NewDB(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sinks.db = db

	snapshot, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("snapshot config: %w", err)
	}

	runID, err := postgres.NewRunRepository(db).Create(ctx, cfg.Simulation.Seed, string(snapshot))
	if err != nil {
		return err
	}

	ledgerRepo := postgres.NewLedgerRepository(ctx, db, runID)
	sinks.ledger = append(sinks.ledger, ledgerRepo)
	sinks.flushers = append(sinks.flushers, ledgerRepo)

	monthRepo := postgres.NewOHLCRepository(ctx, db, runID, "month")
	sinks.month = append(sinks.month, monthRepo)
	sinks.flushers = append(sinks.flushers, monthRepo)

	return nil
}

// printSummary logs the end-of-run economy report.
func printSummary(ctx context.Context, curve *economy.Curve, state *domain.SimulationState, log *slog.Logger) error {
	supply, err := curve.TotalSupply(ctx)
	if err != nil {
		return err
	}
	reserve, err := curve.ReserveBalance(ctx)
	if err != nil {
		return err
	}
	poolBalance, err := curve.ReserveBalanceOf(ctx, domain.AccountFundingPool)
	if err != nil {
		return err
	}
	feeBalance, err := curve.ReserveBalanceOf(ctx, domain.AccountFeeRecipient)
	if err != nil {
		return err
	}

	log.Info("economy after simulation",
		"total_supply", units.RoundFromWei(supply).String(),
		"bonded_reserve", units.RoundFromWei(reserve).String(),
		"funding_pool", units.RoundFromWei(poolBalance).String(),
		"fee_recipient", units.RoundFromWei(feeBalance).String(),
		"artist_balance", units.RoundFromWei(state.ArtistBalance).String(),
		"active_subscribers", state.ActiveSubscribers,
		"active_speculators", state.ActiveSpeculators)
	return nil
}
