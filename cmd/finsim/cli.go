package main

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/techiepharm/FinSim-sub001/internal/advisory"
	"github.com/techiepharm/FinSim-sub001/internal/app"
	"github.com/techiepharm/FinSim-sub001/internal/config"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/pricing"
	"github.com/techiepharm/FinSim-sub001/internal/service"
	"github.com/techiepharm/FinSim-sub001/internal/validation"
	"github.com/techiepharm/FinSim-sub001/internal/version"
)

// defaultPortfolioID is used when --portfolio is not given.
const defaultPortfolioID = "00000000-0000-4000-8000-000000000001"

// cli holds the flags and the services opened for one invocation.
type cli struct {
	dbPath      string
	portfolioID string
	seed        uint64
	quiet       bool

	cfg       *config.Config
	backend   *app.Backend
	market    *pricing.Market
	trading   *service.TradingService
	analytics *service.AnalyticsService
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finsim",
		Short: "Paper-trading simulator",
		Long: `finsim trades simulated instruments against a local portfolio.

Prices come from a seeded random walk; pass --seed to make them
reproducible between runs.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}

	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "SQLite database path (defaults to DB_PATH)")
	root.PersistentFlags().StringVarP(&c.portfolioID, "portfolio", "p", defaultPortfolioID, "Portfolio UUID")
	root.PersistentFlags().Uint64Var(&c.seed, "seed", 0, "Price seed (defaults to PRICE_SEED, or random)")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "Do not print advisory messages")

	root.AddCommand(
		c.migrateCmd(),
		c.marketCmd(),
		c.orderCmd("buy", "Buy shares at the current price"),
		c.orderCmd("sell", "Sell shares at the current price"),
		c.cashCmd("deposit", "Move cash into savings"),
		c.cashCmd("withdraw", "Move savings back into cash"),
		c.premiumCmd(),
		c.portfolioCmd(),
		c.ledgerCmd(),
		c.analyticsCmd(),
		c.suggestCmd(),
	)
	return root
}

// open loads configuration, applies flag overrides and wires the services.
func (c *cli) open(cmd *cobra.Command, _ []string) error {
	if err := validation.ValidateUUID(c.portfolioID); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Backend = config.BackendSQLite
		cfg.Database.Path = c.dbPath
	}
	if cmd.Flags().Changed("seed") {
		cfg.Market.Seed = &c.seed
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c.backend, err = app.OpenBackend(ctx, cfg.Database)
	if err != nil {
		return err
	}
	c.market, err = app.NewMarket(ctx, cfg.Market, nil)
	if err != nil {
		return err
	}

	opts := []service.TradingOption{
		service.WithStartingCash(cfg.Trading.StartingCash),
		service.WithPremiumPrice(cfg.Trading.PremiumPrice),
	}
	if !c.quiet {
		opts = append(opts, service.WithAdvisor(printAdvisor{out: cmd.OutOrStdout(), currency: cfg.Trading.Currency}))
	}
	c.trading = service.NewTradingService(c.backend.Store, c.market, opts...)
	c.analytics = service.NewAnalyticsService(c.backend.Store, c.market, cfg.Policy, cfg.Trading.StartingCash, nil)
	return nil
}

func (c *cli) close() {
	if c.backend != nil {
		c.backend.Close()
	}
}

func (c *cli) money(amount decimal.Decimal) string {
	return advisory.FormatMoney(amount, c.cfg.Trading.Currency)
}

// printAdvisor writes each advisory message as soon as the transaction commits.
type printAdvisor struct {
	out      io.Writer
	currency string
}

func (p printAdvisor) Dispatch(ev model.AdvisoryEvent) {
	msg := advisory.Compose(ev, p.currency)
	fmt.Fprintf(p.out, "» %s: %s\n", msg.Title, msg.Body)
}
