package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/techiepharm/FinSim-sub001/internal/analytics"
	"github.com/techiepharm/FinSim-sub001/internal/database"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/trading"
)

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Opening the backend already migrated it.
			if c.backend.DB == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s backend has no schema\n", c.backend.Name)
				return nil
			}
			v, err := database.SchemaVersion(cmd.Context(), c.backend.DB, c.backend.Dialect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", c.backend.Name, v)
			return nil
		},
	}
}

func (c *cli) marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "List instruments with their current prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "SYMBOL\tNAME\tSECTOR\tPRICE")
			for _, q := range c.market.Quotes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.Symbol, q.Name, q.Sector, c.money(q.Price))
			}
			return w.Flush()
		},
	}
}

func (c *cli) orderCmd(side, short string) *cobra.Command {
	return &cobra.Command{
		Use:   side + " SYMBOL SHARES",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("shares must be a whole number: %s", args[1])
			}
			order := trading.Order{
				Side:   trading.Side(strings.ToUpper(side)),
				Symbol: strings.ToUpper(args[0]),
				Shares: shares,
			}
			receipt, err := c.trading.ExecuteOrder(cmd.Context(), c.portfolioID, order)
			if err != nil {
				return err
			}
			c.printReceipt(cmd.OutOrStdout(), receipt)
			return nil
		},
	}
}

func (c *cli) cashCmd(kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			move := c.trading.Deposit
			if kind == "withdraw" {
				move = c.trading.Withdraw
			}
			receipt, err := move(cmd.Context(), c.portfolioID, amount)
			if err != nil {
				return err
			}
			c.printReceipt(cmd.OutOrStdout(), receipt)
			return nil
		},
	}
}

func (c *cli) premiumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "premium",
		Short: "Upgrade the portfolio to premium",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			receipt, err := c.trading.UpgradePremium(cmd.Context(), c.portfolioID)
			if err != nil {
				return err
			}
			c.printReceipt(cmd.OutOrStdout(), receipt)
			return nil
		},
	}
}

func (c *cli) printReceipt(out io.Writer, r model.Receipt) {
	w := table(out)
	fmt.Fprintf(w, "Transaction\t%s\n", r.TransactionID)
	fmt.Fprintf(w, "Type\t%s\n", r.Type)
	if r.Type.IsTrade() {
		fmt.Fprintf(w, "Symbol\t%s\n", r.Symbol)
		fmt.Fprintf(w, "Shares\t%d\n", r.Shares)
		fmt.Fprintf(w, "Price\t%s\n", c.money(r.Price))
	}
	fmt.Fprintf(w, "Total\t%s\n", c.money(r.Total))
	fmt.Fprintf(w, "Fee\t%s\n", c.money(r.Fee))
	fmt.Fprintf(w, "Cash balance\t%s\n", c.money(r.CashBalance))
	w.Flush()
}

func (c *cli) portfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show cash, savings and holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.trading.GetPortfolio(cmd.Context(), c.portfolioID)
			if err != nil {
				return err
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Portfolio\t%s\n", p.ID)
			fmt.Fprintf(w, "Cash\t%s\n", c.money(p.Cash))
			fmt.Fprintf(w, "Savings\t%s\n", c.money(p.Savings))
			fmt.Fprintf(w, "Premium\t%t\n", p.Premium)
			if len(p.Holdings) > 0 {
				fmt.Fprintln(w, "\nSYMBOL\tSHARES\tAVG COST")
				for _, h := range p.SortedHoldings() {
					fmt.Fprintf(w, "%s\t%d\t%s\n", h.Symbol, h.Shares, c.money(h.AverageCost))
				}
			}
			return w.Flush()
		},
	}
}

func (c *cli) ledgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := c.trading.GetTransactions(cmd.Context(), c.portfolioID)
			if err != nil {
				return err
			}
			if len(ledger) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions yet.")
				return nil
			}
			w := table(cmd.OutOrStdout())
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tDESCRIPTION")
			for _, t := range ledger {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Timestamp.Format("2006-01-02 15:04"), t.Type, c.money(t.Amount), t.Description)
			}
			return w.Flush()
		},
	}
}

func (c *cli) analyticsCmd() *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show valuation, cash flow, risk and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			v, err := c.analytics.Valuation(ctx, c.portfolioID)
			if err != nil {
				return err
			}
			period, err := c.analytics.PeriodMetrics(ctx, c.portfolioID, months)
			if err != nil {
				return err
			}
			categories, err := c.analytics.CategoryBreakdown(ctx, c.portfolioID)
			if err != nil {
				return err
			}
			risk, err := c.analytics.RiskAssessment(ctx, c.portfolioID)
			if err != nil {
				return err
			}
			recs, err := c.analytics.Recommendations(ctx, c.portfolioID)
			if err != nil {
				return err
			}

			w := table(cmd.OutOrStdout())
			fmt.Fprintf(w, "Total value\t%s\n", c.money(v.TotalValue))
			fmt.Fprintf(w, "Holdings value\t%s\n", c.money(v.HoldingsValue))
			fmt.Fprintf(w, "Total gain\t%s (%.2f%%)\n", c.money(v.TotalGain), v.TotalGainPercent)
			fmt.Fprintf(w, "Risk\t%s (score %d, ratio %.2f)\n", risk.Level, risk.Score, risk.InvestmentRatio)

			fmt.Fprintln(w, "\nMONTH\tINCOME\tEXPENSES")
			for _, mf := range period.Months {
				fmt.Fprintf(w, "%s\t%s\t%s\n", mf.Month, c.money(mf.Income), c.money(mf.Expenses))
			}
			fmt.Fprintf(w, "Savings rate\t%.2f%%\t\n", period.SavingsRate)

			if len(categories) > 0 {
				fmt.Fprintln(w, "\nCATEGORY\tTOTAL\tSHARE")
				for _, cat := range categories {
					fmt.Fprintf(w, "%s\t%s\t%.2f%%\n", cat.Name, c.money(cat.Total), cat.Percentage)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			printRecommendations(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	cmd.Flags().IntVar(&months, "months", analytics.DefaultMonthsBack, "Number of months of cash flow to show")
	return cmd
}

func printRecommendations(out io.Writer, recs []analytics.Recommendation) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintln(out, "\nRecommendations:")
	for _, r := range recs {
		fmt.Fprintf(out, "  [%s] %s: %s\n", r.Priority, r.Title, r.Message)
	}
}

func (c *cli) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest SYMBOL",
		Short: "Suggest a trade for one instrument from its recent trend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.analytics.Suggestion(strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%+.2f%%, %s → %s)\n%s\n",
				s.Symbol, s.Signal, s.ChangePct, c.money(s.FromPrice), c.money(s.CurrentPrice), s.Rationale)
			return nil
		},
	}
}
