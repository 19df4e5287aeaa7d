package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/advisory-cli/internal/dashboard"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Recompute dashboard summaries for every client",
	Long:  "Walks all registered clients and recomputes each dashboard summary, logging the derived figures. Useful as a consistency sweep after bulk imports or catalogue changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		clients, err := st.ListClients(cmd.Context())
		if err != nil {
			return err
		}

		svc := dashboard.NewService(st, cat)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)
		for _, c := range clients {
			g.Go(func() error {
				summary, err := svc.Summary(ctx, c.ID)
				if err != nil {
					return err
				}
				zap.L().Info("batch: summary recomputed",
					zap.String("client_id", c.ID),
					zap.Float64("net_worth", summary.NetWorth.NetWorth),
					zap.Float64("net_cash_flow", summary.CashFlow.NetCashFlow),
					zap.Int("progress_percent", summary.Progress.Percent),
				)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("recomputed %d client summaries\n", len(clients))
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 5, "max clients processed in parallel")
	rootCmd.AddCommand(batchCmd)
}
