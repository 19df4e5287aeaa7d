package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sells-group/advisory-cli/internal/dashboard"
)

// inr formats currency amounts with Indian digit grouping (12,34,567).
var inr = message.NewPrinter(language.MustParse("en-IN"))

func rupees(v float64) string {
	return inr.Sprintf("Rs %v", number.Decimal(v, number.MaxFractionDigits(2)))
}

var reportCmd = &cobra.Command{
	Use:   "report <client-id>",
	Short: "Print a client's dashboard summary",
	Args:  cobra.ExactArgs(1),
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

		summary, err := dashboard.NewService(st, cat).Summary(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Client: %s\n", summary.Client.Name)
		fmt.Printf("Progress: %d%% (%d/%d forms)", summary.Progress.Percent, summary.Progress.Completed, summary.Progress.Total)
		if summary.Progress.Next != "" {
			fmt.Printf(", next: %s", summary.Progress.Next)
		}
		fmt.Println()

		fmt.Println("\nNet Worth Statement")
		for _, s := range summary.AssetSections {
			if s.Total != 0 {
				fmt.Printf("  %-40s %s\n", s.Label, rupees(s.Total))
			}
		}
		fmt.Printf("  %-40s %s\n", "Total Assets", rupees(summary.NetWorth.TotalAssets))
		fmt.Printf("  %-40s %s\n", "Total Liabilities", rupees(summary.NetWorth.TotalLiabilities))
		fmt.Printf("  %-40s %s\n", "Net Worth", rupees(summary.NetWorth.NetWorth))

		fmt.Println("\nMonthly Cash Flow")
		fmt.Printf("  %-40s %s\n", "Income", rupees(summary.CashFlow.MonthlyIncome))
		fmt.Printf("  %-40s %s\n", "Expenses", rupees(summary.CashFlow.MonthlyExpenses))
		fmt.Printf("  %-40s %s\n", "Net Cash Flow", rupees(summary.CashFlow.NetCashFlow))

		fmt.Printf("\n%-42s %s\n", "Insurance Cover", rupees(summary.InsuranceCover))

		fmt.Println("\nKPIs")
		for _, m := range summary.Metrics {
			fmt.Printf("  %-24s gauge %5.1f  %s\n", m.Label, m.Gauge.Value, m.Gauge.Tier)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
