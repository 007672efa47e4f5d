package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pandaledger/currency"
	"pandaledger/domain"
	"pandaledger/service"
)

var (
	flagSIPAmount float64
	flagSIPRate   float64
	flagSIPYears  float64

	flagSWPCorpus     float64
	flagSWPWithdrawal float64
	flagSWPYears      float64
	flagSWPRate       float64
)

var sipCmd = &cobra.Command{
	Use:   "sip",
	Short: "Project the future value of a monthly investment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := service.ProjectSIP(domain.SIPInput{
			MonthlyAmount: flagSIPAmount,
			AnnualRate:    flagSIPRate,
			Years:         flagSIPYears,
		})
		if err != nil {
			return err
		}
		renderSIP(cmd.OutOrStdout(), result)
		return nil
	},
}

var swpCmd = &cobra.Command{
	Use:   "swp",
	Short: "Simulate monthly withdrawals from a corpus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in := domain.SWPInput{
			Corpus:            flagSWPCorpus,
			MonthlyWithdrawal: flagSWPWithdrawal,
			Years:             flagSWPYears,
		}
		if cmd.Flags().Changed("rate") {
			in.AnnualGrowthRate = &flagSWPRate
		}
		result, err := service.ProjectSWP(in)
		if err != nil {
			return err
		}
		renderSWP(cmd.OutOrStdout(), service.GrowthRate(in), result)
		return nil
	},
}

func init() {
	sipCmd.Flags().Float64VarP(&flagSIPAmount, "amount", "a", 5000, "Monthly investment")
	sipCmd.Flags().Float64VarP(&flagSIPRate, "rate", "r", 12, "Expected annual return in percent")
	sipCmd.Flags().Float64VarP(&flagSIPYears, "years", "y", 5, "Investment period in years")

	swpCmd.Flags().Float64Var(&flagSWPCorpus, "corpus", 1_000_000, "Starting corpus")
	swpCmd.Flags().Float64VarP(&flagSWPWithdrawal, "withdrawal", "w", 5000, "Monthly withdrawal")
	swpCmd.Flags().Float64VarP(&flagSWPYears, "years", "y", 5, "Withdrawal period in years")
	swpCmd.Flags().Float64VarP(&flagSWPRate, "rate", "r", service.DefaultSWPGrowthRate, "Assumed annual growth in percent")

	rootCmd.AddCommand(sipCmd, swpCmd)
}

func renderSIP(w io.Writer, r domain.SIPResult) {
	fmt.Fprintf(w, "  Projected Value  %s\n", currency.INR(r.Total))
	fmt.Fprintf(w, "  Invested         %s\n", currency.INR(r.Invested))
	fmt.Fprintf(w, "  Wealth Gained    +%s\n", currency.INR(r.Profit))
	fmt.Fprintf(w, "  Months           %d\n", r.Months)
}

func renderSWP(w io.Writer, growth float64, r domain.SWPResult) {
	fmt.Fprintf(w, "  Remaining Corpus %s\n", currency.INR(r.Balance))
	fmt.Fprintf(w, "  Total Withdrawn  %s\n", currency.INR(r.TotalWithdrawn))
	fmt.Fprintf(w, "  Est. Growth Rate %g%%\n", growth)
	fmt.Fprintf(w, "  Months           %d\n", r.MonthsSimulated)
	if r.Depleted {
		fmt.Fprintln(w, "  Corpus depleted!")
	}
}
