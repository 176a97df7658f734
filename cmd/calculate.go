package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/repository"
	"github.com/codewithmirza/datanyx/service"
)

var (
	flagLoan     float64
	flagRate     float64
	flagTerm     int
	flagIncome   float64
	flagExpenses float64
	flagDate     string
	flagSchedule bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute financial metrics for a profile and print them as JSON",
	Example: "  datanyx calculate --loan 50000 --rate 5.5 --term 120 --income 3000 --expenses 2000\n" +
		"  datanyx calculate --loan 1200 --rate 0 --term 12 --income 900 --expenses 700 --schedule",
	RunE: runCalculate,
}

func init() {
	rootCmd.AddCommand(calculateCmd)

	f := calculateCmd.Flags()
	f.Float64Var(&flagLoan, "loan", 0, "Loan amount (principal)")
	f.Float64Var(&flagRate, "rate", 0, "Annual interest rate in percent")
	f.IntVar(&flagTerm, "term", 120, "Repayment term in months")
	f.Float64Var(&flagIncome, "income", 0, "Monthly income")
	f.Float64Var(&flagExpenses, "expenses", 0, "Monthly expenses")
	f.StringVar(&flagDate, "date", "", "Current date as YYYY-MM-DD (default today)")
	f.BoolVar(&flagSchedule, "schedule", false, "Include the amortization schedule")
}

type calculateOutput struct {
	Profile          domain.FinancialProfile `json:"profile"`
	Metrics          domain.FinancialMetrics `json:"metrics"`
	DefaultRiskScore float64                 `json:"defaultRiskScore"`
	Schedule         *domain.LoanSchedule    `json:"schedule,omitempty"`
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	if flagDate != "" {
		d, err := time.Parse("2006-01-02", flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		now = d
	}

	profile := domain.FinancialProfile{
		LoanAmount:                flagLoan,
		AnnualInterestRatePercent: flagRate,
		TermMonths:                flagTerm,
		MonthlyIncome:             flagIncome,
		MonthlyExpenses:           flagExpenses,
	}
	return writeCalculation(cmd.OutOrStdout(), profile, now, flagSchedule)
}

func writeCalculation(out io.Writer, profile domain.FinancialProfile, now time.Time, withSchedule bool) error {
	peers, err := repository.DefaultPeerLoans()
	if err != nil {
		return err
	}

	clock := func() time.Time { return now }
	metrics := service.NewMetricsService(nil, peers, clock, zerolog.Nop())

	assessment, err := metrics.Assess(profile)
	if err != nil {
		return err
	}

	result := calculateOutput{
		Profile:          profile,
		Metrics:          assessment.Metrics,
		DefaultRiskScore: assessment.DefaultRiskScore,
	}

	if withSchedule && profile.LoanAmount > 0 {
		schedule, err := service.NewLoanService(zerolog.Nop()).Schedule(domain.LoanInput{
			Amount:       profile.LoanAmount,
			InterestRate: profile.AnnualInterestRatePercent,
			TermMonths:   profile.TermMonths,
		}, now)
		if err != nil {
			return err
		}
		result.Schedule = &schedule
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
