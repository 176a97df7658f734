package service

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"

	"github.com/codewithmirza/datanyx/domain"
)

// roundTo2Decimals rounds a float64 to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanService struct {
	log zerolog.Logger
}

// NewLoanService creates a new LoanService.
func NewLoanService(log zerolog.Logger) *LoanService {
	return &LoanService{log: log.With().Str("service", "loan").Logger()}
}

func validateLoanInput(input domain.LoanInput) error {
	if !(input.Amount > 0) || math.IsInf(input.Amount, 0) {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidLoan)
	}
	if input.Amount > MaxLoanAmount {
		return fmt.Errorf("%w: amount exceeds the maximum of $%.2f", ErrInvalidLoan, MaxLoanAmount)
	}
	if !(input.InterestRate >= 0) {
		return fmt.Errorf("%w: interest rate must not be negative", ErrInvalidLoan)
	}
	if input.InterestRate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", ErrInvalidLoan, MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return fmt.Errorf("%w: term must be at least %d month", ErrInvalidLoan, MinTermMonths)
	}
	if input.TermMonths > MaxTermMonths {
		return fmt.Errorf("%w: term exceeds the maximum of %d months", ErrInvalidLoan, MaxTermMonths)
	}
	return nil
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanResult{}, err
	}

	payment, err := ComputeMonthlyPayment(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.LoanResult{}, fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	total := payment * float64(input.TermMonths)

	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Amount),
	}, nil
}

// Schedule builds the month by month amortization table. Amounts are kept in
// cents; the final row absorbs rounding so the balance closes at zero.
func (s *LoanService) Schedule(
	input domain.LoanInput,
	start time.Time,
) (domain.LoanSchedule, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanSchedule{}, err
	}

	payment, err := ComputeMonthlyPayment(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.LoanSchedule{}, fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	monthlyRate := decimal.NewFromFloat(input.InterestRate).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(12))
	fixedPayment := decimal.NewFromFloat(payment).Round(2)
	balance := decimal.NewFromFloat(input.Amount).Round(2)

	entries := make([]domain.ScheduleEntry, 0, input.TermMonths)
	for period := 1; period <= input.TermMonths; period++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principal := fixedPayment.Sub(interest)
		if period == input.TermMonths || principal.GreaterThan(balance) {
			principal = balance
		}
		balance = balance.Sub(principal)

		entries = append(entries, domain.ScheduleEntry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Payment:          principal.Add(interest).InexactFloat64(),
			Interest:         interest.InexactFloat64(),
			Principal:        principal.InexactFloat64(),
			RemainingBalance: balance.InexactFloat64(),
		})

		if balance.IsZero() {
			break
		}
	}

	payments := make([]float64, len(entries))
	interests := make([]float64, len(entries))
	for i, e := range entries {
		payments[i] = e.Payment
		interests[i] = e.Interest
	}

	result := domain.LoanResult{
		MonthlyPayment: fixedPayment.InexactFloat64(),
		TotalPayment:   roundTo2Decimals(floats.Sum(payments)),
		TotalInterest:  roundTo2Decimals(floats.Sum(interests)),
	}

	s.log.Debug().
		Float64("amount", input.Amount).
		Int("term_months", input.TermMonths).
		Int("rows", len(entries)).
		Msg("Built amortization schedule")

	return domain.LoanSchedule{Loan: result, Entries: entries}, nil
}
