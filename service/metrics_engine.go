package service

import (
	"fmt"
	"math"
	"time"

	"github.com/codewithmirza/datanyx/domain"
)

// ValidateProfile checks the profile domain before any metric is derived.
// Zero income is checked last so a profile that is both malformed and
// income-less reports ErrInvalidProfile.
func ValidateProfile(p domain.FinancialProfile) error {
	if err := checkAmount("loanAmount", p.LoanAmount); err != nil {
		return err
	}
	if err := checkAmount("annualInterestRatePercent", p.AnnualInterestRatePercent); err != nil {
		return err
	}
	if p.TermMonths <= 0 {
		return fmt.Errorf("%w: termMonths must be positive, got %d", ErrInvalidProfile, p.TermMonths)
	}
	if err := checkAmount("monthlyIncome", p.MonthlyIncome); err != nil {
		return err
	}
	if err := checkAmount("monthlyExpenses", p.MonthlyExpenses); err != nil {
		return err
	}
	if p.MonthlyIncome == 0 {
		return ErrUndefinedRatio
	}
	return nil
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidProfile, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidProfile, field, v)
	}
	return nil
}

// ComputeMonthlyPayment returns the fixed amortized payment that repays
// principal plus interest over termMonths.
func ComputeMonthlyPayment(principal, annualRatePercent float64, termMonths int) (float64, error) {
	if err := checkAmount("loanAmount", principal); err != nil {
		return 0, err
	}
	if err := checkAmount("annualInterestRatePercent", annualRatePercent); err != nil {
		return 0, err
	}
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: termMonths must be positive, got %d", ErrInvalidProfile, termMonths)
	}

	if principal == 0 {
		return 0, nil
	}

	n := float64(termMonths)
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal / n, nil
	}

	// (1+r)^n - 1 via expm1/log1p keeps precision for very small rates,
	// where 1+r rounds to 1 and the naive form divides by zero.
	growthMinusOne := math.Expm1(n * math.Log1p(r))

	var payment float64
	if math.IsInf(growthMinusOne, 1) {
		// Limit of the formula as (1+r)^n grows without bound.
		payment = principal * r
	} else {
		payment = principal * r * (growthMinusOne + 1) / growthMinusOne
	}

	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0, fmt.Errorf("%w: payment is not finite for rate %g%% over %d months",
			ErrInvalidProfile, annualRatePercent, termMonths)
	}
	return payment, nil
}

// ClassifyRisk buckets a debt-to-income ratio.
func ClassifyRisk(debtToIncomeRatio float64) domain.RiskLevel {
	switch {
	case debtToIncomeRatio > HighRiskDTIThreshold:
		return domain.RiskHigh
	case debtToIncomeRatio > MediumRiskDTIThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func ComputeRiskMetrics(p domain.FinancialProfile, payment float64) (domain.RiskMetrics, error) {
	if p.MonthlyIncome == 0 {
		return domain.RiskMetrics{}, ErrUndefinedRatio
	}

	ratio := p.LoanAmount / (p.MonthlyIncome * 12)
	disposable := p.MonthlyIncome - p.MonthlyExpenses

	return domain.RiskMetrics{
		DebtToIncomeRatio:  ratio,
		RiskLevel:          ClassifyRisk(ratio),
		SavingsRatePercent: disposable / p.MonthlyIncome * 100,
		MonthlyNetSavings:  disposable - payment,
	}, nil
}

// ComputeProjections derives the time based figures. now is supplied by the
// caller and is the only source of the current date.
func ComputeProjections(
	p domain.FinancialProfile,
	payment float64,
	netSavings float64,
	now time.Time,
) domain.Projections {
	// An amortized loan is repaid within its term; at zero interest P/(P/n)
	// can round just above n.
	payoffMonths := 0
	if payment > 0 {
		payoffMonths = p.TermMonths
		if m := math.Ceil(p.LoanAmount / payment); m < float64(p.TermMonths) {
			payoffMonths = int(m)
		}
	}

	target := p.MonthlyExpenses * EmergencyFundMonths

	var monthsToFund *int
	if netSavings > 0 {
		if m := math.Ceil(target / netSavings); m <= math.MaxInt32 {
			months := int(m)
			monthsToFund = &months
		}
	}

	return domain.Projections{
		ProjectedPayoffDate:   now.AddDate(0, payoffMonths, 0),
		TotalInterestPaid:     payment*float64(p.TermMonths) - p.LoanAmount,
		EmergencyFundTarget:   target,
		MonthsToEmergencyFund: monthsToFund,
	}
}

// ComputeMetrics validates the profile and derives the full metrics record.
// On error no partial result is returned.
func ComputeMetrics(p domain.FinancialProfile, now time.Time) (domain.FinancialMetrics, error) {
	if err := ValidateProfile(p); err != nil {
		return domain.FinancialMetrics{}, err
	}

	payment, err := ComputeMonthlyPayment(p.LoanAmount, p.AnnualInterestRatePercent, p.TermMonths)
	if err != nil {
		return domain.FinancialMetrics{}, err
	}

	risk, err := ComputeRiskMetrics(p, payment)
	if err != nil {
		return domain.FinancialMetrics{}, err
	}

	proj := ComputeProjections(p, payment, risk.MonthlyNetSavings, now)

	return domain.FinancialMetrics{
		MonthlyPayment:        payment,
		DebtToIncomeRatio:     risk.DebtToIncomeRatio,
		MonthlyNetSavings:     risk.MonthlyNetSavings,
		SavingsRatePercent:    risk.SavingsRatePercent,
		RiskLevel:             risk.RiskLevel,
		ProjectedPayoffDate:   proj.ProjectedPayoffDate,
		TotalInterestPaid:     proj.TotalInterestPaid,
		EmergencyFundTarget:   proj.EmergencyFundTarget,
		MonthsToEmergencyFund: proj.MonthsToEmergencyFund,
	}, nil
}
