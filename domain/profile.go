package domain

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// FinancialProfile is the per-request input to the metrics engine.
type FinancialProfile struct {
	LoanAmount                float64 `json:"loanAmount"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent"`
	TermMonths                int     `json:"termMonths"`
	MonthlyIncome             float64 `json:"monthlyIncome"`
	MonthlyExpenses           float64 `json:"monthlyExpenses"`
}

// FinancialMetrics is derived from a FinancialProfile and a caller supplied date.
// A nil MonthsToEmergencyFund means the target is unreachable with the
// current net savings.
type FinancialMetrics struct {
	MonthlyPayment        float64   `json:"monthlyPayment"`
	DebtToIncomeRatio     float64   `json:"debtToIncomeRatio"`
	MonthlyNetSavings     float64   `json:"monthlyNetSavings"`
	SavingsRatePercent    float64   `json:"savingsRatePercent"`
	RiskLevel             RiskLevel `json:"riskLevel"`
	ProjectedPayoffDate   time.Time `json:"projectedPayoffDate"`
	TotalInterestPaid     float64   `json:"totalInterestPaid"`
	EmergencyFundTarget   float64   `json:"emergencyFundTarget"`
	MonthsToEmergencyFund *int      `json:"monthsToEmergencyFund"`
}

type RiskMetrics struct {
	DebtToIncomeRatio  float64
	RiskLevel          RiskLevel
	SavingsRatePercent float64
	MonthlyNetSavings  float64
}

type Projections struct {
	ProjectedPayoffDate   time.Time
	TotalInterestPaid     float64
	EmergencyFundTarget   float64
	MonthsToEmergencyFund *int
}

// ProfileAssessment is what the metrics endpoint returns: the engine output
// plus the peer based default risk score.
type ProfileAssessment struct {
	Metrics          FinancialMetrics `json:"metrics"`
	DefaultRiskScore float64          `json:"defaultRiskScore"`
}

type CalculationRecord struct {
	ID         string            `json:"id"`
	Profile    FinancialProfile  `json:"profile"`
	Assessment ProfileAssessment `json:"assessment"`
	CreatedAt  time.Time         `json:"createdAt"`
}
