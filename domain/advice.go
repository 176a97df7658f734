package domain

// Risk tolerance values accepted by the investment advisor.
const (
	ToleranceLow    = "low"
	ToleranceMedium = "medium"
	ToleranceHigh   = "high"
)

type InvestmentAdviceRequest struct {
	Savings       float64 `json:"savings"`
	RiskTolerance string  `json:"riskTolerance"`
	TimeHorizon   string  `json:"timeHorizon"` // free text, e.g. "5 years"
}

type InvestmentAdviceResult struct {
	Advice []string `json:"advice"`
	Source string   `json:"source"`
}

// CostAnalysisRequest holds monthly expenses keyed by category.
type CostAnalysisRequest struct {
	Expenses map[string]float64 `json:"expenses"`
	Location string             `json:"location"`
}

type ExpenseShare struct {
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	SharePercent float64 `json:"sharePercent"`
}

type CostAnalysisResult struct {
	Analysis      []string       `json:"analysis"`
	TotalExpenses float64        `json:"totalExpenses"`
	Breakdown     []ExpenseShare `json:"breakdown"` // largest first
	Source        string         `json:"source"`
}
