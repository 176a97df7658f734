package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0 // 1 billion
	MaxInterestRate = 1000.0          // 1000% per year
	MaxTermMonths   = 600             // 50 years
	MinTermMonths   = 1

	// Risk policy. Comparisons are strict, so a ratio equal to a threshold
	// falls into the lower bucket.
	HighRiskDTIThreshold   = 0.43
	MediumRiskDTIThreshold = 0.36

	// Emergency fund target in months of expenses.
	EmergencyFundMonths = 6

	// Peer default risk scoring.
	PeerSimilarityWindow  = 10_000.0
	DTIRiskWeight         = 20.0
	PeerDefaultRiskWeight = 30.0
	MaxDefaultRiskScore   = 100.0

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200

	MaxRecommendations = 10
	DefaultAdviceTTL   = 24 * time.Hour

	// Below this, savings belong in an emergency fund rather than investments.
	MinInvestableSavings = 1000.0
	// Expense categories at or above this share of spending are called out.
	CostShareHighlightPercent = 15.0
	MaxCostHighlights         = 3
	MaxExpenseCategories      = 50
)
