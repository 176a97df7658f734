package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/codewithmirza/datanyx/domain"
)

const costSystemPrompt = `You are a budgeting coach for university students. ` +
	`Point out where the monthly expenses could be reduced, taking the cost of living in the location into account. ` +
	`Answer with a JSON array of 3 to 6 strings and nothing else.`

// ExpenseBreakdown validates the expenses and returns them largest first,
// with each category's share of the total.
func ExpenseBreakdown(expenses map[string]float64) ([]domain.ExpenseShare, float64, error) {
	if len(expenses) == 0 {
		return nil, 0, fmt.Errorf("%w: expenses must not be empty", ErrInvalidRequest)
	}
	if len(expenses) > MaxExpenseCategories {
		return nil, 0, fmt.Errorf("%w: at most %d expense categories", ErrInvalidRequest, MaxExpenseCategories)
	}

	shares := make([]domain.ExpenseShare, 0, len(expenses))
	amounts := make([]float64, 0, len(expenses))
	for category, amount := range expenses {
		category = strings.TrimSpace(category)
		if category == "" {
			return nil, 0, fmt.Errorf("%w: expense category must not be empty", ErrInvalidRequest)
		}
		if err := checkAmount(category, amount); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		shares = append(shares, domain.ExpenseShare{Category: category, Amount: amount})
		amounts = append(amounts, amount)
	}

	total := floats.Sum(amounts)
	if math.IsInf(total, 0) {
		return nil, 0, fmt.Errorf("%w: expenses total is not finite", ErrInvalidRequest)
	}

	for i := range shares {
		if total > 0 {
			shares[i].SharePercent = shares[i].Amount / total * 100
		}
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})

	return shares, total, nil
}

// CostAnalysis suggests where the monthly expenses could be cut.
func (s *AdvisorService) CostAnalysis(
	ctx context.Context,
	req domain.CostAnalysisRequest,
) (domain.CostAnalysisResult, error) {
	breakdown, total, err := ExpenseBreakdown(req.Expenses)
	if err != nil {
		return domain.CostAnalysisResult{}, err
	}
	location := strings.TrimSpace(req.Location)

	parts := []string{strings.ToLower(location)}
	for _, e := range breakdown {
		parts = append(parts, strings.ToLower(e.Category), strconv.FormatFloat(e.Amount, 'g', -1, 64))
	}

	advice := s.ask(ctx, cacheKey("costs", parts...), costSystemPrompt,
		BuildCostPrompt(breakdown, total, location),
		func() []string { return FallbackCostAnalysis(breakdown, total, location) })

	return domain.CostAnalysisResult{
		Analysis:      advice.Recommendations,
		TotalExpenses: total,
		Breakdown:     breakdown,
		Source:        advice.Source,
	}, nil
}

func BuildCostPrompt(breakdown []domain.ExpenseShare, total float64, location string) string {
	var b strings.Builder
	if location != "" {
		fmt.Fprintf(&b, "Analyze these monthly expenses in %s and suggest optimizations:\n", location)
	} else {
		b.WriteString("Analyze these monthly expenses and suggest optimizations:\n")
	}
	for _, e := range breakdown {
		fmt.Fprintf(&b, "- %s: $%.2f (%.1f%%)\n", e.Category, e.Amount, e.SharePercent)
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", total)
	return b.String()
}

func FallbackCostAnalysis(breakdown []domain.ExpenseShare, total float64, location string) []string {
	var analysis []string

	where := ""
	if location != "" {
		where = " in " + location
	}

	for _, e := range breakdown {
		if len(analysis) == MaxCostHighlights || e.SharePercent < CostShareHighlightPercent {
			break
		}
		analysis = append(analysis, fmt.Sprintf(
			"%s takes %.1f%% of your $%.2f monthly spending. Compare cheaper options%s.",
			e.Category, e.SharePercent, total, where))
	}

	if len(analysis) == 0 {
		analysis = append(analysis,
			"Your spending is spread evenly. Small cuts across several categories add up.")
	}

	analysis = append(analysis,
		"Track your expenses weekly and set a cap for each category.",
		"Use student discounts for transport, software and subscriptions.")
	return analysis
}
