package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/repository"
)

func studentExpenses() map[string]float64 {
	return map[string]float64{
		"rent":          900,
		"food":          400,
		"transport":     100,
		"subscriptions": 50,
		"phone":         50,
	}
}

func TestExpenseBreakdown(t *testing.T) {
	breakdown, total, err := ExpenseBreakdown(studentExpenses())
	require.NoError(t, err)

	assert.Equal(t, 1500.0, total)
	require.Len(t, breakdown, 5)
	assert.Equal(t, domain.ExpenseShare{Category: "rent", Amount: 900, SharePercent: 60}, breakdown[0])
	assert.Equal(t, "food", breakdown[1].Category)
	// equal amounts are ordered by name
	assert.Equal(t, "phone", breakdown[3].Category)
	assert.Equal(t, "subscriptions", breakdown[4].Category)
}

func TestExpenseBreakdown_ZeroTotal(t *testing.T) {
	breakdown, total, err := ExpenseBreakdown(map[string]float64{"rent": 0})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, breakdown[0].SharePercent)
}

func TestExpenseBreakdown_Invalid(t *testing.T) {
	tooMany := map[string]float64{}
	for i := 0; i <= MaxExpenseCategories; i++ {
		tooMany[string(rune('a'+i%26))+string(rune('a'+i/26))] = 1
	}

	for name, expenses := range map[string]map[string]float64{
		"empty":          {},
		"negative":       {"rent": -5},
		"not finite":     {"rent": math.Inf(1)},
		"blank category": {"  ": 10},
		"overflow":       {"a": math.MaxFloat64, "b": math.MaxFloat64},
		"too many":       tooMany,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ExpenseBreakdown(expenses)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestCostAnalysis_UsesModelAnswer(t *testing.T) {
	llm := &MockLLMClient{Response: "1. Find a roommate\n2. Cook at home"}
	cache := repository.NewMemoryCache()
	advisor := newAdvisor(llm, cache)

	req := domain.CostAnalysisRequest{Expenses: studentExpenses(), Location: "Boston"}
	result, err := advisor.CostAnalysis(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, SourceAI, result.Source)
	assert.Equal(t, []string{"Find a roommate", "Cook at home"}, result.Analysis)
	assert.Equal(t, 1500.0, result.TotalExpenses)
	assert.Len(t, result.Breakdown, 5)
	assert.Contains(t, llm.LastPrompt, "monthly expenses in Boston")
	assert.Contains(t, llm.LastPrompt, "- rent: $900.00 (60.0%)")

	_, err = advisor.CostAnalysis(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.Calls)

	req.Location = "Austin"
	_, err = advisor.CostAnalysis(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, llm.Calls)
}

func TestCostAnalysis_Fallback(t *testing.T) {
	result, err := newAdvisor(&MockLLMClient{ForceError: true}, nil).CostAnalysis(context.Background(),
		domain.CostAnalysisRequest{Expenses: studentExpenses(), Location: "Boston"})
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, result.Source)
	require.Len(t, result.Analysis, 4)
	assert.Contains(t, result.Analysis[0], "rent takes 60.0%")
	assert.Contains(t, result.Analysis[0], "in Boston")
	assert.Contains(t, result.Analysis[1], "food takes 26.7%")
}

func TestFallbackCostAnalysis_EvenSpending(t *testing.T) {
	expenses := map[string]float64{}
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		expenses[c] = 100
	}
	breakdown, total, err := ExpenseBreakdown(expenses)
	require.NoError(t, err)

	analysis := FallbackCostAnalysis(breakdown, total, "")
	require.Len(t, analysis, 3)
	assert.Contains(t, analysis[0], "spread evenly")
}

func TestCostAnalysis_InvalidSkipsModel(t *testing.T) {
	llm := &MockLLMClient{Response: `["x"]`}
	_, err := newAdvisor(llm, nil).CostAnalysis(context.Background(), domain.CostAnalysisRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 0, llm.Calls)
}
