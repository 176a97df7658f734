package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmirza/datanyx/domain"
)

func TestCalculateLoan_WithInterest(t *testing.T) {
	service := NewLoanService(zerolog.Nop())

	result, err := service.CalculateLoan(domain.LoanInput{
		Amount:       10000,
		InterestRate: 12,
		TermMonths:   24,
	})
	require.NoError(t, err)

	assert.Equal(t, 470.73, result.MonthlyPayment)
	assert.InDelta(t, 11297.63, result.TotalPayment, 0.01)
	assert.InDelta(t, 1297.63, result.TotalInterest, 0.01)
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {
	service := NewLoanService(zerolog.Nop())

	result, err := service.CalculateLoan(domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Equal(t, 0.0, result.TotalInterest)
}

func TestCalculateLoan_InvalidInput(t *testing.T) {
	service := NewLoanService(zerolog.Nop())

	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"zero amount", domain.LoanInput{Amount: 0, InterestRate: 10, TermMonths: 12}},
		{"amount above max", domain.LoanInput{Amount: MaxLoanAmount + 1, InterestRate: 10, TermMonths: 12}},
		{"negative rate", domain.LoanInput{Amount: 1000, InterestRate: -1, TermMonths: 12}},
		{"rate above max", domain.LoanInput{Amount: 1000, InterestRate: MaxInterestRate + 1, TermMonths: 12}},
		{"zero term", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: 0}},
		{"term above max", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: MaxTermMonths + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CalculateLoan(tt.input)
			assert.ErrorIs(t, err, ErrInvalidLoan)
		})
	}
}

func TestSchedule_ClosesAtZero(t *testing.T) {
	service := NewLoanService(zerolog.Nop())
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := service.Schedule(domain.LoanInput{
		Amount:       100000,
		InterestRate: 5,
		TermMonths:   360,
	}, start)
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 360)

	first := schedule.Entries[0]
	assert.Equal(t, 1, first.Period)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.InDelta(t, 536.82, first.Payment, 0.01)
	assert.InDelta(t, 416.67, first.Interest, 0.01)

	last := schedule.Entries[len(schedule.Entries)-1]
	assert.Equal(t, 360, last.Period)
	assert.Equal(t, 0.0, last.RemainingBalance)

	var principal float64
	for _, e := range schedule.Entries {
		principal += e.Principal
	}
	assert.InDelta(t, 100000.0, principal, 0.01)
	assert.InDelta(t, schedule.Loan.TotalPayment-100000, schedule.Loan.TotalInterest, 0.02)
}

func TestSchedule_ZeroInterest(t *testing.T) {
	service := NewLoanService(zerolog.Nop())

	schedule, err := service.Schedule(domain.LoanInput{
		Amount:       1000,
		InterestRate: 0,
		TermMonths:   3,
	}, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, schedule.Entries, 3)

	assert.Equal(t, 333.33, schedule.Entries[0].Principal)
	assert.Equal(t, 333.33, schedule.Entries[1].Principal)
	assert.Equal(t, 333.34, schedule.Entries[2].Principal)
	assert.Equal(t, 0.0, schedule.Loan.TotalInterest)
	assert.Equal(t, 1000.0, schedule.Loan.TotalPayment)
}

func TestSchedule_Invalid(t *testing.T) {
	service := NewLoanService(zerolog.Nop())

	_, err := service.Schedule(domain.LoanInput{Amount: 1000, TermMonths: 0}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidLoan)
}
