package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/service"
)

func TestWriteCalculation(t *testing.T) {
	var buf bytes.Buffer
	profile := domain.FinancialProfile{
		LoanAmount:                1200,
		AnnualInterestRatePercent: 0,
		TermMonths:                12,
		MonthlyIncome:             900,
		MonthlyExpenses:           700,
	}
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, writeCalculation(&buf, profile, now, true))

	var out calculateOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 100.0, out.Metrics.MonthlyPayment)
	assert.Equal(t, domain.RiskLow, out.Metrics.RiskLevel)
	require.NotNil(t, out.Schedule)
	assert.Len(t, out.Schedule.Entries, 12)
}

func TestWriteCalculation_Invalid(t *testing.T) {
	var buf bytes.Buffer
	err := writeCalculation(&buf, domain.FinancialProfile{TermMonths: 12}, time.Now(), false)
	assert.ErrorIs(t, err, service.ErrUndefinedRatio)
	assert.Zero(t, buf.Len())
}

func TestCalculateCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{
		"calculate", "--loan", "50000", "--rate", "5.5", "--term", "120",
		"--income", "3000", "--expenses", "2000", "--date", "2025-01-15",
	})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var out calculateOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, domain.RiskHigh, out.Metrics.RiskLevel)
	assert.Equal(t, time.Date(2032, 10, 15, 0, 0, 0, 0, time.UTC), out.Metrics.ProjectedPayoffDate)
	assert.Nil(t, out.Schedule)
}
