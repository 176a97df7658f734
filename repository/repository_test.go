package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmirza/datanyx/domain"
)

func record(id string, createdAt time.Time) domain.CalculationRecord {
	months := 12
	return domain.CalculationRecord{
		ID: id,
		Profile: domain.FinancialProfile{
			LoanAmount:                1000,
			AnnualInterestRatePercent: 4,
			TermMonths:                12,
			MonthlyIncome:             2000,
			MonthlyExpenses:           1500,
		},
		Assessment: domain.ProfileAssessment{
			Metrics: domain.FinancialMetrics{
				MonthlyPayment:        85.15,
				RiskLevel:             domain.RiskLow,
				ProjectedPayoffDate:   createdAt.AddDate(1, 0, 0),
				MonthsToEmergencyFund: &months,
			},
			DefaultRiskScore: 0.83,
		},
		CreatedAt: createdAt,
	}
}

func exerciseCalculationRepository(t *testing.T, repo CalculationRepository) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	empty, err := repo.Recent(10)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, repo.Save(record("a", base)))
	require.NoError(t, repo.Save(record("b", base.Add(time.Hour))))
	require.NoError(t, repo.Save(record("c", base.Add(2*time.Hour))))

	recent, err := repo.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, domain.RiskLow, recent[0].Assessment.Metrics.RiskLevel)
	require.NotNil(t, recent[0].Assessment.Metrics.MonthsToEmergencyFund)
	assert.Equal(t, 12, *recent[0].Assessment.Metrics.MonthsToEmergencyFund)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Hour)))

	all, err := repo.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	deleted, err := repo.DeleteBefore(base.Add(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	all, err = repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "c", all[0].ID)
}

func TestCalculationRepositoryMemory(t *testing.T) {
	exerciseCalculationRepository(t, NewCalculationRepositoryMemory())
}

func TestCalculationRepositorySQLite(t *testing.T) {
	repo, err := OpenCalculationRepositorySQLite(filepath.Join(t.TempDir(), "data", "calculations.db"))
	require.NoError(t, err)
	defer repo.Close()

	exerciseCalculationRepository(t, repo)
}

func TestCalculationRepositorySQLite_DuplicateID(t *testing.T) {
	repo, err := OpenCalculationRepositorySQLite(filepath.Join(t.TempDir(), "calculations.db"))
	require.NoError(t, err)
	defer repo.Close()

	now := time.Now().UTC()
	require.NoError(t, repo.Save(record("dup", now)))
	assert.Error(t, repo.Save(record("dup", now)))
}

func TestMemoryCache_TTL(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set("forever", "1", 0))
	require.NoError(t, cache.Set("short", "2", time.Minute))

	v, ok := cache.Get("short")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	now = now.Add(time.Minute)

	_, ok = cache.Get("short")
	assert.False(t, ok)

	v, ok = cache.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, cache.Len())
}

func TestDefaultPeerLoans(t *testing.T) {
	repo, err := DefaultPeerLoans()
	require.NoError(t, err)

	loans := repo.All()
	assert.Len(t, loans, 10)
	assert.Equal(t, domain.PeerLoan{LoanAmount: 40000, DefaultStatus: 0}, loans[0])

	// callers get a copy
	loans[0].LoanAmount = -1
	assert.Equal(t, 40000.0, repo.All()[0].LoanAmount)
}

func TestLoadPeerLoans_Invalid(t *testing.T) {
	_, err := LoadPeerLoans([]byte("loans:\n  - loan_amount: 100\n    default_status: 2\n"))
	assert.Error(t, err)

	_, err = LoadPeerLoans([]byte("loans: [this is not"))
	assert.Error(t, err)
}
