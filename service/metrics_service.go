package service

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/repository"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// MetricsService wraps the metrics engine for request handlers: it supplies
// the current date, adds the peer based default risk score and keeps a
// history of assessments.
type MetricsService struct {
	repo  repository.CalculationRepository
	peers repository.PeerLoanRepository
	clock Clock
	log   zerolog.Logger
}

func NewMetricsService(
	repo repository.CalculationRepository,
	peers repository.PeerLoanRepository,
	clock Clock,
	log zerolog.Logger,
) *MetricsService {
	if clock == nil {
		clock = time.Now
	}
	return &MetricsService{
		repo:  repo,
		peers: peers,
		clock: clock,
		log:   log.With().Str("service", "metrics").Logger(),
	}
}

// Metrics computes the engine metrics only, without recording them.
func (s *MetricsService) Metrics(profile domain.FinancialProfile) (domain.FinancialMetrics, error) {
	return ComputeMetrics(profile, s.clock())
}

// Assess computes the metrics and the default risk score and records the
// result. A failed save is logged and does not fail the assessment.
func (s *MetricsService) Assess(profile domain.FinancialProfile) (domain.ProfileAssessment, error) {
	now := s.clock()

	metrics, err := ComputeMetrics(profile, now)
	if err != nil {
		return domain.ProfileAssessment{}, err
	}

	var peers []domain.PeerLoan
	if s.peers != nil {
		peers = s.peers.All()
	}

	assessment := domain.ProfileAssessment{
		Metrics:          metrics,
		DefaultRiskScore: DefaultRiskScore(profile.LoanAmount, metrics.DebtToIncomeRatio, peers),
	}

	if s.repo != nil {
		record := domain.CalculationRecord{
			ID:         uuid.NewString(),
			Profile:    profile,
			Assessment: assessment,
			CreatedAt:  now.UTC(),
		}
		if err := s.repo.Save(record); err != nil {
			s.log.Warn().Err(err).Msg("Failed to save calculation")
		}
	}

	s.log.Debug().
		Str("risk_level", string(metrics.RiskLevel)).
		Float64("dti", metrics.DebtToIncomeRatio).
		Float64("default_risk", assessment.DefaultRiskScore).
		Msg("Assessed profile")

	return assessment, nil
}

// History returns recent assessments, newest first.
func (s *MetricsService) History(limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if s.repo == nil {
		return []domain.CalculationRecord{}, nil
	}
	return s.repo.Recent(limit)
}

// DefaultRiskScore estimates a 0-100 default risk. The base is the
// debt-to-income ratio times DTIRiskWeight; when peers with a loan amount
// within PeerSimilarityWindow exist, their default rate adds up to
// PeerDefaultRiskWeight points.
func DefaultRiskScore(loanAmount, debtToIncomeRatio float64, peers []domain.PeerLoan) float64 {
	score := debtToIncomeRatio * DTIRiskWeight

	var defaults []float64
	for _, p := range peers {
		if math.Abs(p.LoanAmount-loanAmount) < PeerSimilarityWindow {
			defaults = append(defaults, float64(p.DefaultStatus))
		}
	}
	if len(defaults) > 0 {
		score += stat.Mean(defaults, nil) * PeerDefaultRiskWeight
	}

	return math.Min(MaxDefaultRiskScore, math.Max(0, score))
}
