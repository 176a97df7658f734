package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/repository"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

const advisorSystemPrompt = `You are a financial advisor for university students. ` +
	`Give short, concrete recommendations about student loans, budgeting, savings and scholarships. ` +
	`Answer with a JSON array of 3 to 6 strings and nothing else.`

type cachedAdvice struct {
	Recommendations []string `msgpack:"r"`
	Source          string   `msgpack:"s"`
}

// AdvisorService combines the profile metrics with model generated
// recommendations. Without an LLM client, or when the call fails, it falls
// back to recommendations derived from the metrics alone.
type AdvisorService struct {
	metrics *MetricsService
	llm     LLMClient
	cache   repository.CacheRepository
	ttl     time.Duration
	log     zerolog.Logger
}

func NewAdvisorService(
	metrics *MetricsService,
	llm LLMClient,
	cache repository.CacheRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *AdvisorService {
	if ttl <= 0 {
		ttl = DefaultAdviceTTL
	}
	return &AdvisorService{
		metrics: metrics,
		llm:     llm,
		cache:   cache,
		ttl:     ttl,
		log:     log.With().Str("service", "advisor").Logger(),
	}
}

// Recommend validates the profile, computes its metrics and returns
// recommendations. Validation errors are returned before the model is asked.
func (s *AdvisorService) Recommend(
	ctx context.Context,
	req domain.RecommendationRequest,
) (domain.RecommendationResult, error) {
	metrics, err := s.metrics.Metrics(req.FinancialProfile)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	advice := s.ask(ctx, adviceCacheKey(req), advisorSystemPrompt, BuildAdvisorPrompt(req, metrics),
		func() []string { return FallbackRecommendations(metrics) })

	return domain.RecommendationResult{
		Recommendations: advice.Recommendations,
		Metrics:         metrics,
		Source:          advice.Source,
	}, nil
}

// ask serves a cached model answer, or asks the model and falls back to the
// deterministic text when there is no client, the call fails or the answer
// holds nothing usable.
func (s *AdvisorService) ask(
	ctx context.Context,
	key, systemPrompt, prompt string,
	fallback func() []string,
) cachedAdvice {
	if advice, ok := s.cached(key); ok {
		return advice
	}

	advice := s.generate(ctx, systemPrompt, prompt, fallback)

	// Only model answers are cached; fallback text is cheap to rebuild and
	// the next request should retry the model.
	if advice.Source == SourceAI {
		s.store(key, advice)
	}
	return advice
}

func (s *AdvisorService) generate(
	ctx context.Context,
	systemPrompt, prompt string,
	fallback func() []string,
) cachedAdvice {
	if s.llm == nil {
		return cachedAdvice{Recommendations: fallback(), Source: SourceFallback}
	}

	raw, err := s.llm.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		s.log.Warn().Err(err).Msg("Error calling AI service, using fallback advice")
		return cachedAdvice{Recommendations: fallback(), Source: SourceFallback}
	}

	recs := ParseRecommendations(raw)
	if len(recs) == 0 {
		s.log.Warn().Msg("AI response had no usable advice, using fallback")
		return cachedAdvice{Recommendations: fallback(), Source: SourceFallback}
	}
	return cachedAdvice{Recommendations: recs, Source: SourceAI}
}

func (s *AdvisorService) cached(key string) (cachedAdvice, bool) {
	if s.cache == nil {
		return cachedAdvice{}, false
	}
	raw, ok := s.cache.Get(key)
	if !ok {
		return cachedAdvice{}, false
	}
	var advice cachedAdvice
	if err := msgpack.Unmarshal([]byte(raw), &advice); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cached advice")
		return cachedAdvice{}, false
	}
	return advice, true
}

func (s *AdvisorService) store(key string, advice cachedAdvice) {
	if s.cache == nil {
		return
	}
	data, err := msgpack.Marshal(advice)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to encode advice for cache")
		return
	}
	if err := s.cache.Set(key, string(data), s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache advice")
	}
}

// adviceCacheKey fingerprints everything that goes into the prompt except
// the current date.
func adviceCacheKey(req domain.RecommendationRequest) string {
	return cacheKey("advice",
		strconv.FormatFloat(req.LoanAmount, 'g', -1, 64),
		strconv.FormatFloat(req.AnnualInterestRatePercent, 'g', -1, 64),
		strconv.Itoa(req.TermMonths),
		strconv.FormatFloat(req.MonthlyIncome, 'g', -1, 64),
		strconv.FormatFloat(req.MonthlyExpenses, 'g', -1, 64),
		strings.ToLower(strings.TrimSpace(req.Country)),
		strings.ToLower(strings.TrimSpace(req.University)),
		strings.TrimSpace(req.UserMessage),
	)
}

func cacheKey(kind string, parts ...string) string {
	h := xxhash.New()
	for _, part := range parts {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return kind + ":" + strconv.FormatUint(h.Sum64(), 16)
}

// BuildAdvisorPrompt renders the student's situation for the model.
func BuildAdvisorPrompt(req domain.RecommendationRequest, m domain.FinancialMetrics) string {
	var b strings.Builder
	b.WriteString("As an AI financial advisor, analyze this student's situation:\n")
	fmt.Fprintf(&b, "- Loan Amount: $%.2f at %.2f%% over %d months\n",
		req.LoanAmount, req.AnnualInterestRatePercent, req.TermMonths)
	fmt.Fprintf(&b, "- Monthly Income: $%.2f\n", req.MonthlyIncome)
	fmt.Fprintf(&b, "- Monthly Expenses: $%.2f\n", req.MonthlyExpenses)
	if req.Country != "" {
		fmt.Fprintf(&b, "- Country: %s\n", req.Country)
	}
	if req.University != "" {
		fmt.Fprintf(&b, "- University: %s\n", req.University)
	}
	fmt.Fprintf(&b, "- Monthly Payment: $%.2f\n", m.MonthlyPayment)
	fmt.Fprintf(&b, "- Debt-to-Income Ratio: %.3f (%s risk)\n", m.DebtToIncomeRatio, m.RiskLevel)
	fmt.Fprintf(&b, "- Monthly Net Savings: $%.2f\n", m.MonthlyNetSavings)
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n", m.SavingsRatePercent)
	if m.MonthsToEmergencyFund != nil {
		fmt.Fprintf(&b, "- Emergency Fund: $%.2f target, reachable in %d months\n",
			m.EmergencyFundTarget, *m.MonthsToEmergencyFund)
	} else {
		fmt.Fprintf(&b, "- Emergency Fund: $%.2f target, not reachable at current savings\n",
			m.EmergencyFundTarget)
	}
	if msg := strings.TrimSpace(req.UserMessage); msg != "" {
		fmt.Fprintf(&b, "\nThe student asks: %s\n", msg)
	}
	return b.String()
}

// FallbackRecommendations derives advice from the metrics when no model
// answer is available.
func FallbackRecommendations(m domain.FinancialMetrics) []string {
	var recs []string

	switch m.RiskLevel {
	case domain.RiskHigh:
		recs = append(recs, fmt.Sprintf(
			"Your loan is %.1fx your annual income. Look into income-driven repayment or refinancing before taking on more debt.",
			m.DebtToIncomeRatio))
	case domain.RiskMedium:
		recs = append(recs, fmt.Sprintf(
			"Your debt-to-income ratio of %.2f is close to the high-risk range. Avoid new borrowing and prepay when you can.",
			m.DebtToIncomeRatio))
	default:
		recs = append(recs, "Your debt load is manageable. Keep paying on schedule and consider small extra payments to cut interest.")
	}

	if m.MonthlyNetSavings < 0 {
		recs = append(recs, fmt.Sprintf(
			"After the $%.2f loan payment you are short $%.2f each month. Review your largest expenses first.",
			m.MonthlyPayment, math.Abs(m.MonthlyNetSavings)))
	} else if m.SavingsRatePercent < 20 {
		recs = append(recs, fmt.Sprintf(
			"You save %.1f%% of your income. Aim for at least 20%% by trimming discretionary spending.",
			m.SavingsRatePercent))
	}

	if m.MonthsToEmergencyFund != nil {
		recs = append(recs, fmt.Sprintf(
			"Set aside your net savings to reach a $%.2f emergency fund in about %d months.",
			m.EmergencyFundTarget, *m.MonthsToEmergencyFund))
	} else {
		recs = append(recs, fmt.Sprintf(
			"An emergency fund of $%.2f is out of reach right now. Free up monthly cash flow before saving for it.",
			m.EmergencyFundTarget))
	}

	if m.TotalInterestPaid > 0 {
		recs = append(recs, fmt.Sprintf(
			"You will pay $%.2f in interest over the loan. Scholarships and grants reduce what you need to borrow.",
			m.TotalInterestPaid))
	}

	return recs
}
