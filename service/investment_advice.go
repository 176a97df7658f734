package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/codewithmirza/datanyx/domain"
)

const investmentSystemPrompt = `You are an investment educator for university students. ` +
	`Suggest simple, low-cost options that match the student's savings, risk tolerance and time horizon. ` +
	`Answer with a JSON array of 3 to 6 strings and nothing else.`

func normalizeInvestmentRequest(req domain.InvestmentAdviceRequest) (domain.InvestmentAdviceRequest, error) {
	if err := checkAmount("savings", req.Savings); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	req.RiskTolerance = strings.ToLower(strings.TrimSpace(req.RiskTolerance))
	switch req.RiskTolerance {
	case "":
		req.RiskTolerance = domain.ToleranceMedium
	case domain.ToleranceLow, domain.ToleranceMedium, domain.ToleranceHigh:
	default:
		return req, fmt.Errorf("%w: riskTolerance must be low, medium or high, got %q",
			ErrInvalidRequest, req.RiskTolerance)
	}

	req.TimeHorizon = strings.TrimSpace(req.TimeHorizon)
	return req, nil
}

// InvestmentAdvice suggests where a student could put their savings.
func (s *AdvisorService) InvestmentAdvice(
	ctx context.Context,
	req domain.InvestmentAdviceRequest,
) (domain.InvestmentAdviceResult, error) {
	req, err := normalizeInvestmentRequest(req)
	if err != nil {
		return domain.InvestmentAdviceResult{}, err
	}

	key := cacheKey("investment",
		strconv.FormatFloat(req.Savings, 'g', -1, 64),
		req.RiskTolerance,
		strings.ToLower(req.TimeHorizon),
	)
	advice := s.ask(ctx, key, investmentSystemPrompt, BuildInvestmentPrompt(req),
		func() []string { return FallbackInvestmentAdvice(req) })

	return domain.InvestmentAdviceResult{Advice: advice.Recommendations, Source: advice.Source}, nil
}

func BuildInvestmentPrompt(req domain.InvestmentAdviceRequest) string {
	horizon := req.TimeHorizon
	if horizon == "" {
		horizon = "an unspecified"
	}
	return fmt.Sprintf(
		"Generate investment advice for a student with $%.2f savings, %s risk tolerance, and %s time horizon.",
		req.Savings, req.RiskTolerance, horizon)
}

func FallbackInvestmentAdvice(req domain.InvestmentAdviceRequest) []string {
	var advice []string

	if req.Savings < MinInvestableSavings {
		advice = append(advice, fmt.Sprintf(
			"With $%.2f saved, build an emergency fund in a high-yield savings account before investing.",
			req.Savings))
	}

	switch req.RiskTolerance {
	case domain.ToleranceLow:
		advice = append(advice,
			"Keep most of your savings in a high-yield savings account, certificates of deposit or government bonds.")
	case domain.ToleranceHigh:
		advice = append(advice,
			"A diversified stock index fund suits a high risk tolerance. Avoid single stocks with money you need soon.")
	default:
		advice = append(advice,
			"Split your savings between a broad index fund and bonds, for example 60/40, and rebalance once a year.")
	}

	if req.TimeHorizon != "" {
		advice = append(advice, fmt.Sprintf(
			"Money you need within your %s horizon should stay in cash or short-term bonds.", req.TimeHorizon))
	}

	advice = append(advice,
		"Compare expected returns with your student loan rate. Paying down high-rate debt is a guaranteed return.")
	return advice
}
