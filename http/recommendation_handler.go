package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/service"
)

type RecommendationHandler struct {
	service *service.AdvisorService
	log     zerolog.Logger
}

func NewRecommendationHandler(service *service.AdvisorService, log zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: service, log: log}
}

func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendationRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	result, err := h.service.Recommend(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, result)
}

func (h *RecommendationHandler) InvestmentAdvice(w http.ResponseWriter, r *http.Request) {
	var req domain.InvestmentAdviceRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	result, err := h.service.InvestmentAdvice(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, result)
}

func (h *RecommendationHandler) CostAnalysis(w http.ResponseWriter, r *http.Request) {
	var req domain.CostAnalysisRequest
	if !decodeBody(w, r, h.log, &req) {
		return
	}

	result, err := h.service.CostAnalysis(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, result)
}
