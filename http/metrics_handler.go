package http

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/service"
)

type MetricsHandler struct {
	service *service.MetricsService
	log     zerolog.Logger
}

func NewMetricsHandler(service *service.MetricsService, log zerolog.Logger) *MetricsHandler {
	return &MetricsHandler{service: service, log: log}
}

func (h *MetricsHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var profile domain.FinancialProfile
	if !decodeBody(w, r, h.log, &profile) {
		return
	}

	assessment, err := h.service.Assess(profile)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, assessment)
}

func (h *MetricsHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeFailure(w, h.log, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := h.service.History(limit)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, records)
}
