package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/codewithmirza/datanyx/domain"
	"github.com/codewithmirza/datanyx/service"
)

type LoanHandler struct {
	service *service.LoanService
	clock   service.Clock
	log     zerolog.Logger
}

func NewLoanHandler(service *service.LoanService, clock service.Clock, log zerolog.Logger) *LoanHandler {
	return &LoanHandler{service: service, clock: clock, log: log}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeBody(w, r, h.log, &input) {
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, result)
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeBody(w, r, h.log, &input) {
		return
	}

	schedule, err := h.service.Schedule(input, h.clock())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeData(w, h.log, schedule)
}
