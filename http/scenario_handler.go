package http

import (
	"net/http"

	"card-payoff/domain"
	"card-payoff/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
}

func NewScenarioHandler(service *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

// Simulate handles POST /scenarios/simulate.
func (h *ScenarioHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationInput
	if !decodeJSONPost(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// MinimumPayment handles POST /scenarios/minimum-payment.
func (h *ScenarioHandler) MinimumPayment(w http.ResponseWriter, r *http.Request) {
	var input domain.MinimumPaymentInput
	if !decodeJSONPost(w, r, &input) {
		return
	}

	result, err := h.service.CombinedMinimumPayment(input.Accounts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
