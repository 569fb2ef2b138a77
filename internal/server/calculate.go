package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/pv-viability/internal/calculator"
	"github.com/iwvelando/pv-viability/pkg/params"
)

// calculateRequest is a parameter set, optionally with the bill history the
// billing facts are derived from. Omitted parameters take their defaults.
type calculateRequest struct {
	params.Params
	BillHistory []params.BillPeriod `json:"billHistory,omitempty"`
}

type calculateResponse struct {
	calculator.Result
	Duration string `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	req := calculateRequest{Params: params.Default()}
	if err := h.decodeJSON(w, r, &req, true, "parameters"); err != nil {
		h.fail(w, op, err)
		return
	}

	p, err := req.resolve()
	if err != nil {
		h.fail(w, op, err)
		return
	}

	result := calculator.Calculate(h.logger, p)
	elapsed := time.Since(start)

	h.logger.Info("calculation served",
		zap.String("op", op),
		zap.String("id", result.ID),
		zap.Int("issues", len(result.Issues)),
		zap.Duration("duration", elapsed),
	)
	h.writeJSON(w, http.StatusOK, calculateResponse{Result: result, Duration: elapsed.String()})
}

// resolve applies the bill history, if any, and the structural checks.
func (req calculateRequest) resolve() (params.Params, error) {
	p := req.Params
	if len(req.BillHistory) > 0 {
		derived, err := params.FromBillHistory(p, req.BillHistory)
		if err != nil {
			return params.Params{}, badRequest("%v", err)
		}
		p = derived
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return params.Params{}, badRequest("%v", err)
	}
	return p, nil
}
