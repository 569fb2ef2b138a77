package params

import (
	"fmt"
	"math"

	"github.com/iwvelando/pv-viability/pkg/datetime"
)

// BillPeriod is one row of a bill's consumption history.
type BillPeriod struct {
	Period         string  `json:"period" yaml:"period"`
	ConsumptionKWh float64 `json:"consumptionKWh" yaml:"consumptionKWh"`
	DemandKW       float64 `json:"demandKW" yaml:"demandKW"`
	TotalCost      float64 `json:"totalCost,omitempty" yaml:"totalCost,omitempty"`
}

// FromBillHistory derives billing facts from a bill's consumption history:
// monthly consumption is the mean of the recorded periods and contracted
// demand is the highest recorded demand. Rows that carry a bill total set the
// current total cost to the mean of those totals. When base has no billing
// period the latest recorded one is used. The remaining fields of base are
// kept as given.
func FromBillHistory(base Params, history []BillPeriod) (Params, error) {
	if len(history) == 0 {
		return base, fmt.Errorf("bill history is empty")
	}

	var total, peak, billed float64
	var billedRows int
	periods := make([]string, 0, len(history))
	for _, row := range history {
		if row.ConsumptionKWh < 0 || row.DemandKW < 0 || row.TotalCost < 0 {
			return base, fmt.Errorf("bill period %q has negative readings", row.Period)
		}
		total += row.ConsumptionKWh
		peak = math.Max(peak, row.DemandKW)
		if row.TotalCost > 0 {
			billed += row.TotalCost
			billedRows++
		}
		periods = append(periods, row.Period)
	}

	latest, err := datetime.LatestPeriod(periods)
	if err != nil {
		return base, fmt.Errorf("bill history: %w", err)
	}

	out := base.Clone()
	out.MonthlyConsumptionKWh = Float(total / float64(len(history)))
	out.ContractedDemandKW = Float(peak)
	if billedRows > 0 {
		out.CurrentTotalCost = Float(billed / float64(billedRows))
	}
	if out.BillingPeriod == "" {
		out.BillingPeriod = latest
	}
	return out, nil
}
