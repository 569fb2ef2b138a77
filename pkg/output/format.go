// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/pv-viability/internal/calculator"
	"github.com/iwvelando/pv-viability/pkg/constants"
	"github.com/iwvelando/pv-viability/pkg/format"
)

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []calculator.ScenarioResult) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable report:
// the KPI summary, advisory issues and the yearly table for each scenario.
func PrettyFormat(w io.Writer, results []calculator.ScenarioResult) error {
	p := message.NewPrinter(language.English)
	for i, scenario := range results {
		r := scenario.Result
		code := r.Inputs.Currency

		_, _ = p.Fprintf(w, "--- Results for scenario %s (%s, %s) ---\n", scenario.Name, r.Inputs.Mode, format.CurrencyLabel(code))
		_, _ = p.Fprintf(w, "NPV                | %s\n", format.OptionalMoney(r.KPIs.NPV, code))
		_, _ = p.Fprintf(w, "IRR                | %s\n", format.OptionalPercent(r.KPIs.IRR))
		_, _ = p.Fprintf(w, "Simple payback     | %s\n", format.OptionalYears(r.KPIs.SimplePayback))
		_, _ = p.Fprintf(w, "Discounted payback | %s\n", format.OptionalYears(r.KPIs.DiscountedPayback))
		_, _ = p.Fprintf(w, "ROI                | %s\n", format.OptionalPercent(r.KPIs.ROI))
		lcoe := format.OptionalMoney(r.KPIs.LCOE, code)
		if r.KPIs.LCOE.Present() {
			lcoe += " / kWh"
		}
		_, _ = p.Fprintf(w, "LCOE               | %s\n", lcoe)
		_, _ = p.Fprintf(w, "Lifetime energy    | %s kWh\n", format.Number(r.LifetimeGenerationKWh, 0))

		if len(r.Issues) > 0 {
			_, _ = p.Fprintf(w, "Issues:\n")
			for _, issue := range r.Issues {
				_, _ = p.Fprintf(w, "  %s\n", issue)
			}
		}

		_, _ = p.Fprintf(w, "\nYear | Energy (kWh) | Cost without system | Cost with system | Savings | Opex | Flow | Discounted flow | Cumulative\n")
		_, _ = p.Fprintf(w, "____ | ____________ | ___________________ | ________________ | _______ | ____ | ____ | _______________ | __________\n")
		for _, row := range r.Cashflow {
			if row.Year == 0 {
				_, _ = p.Fprintf(w, "%4d | %12s | %19s | %16s | %7s | %4s | %.2f | %.2f | %.2f\n",
					row.Year, "", "", "", "", "", row.Flow, row.DiscountedFlow, row.Cumulative)
				continue
			}
			proj := r.Projections[row.Year-1]
			_, _ = p.Fprintf(w, "%4d | %.0f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f\n",
				row.Year, proj.EnergyKWh, proj.CostWithoutSystem, proj.CostWithSystem, proj.Savings,
				proj.Opex, row.Flow, row.DiscountedFlow, row.Cumulative)
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
	return nil
}

var csvHeader = []string{
	"scenario", "year", "energyKWh", "costWithoutSystem", "costWithSystem",
	"savings", "opex", "flow", "discountedFlow", "cumulative",
}

// CsvFormat outputs one comma-separated row per scenario and project year,
// year 0 included.
func CsvFormat(w io.Writer, results []calculator.ScenarioResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	amount := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	for _, scenario := range results {
		r := scenario.Result
		for _, row := range r.Cashflow {
			record := []string{scenario.Name, strconv.Itoa(row.Year), "", "", "", "", ""}
			if row.Year > 0 {
				proj := r.Projections[row.Year-1]
				record[2] = strconv.FormatFloat(proj.EnergyKWh, 'f', 2, 64)
				record[3] = amount(proj.CostWithoutSystem)
				record[4] = amount(proj.CostWithSystem)
				record[5] = amount(proj.Savings)
				record[6] = amount(proj.Opex)
			}
			record = append(record, amount(row.Flow), amount(row.DiscountedFlow), amount(row.Cumulative))
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the complete results as indented JSON. Absent KPIs are null.
func JSONFormat(w io.Writer, results []calculator.ScenarioResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
