// Package datetime parses and orders the year-month billing periods found on
// electricity bills.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/pv-viability/pkg/constants"
)

const (
	// PeriodLayout is the format expected in config files and bill histories.
	PeriodLayout = constants.BillingPeriodLayout
)

// ParsePeriod parses a year-month billing period such as "2025-06".
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("billing period %q is not in YYYY-MM form", period)
	}
	return t, nil
}

// PeriodBefore returns true if first is strictly before second.
func PeriodBefore(first, second string) (bool, error) {
	firstT, err := ParsePeriod(first)
	if err != nil {
		return false, err
	}
	secondT, err := ParsePeriod(second)
	if err != nil {
		return false, err
	}
	return firstT.Before(secondT), nil
}

// LatestPeriod returns the most recent of the given billing periods.
// Bill histories are not always listed in order.
func LatestPeriod(periods []string) (string, error) {
	if len(periods) == 0 {
		return "", fmt.Errorf("no billing periods given")
	}

	latest := periods[0]
	if _, err := ParsePeriod(latest); err != nil {
		return "", err
	}
	for _, period := range periods[1:] {
		before, err := PeriodBefore(latest, period)
		if err != nil {
			return "", err
		}
		if before {
			latest = period
		}
	}
	return latest, nil
}
