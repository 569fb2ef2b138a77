package format

import (
	"testing"

	"github.com/iwvelando/pv-viability/pkg/optional"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		code     string
		expected string
	}{
		{"Zero", 0, "MXN", "MXN 0.00"},
		{"Small", 12.5, "MXN", "MXN 12.50"},
		{"Thousands", 1234.56, "USD", "USD 1,234.56"},
		{"Millions", 12000000, "MXN", "MXN 12,000,000.00"},
		{"Negative", -1234.56, "EUR", "-EUR 1,234.56"},
		{"Rounds half away from zero", 0.125, "MXN", "MXN 0.13"},
		{"Negative rounding to zero", -0.001, "MXN", "MXN 0.00"},
		{"Lowercase code", 1, "usd", "USD 1.00"},
		{"Unknown code", 1, "xyz", "XYZ 1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Money(tt.amount, tt.code); got != tt.expected {
				t.Errorf("Money(%v, %q) = %q, expected %q", tt.amount, tt.code, got, tt.expected)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		value    float64
		places   int32
		expected string
	}{
		{4165.6, 0, "4,166"},
		{0.99321, 4, "0.9932"},
		{999.999, 2, "1,000.00"},
		{-1234567.891, 2, "-1,234,567.89"},
		{-0.001, 2, "0.00"},
		{104_137.5, 0, "104,138"},
	}

	for _, tt := range tests {
		if got := Number(tt.value, tt.places); got != tt.expected {
			t.Errorf("Number(%v, %d) = %q, expected %q", tt.value, tt.places, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		fraction float64
		expected string
	}{
		{0.1234, "12.34%"},
		{0, "0.00%"},
		{-0.05, "-5.00%"},
		{1.2, "120.00%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.fraction); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.fraction, got, tt.expected)
		}
	}
}

func TestOptionalRendering(t *testing.T) {
	if got := OptionalMoney(optional.None[float64](), "MXN"); got != NotAvailable {
		t.Errorf("OptionalMoney(absent) = %q", got)
	}
	if got := OptionalMoney(optional.Of(1500.0), "MXN"); got != "MXN 1,500.00" {
		t.Errorf("OptionalMoney(1500) = %q", got)
	}
	if got := OptionalPercent(optional.None[float64]()); got != NotAvailable {
		t.Errorf("OptionalPercent(absent) = %q", got)
	}
	if got := OptionalPercent(optional.Of(0.25)); got != "25.00%" {
		t.Errorf("OptionalPercent(0.25) = %q", got)
	}

	years := []struct {
		v        optional.Int
		expected string
	}{
		{optional.None[int](), NotAvailable},
		{optional.Of(0), "0 years"},
		{optional.Of(1), "1 year"},
		{optional.Of(7), "7 years"},
	}
	for _, tt := range years {
		if got := OptionalYears(tt.v); got != tt.expected {
			t.Errorf("OptionalYears(%v) = %q, expected %q", tt.v, got, tt.expected)
		}
	}
}
