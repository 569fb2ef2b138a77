package tariff

import (
	"testing"

	"github.com/iwvelando/pv-viability/pkg/mathutil"
)

func ptr(v float64) *float64 { return &v }

func TestEscalate(t *testing.T) {
	tests := []struct {
		name           string
		energy, demand *float64
		rate           float64
		years          int
		wantEnergy     []float64
		wantDemand     []float64
	}{
		{
			name:       "Positive escalation",
			energy:     ptr(2.5),
			demand:     ptr(300),
			rate:       0.06,
			years:      3,
			wantEnergy: []float64{2.5, 2.65, 2.809},
			wantDemand: []float64{300, 318, 337.08},
		},
		{
			name:       "Declining tariffs",
			energy:     ptr(2),
			demand:     ptr(100),
			rate:       -0.1,
			years:      3,
			wantEnergy: []float64{2, 1.8, 1.62},
			wantDemand: []float64{100, 90, 81},
		},
		{
			name:       "Missing prices default to zero",
			rate:       0.07,
			years:      2,
			wantEnergy: []float64{0, 0},
			wantDemand: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Escalate(tt.energy, tt.demand, tt.rate, tt.years)
			if len(s.Energy) != tt.years || len(s.Demand) != tt.years {
				t.Fatalf("expected %d values, got %d energy and %d demand", tt.years, len(s.Energy), len(s.Demand))
			}
			for y := range tt.wantEnergy {
				if !mathutil.WithinTolerance(s.Energy[y], tt.wantEnergy[y], 1e-9) {
					t.Errorf("energy[%d] = %v, expected %v", y, s.Energy[y], tt.wantEnergy[y])
				}
				if !mathutil.WithinTolerance(s.Demand[y], tt.wantDemand[y], 1e-9) {
					t.Errorf("demand[%d] = %v, expected %v", y, s.Demand[y], tt.wantDemand[y])
				}
			}
		})
	}
}

func TestEscalateZeroYears(t *testing.T) {
	s := Escalate(ptr(1), ptr(1), 0.05, 0)
	if len(s.Energy) != 0 || len(s.Demand) != 0 {
		t.Errorf("expected empty schedule, got %+v", s)
	}
}
