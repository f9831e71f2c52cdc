package analytics

import (
	"testing"

	"github.com/paycal/backend/internal/domain/subscription"
)

func TestNormalize(t *testing.T) {
	rates := FixedRates{USD: 34, EUR: 36}

	tests := []struct {
		name   string
		totals []subscription.CurrencyTotal
		want   string
	}{
		{"empty", nil, "0.00"},
		{"lira only", []subscription.CurrencyTotal{{Currency: "₺", Total: 349.99}}, "349.99"},
		{
			name: "mixed",
			totals: []subscription.CurrencyTotal{
				{Currency: "₺", Total: 100},
				{Currency: "$", Total: 10},
				{Currency: "€", Total: 2.5},
			},
			want: "530.00",
		},
		{"rounding", []subscription.CurrencyTotal{{Currency: "$", Total: 0.333}}, "11.32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(Normalize(rates, tt.totals)); got != tt.want {
				t.Errorf("FormatAmount(Normalize()) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole float64
		want        int
	}{
		{50, 100, 50},
		{1, 3, 33},
		{2, 3, 67},
		{10, 0, 0},
		{0, 10, 0},
	}

	for _, tt := range tests {
		if got := Percentage(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percentage(%v, %v) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestTotalsFromDaily(t *testing.T) {
	days := []subscription.DailyUsage{
		{Date: "2024-06-03", Count: 3},
		{Date: "2024-06-01", Count: 2},
	}

	got := TotalsFromDaily(days, UsageWindowDays)
	if got.TotalUsage != 5 || got.DaysActive != 2 {
		t.Fatalf("TotalsFromDaily() = %+v", got)
	}
	if got.AvgPerDay != 0.2 {
		t.Errorf("AvgPerDay = %v, want 0.2", got.AvgPerDay)
	}

	if empty := TotalsFromDaily(nil, UsageWindowDays); empty != (UsageTotals{}) {
		t.Errorf("TotalsFromDaily(nil) = %+v", empty)
	}
}
