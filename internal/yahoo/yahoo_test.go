package yahoo

import (
	"testing"
	"time"
)

func TestRawValue_Value(t *testing.T) {
	t.Run("absent field reports not ok", func(t *testing.T) {
		var v RawValue
		if _, ok := v.Value(); ok {
			t.Error("Expected ok=false for an absent raw field")
		}
	})

	t.Run("present zero is still a value", func(t *testing.T) {
		zero := 0.0
		v := RawValue{Raw: &zero}
		got, ok := v.Value()
		if !ok || got != 0 {
			t.Errorf("Expected (0, true), got (%v, %v)", got, ok)
		}
	})
}

func TestParseDividends(t *testing.T) {
	client := NewFinanceClient("")

	chartWith := func(dividends map[string]ChartDividend) ChartResponse {
		var resp ChartResponse
		result := ChartResult{}
		result.Events.Dividends = dividends
		resp.Chart.Result = []ChartResult{result}
		return resp
	}

	t.Run("sorts events most recent first", func(t *testing.T) {
		march := time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC).Unix()
		december := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC).Unix()
		resp := chartWith(map[string]ChartDividend{
			"1742515200": {Amount: 0.68, Date: march},
			"1766188800": {Amount: 0.74, Date: december},
		})

		payments := client.ParseDividends(resp)
		if len(payments) != 2 {
			t.Fatalf("Expected 2 payments, got %d", len(payments))
		}
		if payments[0].Amount != 0.74 || payments[1].Amount != 0.68 {
			t.Errorf("Expected descending date order, got %+v", payments)
		}
	})

	t.Run("drops non-positive amounts", func(t *testing.T) {
		resp := chartWith(map[string]ChartDividend{
			"1": {Amount: 0, Date: 1},
			"2": {Amount: -0.5, Date: 2},
			"3": {Amount: 0.74, Date: 3},
		})

		payments := client.ParseDividends(resp)
		if len(payments) != 1 {
			t.Fatalf("Expected 1 payment with bad amounts dropped, got %d", len(payments))
		}
	})

	t.Run("empty result yields empty slice", func(t *testing.T) {
		if payments := client.ParseDividends(ChartResponse{}); len(payments) != 0 {
			t.Errorf("Expected no payments, got %d", len(payments))
		}
	})

	t.Run("symbol without dividend events yields empty slice", func(t *testing.T) {
		if payments := client.ParseDividends(chartWith(nil)); len(payments) != 0 {
			t.Errorf("Expected no payments, got %d", len(payments))
		}
	})
}
