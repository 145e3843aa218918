package models

import (
	"testing"
	"time"
)

type fixedNumberSource struct{ n int }

func (s fixedNumberSource) Suffix() int { return s.n }

func TestGenerateOrderNumbers(t *testing.T) {
	oldSource := numberSource
	oldNow := numberNow
	t.Cleanup(func() {
		numberSource = oldSource
		numberNow = oldNow
	})

	numberSource = fixedNumberSource{n: 7}
	numberNow = func() time.Time {
		return time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)
	}

	cases := []struct {
		generate func() string
		want     string
	}{
		{GeneratePurchaseOrderNumber, "CG20260901007"},
		{GenerateSalesOrderNumber, "XS20260901007"},
		{GenerateAdjustmentOrderNumber, "TZ20260901007"},
		{GenerateDyeingOrderNumber, "RS20260901007"},
		{GenerateInventoryCheckNumber, "PD20260901007"},
	}
	for _, tc := range cases {
		if got := tc.generate(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestGenerateOrderNumberPadsSuffix(t *testing.T) {
	oldSource := numberSource
	oldNow := numberNow
	t.Cleanup(func() {
		numberSource = oldSource
		numberNow = oldNow
	})

	numberNow = func() time.Time {
		return time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	}

	for _, n := range []int{0, 42, 999} {
		numberSource = fixedNumberSource{n: n}
		got := GenerateSalesOrderNumber()
		if len(got) != len("XS20260105000") {
			t.Errorf("suffix %d: number %q has wrong length", n, got)
		}
	}
}

func TestDefaultNumberSourceRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		n := numberSource.Suffix()
		if n < 0 || n > 999 {
			t.Fatalf("suffix %d out of range", n)
		}
	}
}
