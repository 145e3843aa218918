package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildDyeingOrderItemsUsesOrderLevelPrice(t *testing.T) {
	_, total, err := buildDyeingOrderItems([]*NewDyeingOrderItem{
		{TargetColorId: 1, Quantity: dec("120")},
		{TargetColorId: 2, Quantity: dec("80.5")},
	}, dec("3.20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(dec("641.60")) {
		t.Errorf("total = %s, want 641.60", total)
	}
}

func TestBuildDyeingOrderItemsZeroPrice(t *testing.T) {
	_, total, err := buildDyeingOrderItems([]*NewDyeingOrderItem{
		{TargetColorId: 1, Quantity: dec("50")},
	}, decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("total = %s, want 0", total)
	}
}

func TestBuildDyeingOrderItemsRejectsNegativePrice(t *testing.T) {
	if _, _, err := buildDyeingOrderItems([]*NewDyeingOrderItem{
		{TargetColorId: 1, Quantity: dec("50")},
	}, dec("-1")); err == nil {
		t.Fatal("negative processing price must be rejected")
	}
}
