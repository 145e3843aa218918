package models

import (
	"testing"
)

func TestBuildAdjustmentOrderItemsSumsMagnitudes(t *testing.T) {
	items, total, err := buildAdjustmentOrderItems([]*NewAdjustmentOrderItem{
		{BatchId: 1, Quantity: dec("25")},
		{BatchId: 2, Quantity: dec("-10.5")},
		{BatchId: 3, Quantity: dec("-4.5")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(dec("40")) {
		t.Errorf("total quantity = %s, want 40", total)
	}
	// Signed quantities survive into the rows untouched.
	if !items[1].Quantity.Equal(dec("-10.5")) {
		t.Errorf("item quantity = %s, want -10.5", items[1].Quantity)
	}
}

func TestBuildAdjustmentOrderItemsRejectsZeroQuantity(t *testing.T) {
	if _, _, err := buildAdjustmentOrderItems([]*NewAdjustmentOrderItem{
		{BatchId: 1, Quantity: dec("0")},
	}); err == nil {
		t.Fatal("zero quantity must be rejected")
	}
}

func TestBuildAdjustmentOrderItemsRejectsEmptyList(t *testing.T) {
	if _, _, err := buildAdjustmentOrderItems(nil); err == nil {
		t.Fatal("empty item list must be rejected")
	}
}
