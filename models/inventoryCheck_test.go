package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestSummarizeInventoryCheckItems(t *testing.T) {
	items := []*InventoryCheckItem{
		{SystemQuantity: dec("100"), ActualQuantity: decPtr("103.5")},
		{SystemQuantity: dec("50"), ActualQuantity: decPtr("47")},
		{SystemQuantity: dec("20"), ActualQuantity: decPtr("20")},
		{SystemQuantity: dec("75")},
	}
	progressTotal, progressCompleted, surplus, deficit := summarizeInventoryCheckItems(items)
	if progressTotal != 4 {
		t.Errorf("progressTotal = %d, want 4", progressTotal)
	}
	if progressCompleted != 3 {
		t.Errorf("progressCompleted = %d, want 3", progressCompleted)
	}
	if !surplus.Equal(dec("3.5")) {
		t.Errorf("surplus = %s, want 3.5", surplus)
	}
	if !deficit.Equal(dec("3")) {
		t.Errorf("deficit = %s, want 3", deficit)
	}
	if !items[0].Difference.Equal(dec("3.5")) {
		t.Errorf("difference = %s, want 3.5", items[0].Difference)
	}
	if !items[1].Difference.Equal(dec("-3")) {
		t.Errorf("difference = %s, want -3", items[1].Difference)
	}
	// Uncounted items contribute nothing.
	if !items[3].Difference.IsZero() {
		t.Errorf("uncounted item difference = %s, want 0", items[3].Difference)
	}
}

func TestSummarizeInventoryCheckItemsAllUncounted(t *testing.T) {
	items := []*InventoryCheckItem{
		{SystemQuantity: dec("10")},
		{SystemQuantity: dec("20")},
	}
	progressTotal, progressCompleted, surplus, deficit := summarizeInventoryCheckItems(items)
	if progressTotal != 2 || progressCompleted != 0 {
		t.Errorf("progress = %d/%d, want 0/2", progressCompleted, progressTotal)
	}
	if !surplus.IsZero() || !deficit.IsZero() {
		t.Errorf("surplus/deficit = %s/%s, want 0/0", surplus, deficit)
	}
}
