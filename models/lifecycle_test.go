package models

import (
	"errors"
	"testing"

	"github.com/Alucard672/shaxian/utils"
)

func TestSalesOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to SalesOrderStatus
		allowed  bool
		effect   StockEffect
	}{
		{SalesOrderStatusDraft, SalesOrderStatusPendingReview, true, StockEffectNone},
		{SalesOrderStatusDraft, SalesOrderStatusApproved, true, StockEffectNone},
		{SalesOrderStatusDraft, SalesOrderStatusShipped, true, StockEffectApply},
		{SalesOrderStatusDraft, SalesOrderStatusVoided, true, StockEffectNone},
		{SalesOrderStatusPendingReview, SalesOrderStatusDraft, true, StockEffectNone},
		{SalesOrderStatusApproved, SalesOrderStatusShipped, true, StockEffectApply},
		{SalesOrderStatusShipped, SalesOrderStatusDraft, false, StockEffectNone},
		{SalesOrderStatusShipped, SalesOrderStatusVoided, false, StockEffectNone},
		{SalesOrderStatusVoided, SalesOrderStatusDraft, false, StockEffectNone},
		{SalesOrderStatusPendingReview, SalesOrderStatusShipped, false, StockEffectNone},
	}
	for _, tc := range cases {
		effect, err := ValidateSalesOrderTransition(tc.from, tc.to)
		if tc.allowed {
			if err != nil {
				t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
			}
			if effect != tc.effect {
				t.Errorf("%s -> %s: effect %v, want %v", tc.from, tc.to, effect, tc.effect)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s -> %s: expected rejection", tc.from, tc.to)
		}
	}
}

func TestSameStatusTransitionIsStateError(t *testing.T) {
	_, err := ValidateSalesOrderTransition(SalesOrderStatusDraft, SalesOrderStatusDraft)
	var stateErr *utils.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if _, err := ValidateAdjustmentOrderTransition(AdjustmentOrderStatusCompleted, AdjustmentOrderStatusCompleted); err == nil {
		t.Fatal("expected rejection of no-op transition")
	}
}

func TestAdjustmentOrderTransitionsRoundTrip(t *testing.T) {
	effect, err := ValidateAdjustmentOrderTransition(AdjustmentOrderStatusDraft, AdjustmentOrderStatusCompleted)
	if err != nil || effect != StockEffectApply {
		t.Fatalf("Draft -> Completed: effect %v err %v", effect, err)
	}
	effect, err = ValidateAdjustmentOrderTransition(AdjustmentOrderStatusCompleted, AdjustmentOrderStatusDraft)
	if err != nil || effect != StockEffectReverse {
		t.Fatalf("Completed -> Draft: effect %v err %v", effect, err)
	}
}

func TestPurchaseOrderTransitions(t *testing.T) {
	effect, err := ValidatePurchaseOrderTransition(PurchaseOrderStatusApproved, PurchaseOrderStatusStockedIn)
	if err != nil || effect != StockEffectApply {
		t.Fatalf("Approved -> StockedIn: effect %v err %v", effect, err)
	}
	if _, err := ValidatePurchaseOrderTransition(PurchaseOrderStatusStockedIn, PurchaseOrderStatusDraft); err == nil {
		t.Fatal("StockedIn must be terminal")
	}
	if _, err := ValidatePurchaseOrderTransition(PurchaseOrderStatusVoided, PurchaseOrderStatusApproved); err == nil {
		t.Fatal("Voided must be terminal")
	}
}

func TestDyeingAndCheckTransitionsMoveNoStock(t *testing.T) {
	for pair, effect := range dyeingOrderTransitions {
		if effect != StockEffectNone {
			t.Errorf("dyeing %v -> %v has stock effect", pair.From, pair.To)
		}
	}
	for pair, effect := range inventoryCheckTransitions {
		if effect != StockEffectNone {
			t.Errorf("check %v -> %v has stock effect", pair.From, pair.To)
		}
	}
	if _, err := ValidateDyeingOrderTransition(DyeingOrderStatusCompleted, DyeingOrderStatusProcessing); err == nil {
		t.Fatal("dyeing cannot move backwards")
	}
	if _, err := ValidateInventoryCheckTransition(InventoryCheckStatusCompleted, InventoryCheckStatusCounting); err == nil {
		t.Fatal("completed check cannot reopen")
	}
}

func TestEditableStatuses(t *testing.T) {
	if !SalesOrderEditable(SalesOrderStatusDraft) || SalesOrderEditable(SalesOrderStatusApproved) {
		t.Fatal("sales orders are editable in Draft only")
	}
	if !AdjustmentOrderEditable(AdjustmentOrderStatusCompleted) {
		t.Fatal("completed adjustments stay editable")
	}
	if !InventoryCheckEditable(InventoryCheckStatusCounting) || InventoryCheckEditable(InventoryCheckStatusCompleted) {
		t.Fatal("checks are editable while Planned or Counting only")
	}
	if DyeingOrderEditable(DyeingOrderStatusProcessing) {
		t.Fatal("dyeing orders freeze once shipped")
	}
}
