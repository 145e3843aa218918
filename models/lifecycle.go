package models

import (
	"fmt"

	"github.com/Alucard672/shaxian/utils"
)

// StockEffect says what a legal status transition does to batch stock.
// Every stock mutation in the system is keyed off these tables; no other
// code path touches batch quantities.
type StockEffect int

const (
	StockEffectNone StockEffect = iota
	// StockEffectApply posts each item's stock delta for the document type
	// (negative for sales shipment, signed for adjustments, positive for
	// purchase receipt).
	StockEffectApply
	// StockEffectReverse undoes a previously applied delta.
	StockEffectReverse
)

type transition[S comparable] struct {
	From S
	To   S
}

var salesOrderTransitions = map[transition[SalesOrderStatus]]StockEffect{
	{SalesOrderStatusDraft, SalesOrderStatusPendingReview}:    StockEffectNone,
	{SalesOrderStatusDraft, SalesOrderStatusApproved}:         StockEffectNone,
	{SalesOrderStatusDraft, SalesOrderStatusShipped}:          StockEffectApply,
	{SalesOrderStatusDraft, SalesOrderStatusVoided}:           StockEffectNone,
	{SalesOrderStatusPendingReview, SalesOrderStatusDraft}:    StockEffectNone,
	{SalesOrderStatusPendingReview, SalesOrderStatusApproved}: StockEffectNone,
	{SalesOrderStatusPendingReview, SalesOrderStatusVoided}:   StockEffectNone,
	{SalesOrderStatusApproved, SalesOrderStatusShipped}:       StockEffectApply,
	{SalesOrderStatusApproved, SalesOrderStatusVoided}:        StockEffectNone,
}

var purchaseOrderTransitions = map[transition[PurchaseOrderStatus]]StockEffect{
	{PurchaseOrderStatusDraft, PurchaseOrderStatusPendingReview}:    StockEffectNone,
	{PurchaseOrderStatusDraft, PurchaseOrderStatusApproved}:         StockEffectNone,
	{PurchaseOrderStatusDraft, PurchaseOrderStatusStockedIn}:        StockEffectApply,
	{PurchaseOrderStatusDraft, PurchaseOrderStatusVoided}:           StockEffectNone,
	{PurchaseOrderStatusPendingReview, PurchaseOrderStatusDraft}:    StockEffectNone,
	{PurchaseOrderStatusPendingReview, PurchaseOrderStatusApproved}: StockEffectNone,
	{PurchaseOrderStatusPendingReview, PurchaseOrderStatusVoided}:   StockEffectNone,
	{PurchaseOrderStatusApproved, PurchaseOrderStatusStockedIn}:     StockEffectApply,
	{PurchaseOrderStatusApproved, PurchaseOrderStatusVoided}:        StockEffectNone,
}

var adjustmentOrderTransitions = map[transition[AdjustmentOrderStatus]]StockEffect{
	{AdjustmentOrderStatusDraft, AdjustmentOrderStatusCompleted}: StockEffectApply,
	{AdjustmentOrderStatusCompleted, AdjustmentOrderStatusDraft}: StockEffectReverse,
}

var dyeingOrderTransitions = map[transition[DyeingOrderStatus]]StockEffect{
	{DyeingOrderStatusAwaitingShipment, DyeingOrderStatusProcessing}: StockEffectNone,
	{DyeingOrderStatusAwaitingShipment, DyeingOrderStatusCancelled}:  StockEffectNone,
	{DyeingOrderStatusProcessing, DyeingOrderStatusCompleted}:        StockEffectNone,
	{DyeingOrderStatusProcessing, DyeingOrderStatusCancelled}:        StockEffectNone,
	{DyeingOrderStatusCompleted, DyeingOrderStatusStockedIn}:         StockEffectNone,
}

var inventoryCheckTransitions = map[transition[InventoryCheckStatus]]StockEffect{
	{InventoryCheckStatusPlanned, InventoryCheckStatusCounting}:   StockEffectNone,
	{InventoryCheckStatusPlanned, InventoryCheckStatusCancelled}:  StockEffectNone,
	{InventoryCheckStatusCounting, InventoryCheckStatusCompleted}: StockEffectNone,
	{InventoryCheckStatusCounting, InventoryCheckStatusCancelled}: StockEffectNone,
}

func validateTransition[S comparable](table map[transition[S]]StockEffect, from, to S, docType string) (StockEffect, error) {
	if from == to {
		return StockEffectNone, utils.NewStateError(fmt.Sprintf("%s is already in status %v", docType, to))
	}
	effect, ok := table[transition[S]{From: from, To: to}]
	if !ok {
		return StockEffectNone, utils.NewStateError(fmt.Sprintf("%s cannot move from %v to %v", docType, from, to))
	}
	return effect, nil
}

func ValidateSalesOrderTransition(from, to SalesOrderStatus) (StockEffect, error) {
	return validateTransition(salesOrderTransitions, from, to, "sales order")
}

func ValidatePurchaseOrderTransition(from, to PurchaseOrderStatus) (StockEffect, error) {
	return validateTransition(purchaseOrderTransitions, from, to, "purchase order")
}

func ValidateAdjustmentOrderTransition(from, to AdjustmentOrderStatus) (StockEffect, error) {
	return validateTransition(adjustmentOrderTransitions, from, to, "adjustment order")
}

func ValidateDyeingOrderTransition(from, to DyeingOrderStatus) (StockEffect, error) {
	return validateTransition(dyeingOrderTransitions, from, to, "dyeing order")
}

func ValidateInventoryCheckTransition(from, to InventoryCheckStatus) (StockEffect, error) {
	return validateTransition(inventoryCheckTransitions, from, to, "inventory check")
}

// Editable reports whether a document in the given status still accepts
// header/item edits and deletion. Only the initial status does; adjustment
// orders additionally accept edits while Completed (the update reverses the
// old items and re-applies the new ones in one transaction), and inventory
// checks accept count entry while Counting.
func SalesOrderEditable(s SalesOrderStatus) bool {
	return s == SalesOrderStatusDraft
}

func PurchaseOrderEditable(s PurchaseOrderStatus) bool {
	return s == PurchaseOrderStatusDraft
}

func AdjustmentOrderEditable(s AdjustmentOrderStatus) bool {
	return s == AdjustmentOrderStatusDraft || s == AdjustmentOrderStatusCompleted
}

func DyeingOrderEditable(s DyeingOrderStatus) bool {
	return s == DyeingOrderStatusAwaitingShipment
}

func InventoryCheckEditable(s InventoryCheckStatus) bool {
	return s == InventoryCheckStatusPlanned || s == InventoryCheckStatusCounting
}
