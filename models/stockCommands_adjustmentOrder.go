package models

import (
	"fmt"

	"gorm.io/gorm"
)

// ApplyAdjustmentOrderStockForStatusTransition posts the signed item
// quantities when an adjustment enters Completed and negates them when a
// completed adjustment is reopened to Draft. Applying and reversing the
// same item list round-trips every batch to its prior quantity.
func ApplyAdjustmentOrderStockForStatusTransition(tx *gorm.DB, order *AdjustmentOrder, oldStatus AdjustmentOrderStatus) error {
	if tx == nil {
		return fmt.Errorf("tx is nil")
	}
	if order == nil {
		return fmt.Errorf("adjustment order is nil")
	}
	if oldStatus == order.Status {
		return nil
	}

	effect, err := ValidateAdjustmentOrderTransition(oldStatus, order.Status)
	if err != nil {
		return err
	}
	switch effect {
	case StockEffectApply:
		return applyAdjustmentOrderItems(tx, order.Items, false)
	case StockEffectReverse:
		return applyAdjustmentOrderItems(tx, order.Items, true)
	}
	return nil
}

func applyAdjustmentOrderItems(tx *gorm.DB, items []*AdjustmentOrderItem, reverse bool) error {
	for _, item := range items {
		delta := item.Quantity
		if reverse {
			delta = delta.Neg()
		}
		if err := ApplyBatchStockDelta(tx, item.BatchId, delta); err != nil {
			return err
		}
	}
	return nil
}
