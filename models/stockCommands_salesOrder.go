package models

import (
	"fmt"

	"gorm.io/gorm"
)

// ApplySalesOrderStockForStatusTransition posts the stock side effect of a
// sales order status change. Entering Shipped removes each item's quantity
// from its batch; no sales transition puts stock back.
func ApplySalesOrderStockForStatusTransition(tx *gorm.DB, order *SalesOrder, oldStatus SalesOrderStatus) error {
	if tx == nil {
		return fmt.Errorf("tx is nil")
	}
	if order == nil {
		return fmt.Errorf("sales order is nil")
	}
	if oldStatus == order.Status {
		return nil
	}

	effect, err := ValidateSalesOrderTransition(oldStatus, order.Status)
	if err != nil {
		return err
	}
	if effect != StockEffectApply {
		return nil
	}

	for _, item := range order.Items {
		if err := ApplyBatchStockDelta(tx, item.BatchId, item.Quantity.Neg()); err != nil {
			return err
		}
	}
	return nil
}
