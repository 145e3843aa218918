package models

import (
	"fmt"

	"github.com/Alucard672/shaxian/config"
	"gorm.io/gorm"
)

// ApplyPurchaseOrderStockForStatusTransition posts receipt stock when a
// purchase order enters StockedIn. The trigger sits behind the
// PURCHASE_RECEIPT_STOCK flag; with the flag off, receipts keep batch
// stock untouched and only the payable side moves. Items without a batch
// reference are skipped either way.
func ApplyPurchaseOrderStockForStatusTransition(tx *gorm.DB, order *PurchaseOrder, oldStatus PurchaseOrderStatus) error {
	if tx == nil {
		return fmt.Errorf("tx is nil")
	}
	if order == nil {
		return fmt.Errorf("purchase order is nil")
	}
	if oldStatus == order.Status {
		return nil
	}

	effect, err := ValidatePurchaseOrderTransition(oldStatus, order.Status)
	if err != nil {
		return err
	}
	if effect != StockEffectApply {
		return nil
	}
	if !config.PurchaseReceiptStock() {
		return nil
	}

	for _, item := range order.Items {
		if item.BatchId == 0 {
			continue
		}
		if err := ApplyBatchStockDelta(tx, item.BatchId, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
