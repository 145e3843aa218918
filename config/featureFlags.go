package config

import (
	"os"
	"strings"
)

// PurchaseReceiptStock enables the receipt-into-stock trigger for purchase
// orders: entering StockedIn applies +quantity to each item's batch.
//
// Set via env:
// - PURCHASE_RECEIPT_STOCK=true
//
// Default off: purchase receipts are recorded without moving batch stock,
// matching the behavior the rest of the system expects.
func PurchaseReceiptStock() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PURCHASE_RECEIPT_STOCK")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
