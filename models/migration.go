package models

import (
	"log"

	"github.com/Alucard672/shaxian/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Product{}, &Color{}, &Batch{},
		&PurchaseOrder{}, &PurchaseOrderItem{},
		&SalesOrder{}, &SalesOrderItem{},
		&DyeingOrder{}, &DyeingOrderItem{},
		&AdjustmentOrder{}, &AdjustmentOrderItem{},
		&InventoryCheckOrder{}, &InventoryCheckItem{},
		&AccountReceivable{}, &ReceiptRecord{},
		&AccountPayable{}, &PaymentRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
