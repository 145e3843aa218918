package models

type SalesOrderStatus string

const (
	SalesOrderStatusDraft         SalesOrderStatus = "Draft"
	SalesOrderStatusPendingReview SalesOrderStatus = "PendingReview"
	SalesOrderStatusApproved      SalesOrderStatus = "Approved"
	SalesOrderStatusShipped       SalesOrderStatus = "Shipped"
	SalesOrderStatusVoided        SalesOrderStatus = "Voided"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft         PurchaseOrderStatus = "Draft"
	PurchaseOrderStatusPendingReview PurchaseOrderStatus = "PendingReview"
	PurchaseOrderStatusApproved      PurchaseOrderStatus = "Approved"
	PurchaseOrderStatusStockedIn     PurchaseOrderStatus = "StockedIn"
	PurchaseOrderStatusVoided        PurchaseOrderStatus = "Voided"
)

type AdjustmentOrderStatus string

const (
	AdjustmentOrderStatusDraft     AdjustmentOrderStatus = "Draft"
	AdjustmentOrderStatusCompleted AdjustmentOrderStatus = "Completed"
)

// AdjustmentType is descriptive metadata on an adjustment order. Stock
// arithmetic uses the signed item quantity only, never the type tag.
type AdjustmentType string

const (
	AdjustmentTypeIncrease     AdjustmentType = "Increase"
	AdjustmentTypeDecrease     AdjustmentType = "Decrease"
	AdjustmentTypeCountSurplus AdjustmentType = "CountSurplus"
	AdjustmentTypeCountDeficit AdjustmentType = "CountDeficit"
	AdjustmentTypeDamage       AdjustmentType = "Damage"
	AdjustmentTypeOther        AdjustmentType = "Other"
)

type DyeingOrderStatus string

const (
	DyeingOrderStatusAwaitingShipment DyeingOrderStatus = "AwaitingShipment"
	DyeingOrderStatusProcessing       DyeingOrderStatus = "Processing"
	DyeingOrderStatusCompleted        DyeingOrderStatus = "Completed"
	DyeingOrderStatusStockedIn        DyeingOrderStatus = "StockedIn"
	DyeingOrderStatusCancelled        DyeingOrderStatus = "Cancelled"
)

type InventoryCheckStatus string

const (
	InventoryCheckStatusPlanned   InventoryCheckStatus = "Planned"
	InventoryCheckStatusCounting  InventoryCheckStatus = "Counting"
	InventoryCheckStatusCompleted InventoryCheckStatus = "Completed"
	InventoryCheckStatusCancelled InventoryCheckStatus = "Cancelled"
)

// AccountStatus is always derived from the unpaid amount, never set by a
// caller.
type AccountStatus string

const (
	AccountStatusUnsettled AccountStatus = "Unsettled"
	AccountStatusSettled   AccountStatus = "Settled"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "Cash"
	PaymentMethodTransfer PaymentMethod = "Transfer"
	PaymentMethodCheck    PaymentMethod = "Check"
	PaymentMethodOther    PaymentMethod = "Other"
)

type ProductKind string

const (
	ProductKindRawMaterial  ProductKind = "RawMaterial"
	ProductKindSemiFinished ProductKind = "SemiFinished"
	ProductKindFinished     ProductKind = "Finished"
)

type ColorStatus string

const (
	ColorStatusOnSale       ColorStatus = "OnSale"
	ColorStatusDiscontinued ColorStatus = "Discontinued"
)
