package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrder struct {
	ID           int                  `gorm:"primary_key" json:"id"`
	OrderNumber  string               `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	SupplierId   int                  `json:"supplier_id"`
	SupplierName string               `gorm:"size:100;not null" json:"supplier_name"`
	PurchaseDate time.Time            `gorm:"type:date;not null" json:"purchase_date"`
	ExpectedDate *time.Time           `gorm:"type:date" json:"expected_date"`
	TotalAmount  decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	PaidAmount   decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	UnpaidAmount decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0" json:"unpaid_amount"`
	Status       PurchaseOrderStatus  `gorm:"type:enum('Draft','PendingReview','Approved','StockedIn','Voided');not null;default:'Draft'" json:"status"`
	Operator     string               `gorm:"size:50" json:"operator"`
	Remark       string               `gorm:"type:text" json:"remark"`
	Items        []*PurchaseOrderItem `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrderId        int             `gorm:"index;not null" json:"order_id"`
	ProductId      int             `json:"product_id"`
	ProductName    string          `gorm:"size:200" json:"product_name"`
	ProductCode    string          `gorm:"size:50" json:"product_code"`
	ColorId        int             `json:"color_id"`
	ColorName      string          `gorm:"size:100" json:"color_name"`
	ColorCode      string          `gorm:"size:50" json:"color_code"`
	BatchId        int             `json:"batch_id"`
	BatchCode      string          `gorm:"size:50" json:"batch_code"`
	Quantity       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit           string          `gorm:"size:20" json:"unit"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	ProductionDate *time.Time      `gorm:"type:date" json:"production_date"`
	StockLocation  string          `gorm:"size:100" json:"stock_location"`
	Remark         string          `gorm:"size:200" json:"remark"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPurchaseOrderItem struct {
	ProductId      int             `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductCode    string          `json:"product_code"`
	ColorId        int             `json:"color_id"`
	ColorName      string          `json:"color_name"`
	ColorCode      string          `json:"color_code"`
	BatchId        int             `json:"batch_id"`
	BatchCode      string          `json:"batch_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Price          decimal.Decimal `json:"price"`
	ProductionDate *time.Time      `json:"production_date"`
	StockLocation  string          `json:"stock_location"`
	Remark         string          `json:"remark"`
}

type NewPurchaseOrder struct {
	SupplierId   int                     `json:"supplier_id"`
	SupplierName string                  `json:"supplier_name" binding:"required"`
	PurchaseDate time.Time               `json:"purchase_date" binding:"required"`
	ExpectedDate *time.Time              `json:"expected_date"`
	PaidAmount   *decimal.Decimal        `json:"paid_amount"`
	Status       PurchaseOrderStatus     `json:"status"`
	Operator     string                  `json:"operator"`
	Remark       string                  `json:"remark"`
	Items        []*NewPurchaseOrderItem `json:"items" binding:"required"`
}

func buildPurchaseOrderItems(inputs []*NewPurchaseOrderItem) ([]*PurchaseOrderItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, utils.NewValidationError("purchase order needs at least one item")
	}
	items := make([]*PurchaseOrderItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		if in.Quantity.IsNegative() {
			return nil, decimal.Zero, utils.NewValidationError("item quantity cannot be negative")
		}
		if in.Price.IsNegative() {
			return nil, decimal.Zero, utils.NewValidationError("item price cannot be negative")
		}
		amount := in.Quantity.Mul(in.Price)
		items = append(items, &PurchaseOrderItem{
			ProductId:      in.ProductId,
			ProductName:    in.ProductName,
			ProductCode:    in.ProductCode,
			ColorId:        in.ColorId,
			ColorName:      in.ColorName,
			ColorCode:      in.ColorCode,
			BatchId:        in.BatchId,
			BatchCode:      in.BatchCode,
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			Price:          in.Price,
			Amount:         amount,
			ProductionDate: in.ProductionDate,
			StockLocation:  in.StockLocation,
			Remark:         in.Remark,
		})
		total = total.Add(amount)
	}
	return items, total, nil
}

func (input *NewPurchaseOrder) validate(ctx context.Context) error {
	if input.PaidAmount != nil && input.PaidAmount.IsNegative() {
		return utils.NewValidationError("paid amount cannot be negative")
	}
	for _, item := range input.Items {
		if item.BatchId != 0 {
			if err := utils.ValidateResourceId[Batch](ctx, item.BatchId); err != nil {
				return err
			}
		}
	}
	return nil
}

func CreatePurchaseOrder(ctx context.Context, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildPurchaseOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	operator := input.Operator
	if operator == "" {
		operator, _ = utils.GetOperatorFromContext(ctx)
	}
	paid := decimal.Zero
	if input.PaidAmount != nil {
		paid = *input.PaidAmount
	}
	order := PurchaseOrder{
		OrderNumber:  GeneratePurchaseOrderNumber(),
		SupplierId:   input.SupplierId,
		SupplierName: input.SupplierName,
		PurchaseDate: input.PurchaseDate,
		ExpectedDate: input.ExpectedDate,
		TotalAmount:  total,
		PaidAmount:   paid,
		UnpaidAmount: total.Sub(paid),
		Status:       PurchaseOrderStatusDraft,
		Operator:     operator,
		Remark:       input.Remark,
		Items:        items,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if input.Status != "" && input.Status != PurchaseOrderStatusDraft {
		if err := transitionPurchaseOrder(tx, &order, input.Status); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePurchaseOrder mirrors UpdateSalesOrder: the row is locked while the
// editability check and the item replace run, and the paid-amount seed is
// kept unless the input carries a new value.
func UpdatePurchaseOrder(ctx context.Context, id int, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildPurchaseOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.OrderId = id
	}

	db := config.GetDB()
	tx := db.Begin()
	var order PurchaseOrder
	err = tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if !PurchaseOrderEditable(order.Status) {
		tx.Rollback()
		return nil, utils.NewStateError("purchase order can only be edited while in Draft")
	}
	paid := order.PaidAmount
	if input.PaidAmount != nil {
		paid = *input.PaidAmount
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&PurchaseOrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&order).
		Updates(map[string]interface{}{
			"SupplierId":   input.SupplierId,
			"SupplierName": input.SupplierName,
			"PurchaseDate": input.PurchaseDate,
			"ExpectedDate": input.ExpectedDate,
			"TotalAmount":  total,
			"PaidAmount":   paid,
			"UnpaidAmount": total.Sub(paid),
			"Remark":       input.Remark,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func DeletePurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order PurchaseOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if order.Status != PurchaseOrderStatusDraft {
		tx.Rollback()
		return nil, utils.NewStateError("purchase order can only be deleted while in Draft")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&PurchaseOrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func UpdatePurchaseOrderStatus(ctx context.Context, id int, status PurchaseOrderStatus) (*PurchaseOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order PurchaseOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if err := transitionPurchaseOrder(tx, &order, status); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionPurchaseOrder(tx *gorm.DB, order *PurchaseOrder, to PurchaseOrderStatus) error {
	if _, err := ValidatePurchaseOrderTransition(order.Status, to); err != nil {
		return err
	}
	oldStatus := order.Status
	order.Status = to
	if err := ApplyPurchaseOrderStockForStatusTransition(tx, order, oldStatus); err != nil {
		return err
	}
	if to == PurchaseOrderStatusStockedIn {
		if err := createPayableForPurchaseOrder(tx, order); err != nil {
			return err
		}
	}
	return tx.Model(order).Update("status", to).Error
}

func GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	return utils.FetchModel[PurchaseOrder](ctx, id, "Items")
}

func GetPurchaseOrders(ctx context.Context, status *PurchaseOrderStatus, supplierId int, startDate, endDate *time.Time) ([]*PurchaseOrder, error) {
	var orders []*PurchaseOrder
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if supplierId != 0 {
		dbCtx = dbCtx.Where("supplier_id = ?", supplierId)
	}
	if startDate != nil {
		dbCtx = dbCtx.Where("purchase_date >= ?", *startDate)
	}
	if endDate != nil {
		dbCtx = dbCtx.Where("purchase_date <= ?", *endDate)
	}
	if err := dbCtx.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
