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

type SalesOrder struct {
	ID             int               `gorm:"primary_key" json:"id"`
	OrderNumber    string            `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerId     int               `json:"customer_id"`
	CustomerName   string            `gorm:"size:100;not null" json:"customer_name"`
	SalesDate      time.Time         `gorm:"type:date;not null" json:"sales_date"`
	ExpectedDate   *time.Time        `gorm:"type:date" json:"expected_date"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	ReceivedAmount decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"received_amount"`
	UnpaidAmount   decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0" json:"unpaid_amount"`
	Status         SalesOrderStatus  `gorm:"type:enum('Draft','PendingReview','Approved','Shipped','Voided');not null;default:'Draft'" json:"status"`
	Operator       string            `gorm:"size:50" json:"operator"`
	Remark         string            `gorm:"type:text" json:"remark"`
	Items          []*SalesOrderItem `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type SalesOrderItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OrderId     int             `gorm:"index;not null" json:"order_id"`
	ProductId   int             `json:"product_id"`
	ProductName string          `gorm:"size:200" json:"product_name"`
	ProductCode string          `gorm:"size:50" json:"product_code"`
	ColorId     int             `json:"color_id"`
	ColorName   string          `gorm:"size:100" json:"color_name"`
	ColorCode   string          `gorm:"size:50" json:"color_code"`
	BatchId     int             `gorm:"not null" json:"batch_id"`
	BatchCode   string          `gorm:"size:50" json:"batch_code"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit        string          `gorm:"size:20" json:"unit"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	Remark      string          `gorm:"size:200" json:"remark"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewSalesOrderItem struct {
	ProductId   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	ColorId     int             `json:"color_id"`
	ColorName   string          `json:"color_name"`
	ColorCode   string          `json:"color_code"`
	BatchId     int             `json:"batch_id" binding:"required"`
	BatchCode   string          `json:"batch_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Remark      string          `json:"remark"`
}

type NewSalesOrder struct {
	CustomerId     int                  `json:"customer_id"`
	CustomerName   string               `json:"customer_name" binding:"required"`
	SalesDate      time.Time            `json:"sales_date" binding:"required"`
	ExpectedDate   *time.Time           `json:"expected_date"`
	ReceivedAmount *decimal.Decimal     `json:"received_amount"`
	Status         SalesOrderStatus     `json:"status"`
	Operator       string               `json:"operator"`
	Remark         string               `json:"remark"`
	Items          []*NewSalesOrderItem `json:"items" binding:"required"`
}

// buildSalesOrderItems turns item drafts into rows with exact decimal
// amounts and returns the order total.
func buildSalesOrderItems(inputs []*NewSalesOrderItem) ([]*SalesOrderItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, utils.NewValidationError("sales order needs at least one item")
	}
	items := make([]*SalesOrderItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		if in.Quantity.IsNegative() {
			return nil, decimal.Zero, utils.NewValidationError("item quantity cannot be negative")
		}
		if in.Price.IsNegative() {
			return nil, decimal.Zero, utils.NewValidationError("item price cannot be negative")
		}
		amount := in.Quantity.Mul(in.Price)
		items = append(items, &SalesOrderItem{
			ProductId:   in.ProductId,
			ProductName: in.ProductName,
			ProductCode: in.ProductCode,
			ColorId:     in.ColorId,
			ColorName:   in.ColorName,
			ColorCode:   in.ColorCode,
			BatchId:     in.BatchId,
			BatchCode:   in.BatchCode,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Price:       in.Price,
			Amount:      amount,
			Remark:      in.Remark,
		})
		total = total.Add(amount)
	}
	return items, total, nil
}

func (input *NewSalesOrder) validate(ctx context.Context) error {
	if input.ReceivedAmount != nil && input.ReceivedAmount.IsNegative() {
		return utils.NewValidationError("received amount cannot be negative")
	}
	for _, item := range input.Items {
		if err := utils.ValidateResourceId[Batch](ctx, item.BatchId); err != nil {
			return err
		}
	}
	return nil
}

func CreateSalesOrder(ctx context.Context, input *NewSalesOrder) (*SalesOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildSalesOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	operator := input.Operator
	if operator == "" {
		operator, _ = utils.GetOperatorFromContext(ctx)
	}
	received := decimal.Zero
	if input.ReceivedAmount != nil {
		received = *input.ReceivedAmount
	}
	order := SalesOrder{
		OrderNumber:    GenerateSalesOrderNumber(),
		CustomerId:     input.CustomerId,
		CustomerName:   input.CustomerName,
		SalesDate:      input.SalesDate,
		ExpectedDate:   input.ExpectedDate,
		TotalAmount:    total,
		ReceivedAmount: received,
		UnpaidAmount:   total.Sub(received),
		Status:         SalesOrderStatusDraft,
		Operator:       operator,
		Remark:         input.Remark,
		Items:          items,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if input.Status != "" && input.Status != SalesOrderStatusDraft {
		if err := transitionSalesOrder(tx, &order, input.Status); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateSalesOrder replaces the item list wholesale and recomputes the
// totals. Only drafts are editable; the row is locked while the check and
// the replace run so a concurrent transition cannot slip in between.
// The received-amount seed is kept unless the input carries a new value.
func UpdateSalesOrder(ctx context.Context, id int, input *NewSalesOrder) (*SalesOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildSalesOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.OrderId = id
	}

	db := config.GetDB()
	tx := db.Begin()
	var order SalesOrder
	err = tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if !SalesOrderEditable(order.Status) {
		tx.Rollback()
		return nil, utils.NewStateError("sales order can only be edited while in Draft")
	}
	received := order.ReceivedAmount
	if input.ReceivedAmount != nil {
		received = *input.ReceivedAmount
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&SalesOrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&order).
		Updates(map[string]interface{}{
			"CustomerId":     input.CustomerId,
			"CustomerName":   input.CustomerName,
			"SalesDate":      input.SalesDate,
			"ExpectedDate":   input.ExpectedDate,
			"TotalAmount":    total,
			"ReceivedAmount": received,
			"UnpaidAmount":   total.Sub(received),
			"Remark":         input.Remark,
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

func DeleteSalesOrder(ctx context.Context, id int) (*SalesOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order SalesOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if order.Status != SalesOrderStatusDraft {
		tx.Rollback()
		return nil, utils.NewStateError("sales order can only be deleted while in Draft")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&SalesOrderItem{}).Error; err != nil {
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

// UpdateSalesOrderStatus moves the order along the lifecycle. The order row
// is locked for the duration of the transaction so a concurrent transition
// on the same order cannot post its stock delta twice.
func UpdateSalesOrderStatus(ctx context.Context, id int, status SalesOrderStatus) (*SalesOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order SalesOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if err := transitionSalesOrder(tx, &order, status); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionSalesOrder(tx *gorm.DB, order *SalesOrder, to SalesOrderStatus) error {
	if _, err := ValidateSalesOrderTransition(order.Status, to); err != nil {
		return err
	}
	oldStatus := order.Status
	order.Status = to
	if err := ApplySalesOrderStockForStatusTransition(tx, order, oldStatus); err != nil {
		return err
	}
	if to == SalesOrderStatusShipped {
		if err := createReceivableForSalesOrder(tx, order); err != nil {
			return err
		}
	}
	return tx.Model(order).Update("status", to).Error
}

func GetSalesOrder(ctx context.Context, id int) (*SalesOrder, error) {
	return utils.FetchModel[SalesOrder](ctx, id, "Items")
}

func GetSalesOrders(ctx context.Context, status *SalesOrderStatus, customerId int, startDate, endDate *time.Time) ([]*SalesOrder, error) {
	var orders []*SalesOrder
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if customerId != 0 {
		dbCtx = dbCtx.Where("customer_id = ?", customerId)
	}
	if startDate != nil {
		dbCtx = dbCtx.Where("sales_date >= ?", *startDate)
	}
	if endDate != nil {
		dbCtx = dbCtx.Where("sales_date <= ?", *endDate)
	}
	if err := dbCtx.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
