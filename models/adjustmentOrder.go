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

// AdjustmentOrder corrects batch stock outside the purchase/sales flows.
// Item quantities are signed: positive adds stock, negative removes it.
// The Type tag describes the reason and never changes the arithmetic.
type AdjustmentOrder struct {
	ID             int                    `gorm:"primary_key" json:"id"`
	OrderNumber    string                 `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Type           AdjustmentType         `gorm:"type:enum('Increase','Decrease','CountSurplus','CountDeficit','Damage','Other');not null;default:'Other'" json:"type"`
	AdjustmentDate time.Time              `gorm:"type:date;not null" json:"adjustment_date"`
	TotalQuantity  decimal.Decimal        `gorm:"type:decimal(10,2);not null;default:0" json:"total_quantity"`
	Status         AdjustmentOrderStatus  `gorm:"type:enum('Draft','Completed');not null;default:'Draft'" json:"status"`
	Operator       string                 `gorm:"size:50" json:"operator"`
	Remark         string                 `gorm:"type:text" json:"remark"`
	Items          []*AdjustmentOrderItem `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt      time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

type AdjustmentOrderItem struct {
	ID          int             `gorm:"primary_key" json:"id"`
	OrderId     int             `gorm:"index;not null" json:"order_id"`
	BatchId     int             `gorm:"not null" json:"batch_id"`
	BatchCode   string          `gorm:"size:50" json:"batch_code"`
	ProductId   int             `json:"product_id"`
	ProductName string          `gorm:"size:200" json:"product_name"`
	ColorId     int             `json:"color_id"`
	ColorName   string          `gorm:"size:100" json:"color_name"`
	ColorCode   string          `gorm:"size:50" json:"color_code"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit        string          `gorm:"size:20" json:"unit"`
	Remark      string          `gorm:"size:200" json:"remark"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewAdjustmentOrderItem struct {
	BatchId     int             `json:"batch_id" binding:"required"`
	BatchCode   string          `json:"batch_code"`
	ProductId   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	ColorId     int             `json:"color_id"`
	ColorName   string          `json:"color_name"`
	ColorCode   string          `json:"color_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Remark      string          `json:"remark"`
}

type NewAdjustmentOrder struct {
	Type           AdjustmentType            `json:"type"`
	AdjustmentDate time.Time                 `json:"adjustment_date" binding:"required"`
	Status         AdjustmentOrderStatus     `json:"status"`
	Operator       string                    `json:"operator"`
	Remark         string                    `json:"remark"`
	Items          []*NewAdjustmentOrderItem `json:"items" binding:"required"`
}

// buildAdjustmentOrderItems keeps the signed quantities and sums their
// magnitudes for the order total.
func buildAdjustmentOrderItems(inputs []*NewAdjustmentOrderItem) ([]*AdjustmentOrderItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, utils.NewValidationError("adjustment order needs at least one item")
	}
	items := make([]*AdjustmentOrderItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		if in.Quantity.IsZero() {
			return nil, decimal.Zero, utils.NewValidationError("item quantity cannot be zero")
		}
		items = append(items, &AdjustmentOrderItem{
			BatchId:     in.BatchId,
			BatchCode:   in.BatchCode,
			ProductId:   in.ProductId,
			ProductName: in.ProductName,
			ColorId:     in.ColorId,
			ColorName:   in.ColorName,
			ColorCode:   in.ColorCode,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			Remark:      in.Remark,
		})
		total = total.Add(in.Quantity.Abs())
	}
	return items, total, nil
}

func (input *NewAdjustmentOrder) validate(ctx context.Context) error {
	for _, item := range input.Items {
		if err := utils.ValidateResourceId[Batch](ctx, item.BatchId); err != nil {
			return err
		}
	}
	return nil
}

func CreateAdjustmentOrder(ctx context.Context, input *NewAdjustmentOrder) (*AdjustmentOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildAdjustmentOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	operator := input.Operator
	if operator == "" {
		operator, _ = utils.GetOperatorFromContext(ctx)
	}
	adjustmentType := input.Type
	if adjustmentType == "" {
		adjustmentType = AdjustmentTypeOther
	}
	order := AdjustmentOrder{
		OrderNumber:    GenerateAdjustmentOrderNumber(),
		Type:           adjustmentType,
		AdjustmentDate: input.AdjustmentDate,
		TotalQuantity:  total,
		Status:         AdjustmentOrderStatusDraft,
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
	if input.Status == AdjustmentOrderStatusCompleted {
		if err := transitionAdjustmentOrder(tx, &order, AdjustmentOrderStatusCompleted); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateAdjustmentOrder replaces the item list. Editing a Completed order
// reverses the previously applied deltas and applies the new ones in the
// same transaction, so replacing the items with an identical list leaves
// every batch unchanged.
func UpdateAdjustmentOrder(ctx context.Context, id int, input *NewAdjustmentOrder) (*AdjustmentOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	newItems, total, err := buildAdjustmentOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range newItems {
		item.OrderId = id
	}

	db := config.GetDB()
	tx := db.Begin()
	var order AdjustmentOrder
	err = tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if !AdjustmentOrderEditable(order.Status) {
		tx.Rollback()
		return nil, utils.NewStateError("adjustment order is not editable in its current status")
	}

	if order.Status == AdjustmentOrderStatusCompleted {
		if err := applyAdjustmentOrderItems(tx, order.Items, true); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&AdjustmentOrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&newItems).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if order.Status == AdjustmentOrderStatusCompleted {
		if err := applyAdjustmentOrderItems(tx, newItems, false); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	adjustmentType := input.Type
	if adjustmentType == "" {
		adjustmentType = order.Type
	}
	err = tx.WithContext(ctx).Model(&order).
		Updates(map[string]interface{}{
			"Type":           adjustmentType,
			"AdjustmentDate": input.AdjustmentDate,
			"TotalQuantity":  total,
			"Remark":         input.Remark,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	order.Items = newItems
	return &order, nil
}

func DeleteAdjustmentOrder(ctx context.Context, id int) (*AdjustmentOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order AdjustmentOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if order.Status != AdjustmentOrderStatusDraft {
		tx.Rollback()
		return nil, utils.NewStateError("adjustment order can only be deleted while in Draft")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&AdjustmentOrderItem{}).Error; err != nil {
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

func UpdateAdjustmentOrderStatus(ctx context.Context, id int, status AdjustmentOrderStatus) (*AdjustmentOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order AdjustmentOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if err := transitionAdjustmentOrder(tx, &order, status); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionAdjustmentOrder(tx *gorm.DB, order *AdjustmentOrder, to AdjustmentOrderStatus) error {
	if _, err := ValidateAdjustmentOrderTransition(order.Status, to); err != nil {
		return err
	}
	oldStatus := order.Status
	order.Status = to
	if err := ApplyAdjustmentOrderStockForStatusTransition(tx, order, oldStatus); err != nil {
		return err
	}
	return tx.Model(order).Update("status", to).Error
}

func GetAdjustmentOrder(ctx context.Context, id int) (*AdjustmentOrder, error) {
	return utils.FetchModel[AdjustmentOrder](ctx, id, "Items")
}

func GetAdjustmentOrders(ctx context.Context, status *AdjustmentOrderStatus, adjustmentType *AdjustmentType, startDate, endDate *time.Time) ([]*AdjustmentOrder, error) {
	var orders []*AdjustmentOrder
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if adjustmentType != nil {
		dbCtx = dbCtx.Where("type = ?", *adjustmentType)
	}
	if startDate != nil {
		dbCtx = dbCtx.Where("adjustment_date >= ?", *startDate)
	}
	if endDate != nil {
		dbCtx = dbCtx.Where("adjustment_date <= ?", *endDate)
	}
	if err := dbCtx.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
