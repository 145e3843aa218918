package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// InventoryCheckOrder records a physical count against system stock.
// Completing a check never moves stock; discrepancies are carried into an
// adjustment order instead.
type InventoryCheckOrder struct {
	ID                int                   `gorm:"primary_key" json:"id"`
	OrderNumber       string                `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	Name              string                `gorm:"size:200;not null" json:"name"`
	Warehouse         string                `gorm:"size:100" json:"warehouse"`
	PlanDate          *time.Time            `gorm:"type:date" json:"plan_date"`
	ProgressTotal     int                   `gorm:"not null;default:0" json:"progress_total"`
	ProgressCompleted int                   `gorm:"not null;default:0" json:"progress_completed"`
	Surplus           decimal.Decimal       `gorm:"type:decimal(10,2);not null;default:0" json:"surplus"`
	Deficit           decimal.Decimal       `gorm:"type:decimal(10,2);not null;default:0" json:"deficit"`
	Status            InventoryCheckStatus  `gorm:"type:enum('Planned','Counting','Completed','Cancelled');not null;default:'Planned'" json:"status"`
	Operator          string                `gorm:"size:50" json:"operator"`
	Remark            string                `gorm:"type:text" json:"remark"`
	Items             []*InventoryCheckItem `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt         time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

type InventoryCheckItem struct {
	ID             int              `gorm:"primary_key" json:"id"`
	OrderId        int              `gorm:"index;not null" json:"order_id"`
	BatchId        int              `gorm:"not null" json:"batch_id"`
	BatchCode      string           `gorm:"size:50" json:"batch_code"`
	ProductId      int              `json:"product_id"`
	ProductName    string           `gorm:"size:200" json:"product_name"`
	ColorId        int              `json:"color_id"`
	ColorName      string           `gorm:"size:100" json:"color_name"`
	ColorCode      string           `gorm:"size:50" json:"color_code"`
	SystemQuantity decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"system_quantity"`
	ActualQuantity *decimal.Decimal `gorm:"type:decimal(10,2)" json:"actual_quantity"`
	Difference     decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"difference"`
	Unit           string           `gorm:"size:20" json:"unit"`
	Remark         string           `gorm:"size:200" json:"remark"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

type NewInventoryCheckItem struct {
	BatchId        int              `json:"batch_id" binding:"required"`
	BatchCode      string           `json:"batch_code"`
	ProductId      int              `json:"product_id"`
	ProductName    string           `json:"product_name"`
	ColorId        int              `json:"color_id"`
	ColorName      string           `json:"color_name"`
	ColorCode      string           `json:"color_code"`
	SystemQuantity *decimal.Decimal `json:"system_quantity"`
	ActualQuantity *decimal.Decimal `json:"actual_quantity"`
	Unit           string           `json:"unit"`
	Remark         string           `json:"remark"`
}

type NewInventoryCheckOrder struct {
	Name      string                   `json:"name" binding:"required"`
	Warehouse string                   `json:"warehouse"`
	PlanDate  *time.Time               `json:"plan_date"`
	Operator  string                   `json:"operator"`
	Remark    string                   `json:"remark"`
	Items     []*NewInventoryCheckItem `json:"items" binding:"required"`
}

// summarizeInventoryCheckItems computes the order-level count summary.
// Items without a recorded actual quantity contribute to progressTotal
// only; surplus and deficit are both non-negative magnitudes.
func summarizeInventoryCheckItems(items []*InventoryCheckItem) (progressTotal, progressCompleted int, surplus, deficit decimal.Decimal) {
	progressTotal = len(items)
	surplus = decimal.Zero
	deficit = decimal.Zero
	for _, item := range items {
		if item.ActualQuantity == nil {
			item.Difference = decimal.Zero
			continue
		}
		progressCompleted++
		diff := item.ActualQuantity.Sub(item.SystemQuantity)
		item.Difference = diff
		if diff.IsPositive() {
			surplus = surplus.Add(diff)
		} else if diff.IsNegative() {
			deficit = deficit.Add(diff.Abs())
		}
	}
	return progressTotal, progressCompleted, surplus, deficit
}

// buildInventoryCheckItems snapshots system stock for items that do not
// carry a quantity of their own.
func buildInventoryCheckItems(ctx context.Context, inputs []*NewInventoryCheckItem) ([]*InventoryCheckItem, error) {
	if len(inputs) == 0 {
		return nil, utils.NewValidationError("inventory check needs at least one item")
	}
	items := make([]*InventoryCheckItem, 0, len(inputs))
	for _, in := range inputs {
		systemQuantity := decimal.Zero
		if in.SystemQuantity != nil {
			systemQuantity = *in.SystemQuantity
		} else {
			batch, err := utils.FetchModel[Batch](ctx, in.BatchId)
			if err != nil {
				return nil, err
			}
			systemQuantity = batch.StockQuantity
		}
		items = append(items, &InventoryCheckItem{
			BatchId:        in.BatchId,
			BatchCode:      in.BatchCode,
			ProductId:      in.ProductId,
			ProductName:    in.ProductName,
			ColorId:        in.ColorId,
			ColorName:      in.ColorName,
			ColorCode:      in.ColorCode,
			SystemQuantity: systemQuantity,
			ActualQuantity: in.ActualQuantity,
			Unit:           in.Unit,
			Remark:         in.Remark,
		})
	}
	return items, nil
}

func CreateInventoryCheck(ctx context.Context, input *NewInventoryCheckOrder) (*InventoryCheckOrder, error) {
	items, err := buildInventoryCheckItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	progressTotal, progressCompleted, surplus, deficit := summarizeInventoryCheckItems(items)

	operator := input.Operator
	if operator == "" {
		operator, _ = utils.GetOperatorFromContext(ctx)
	}
	order := InventoryCheckOrder{
		OrderNumber:       GenerateInventoryCheckNumber(),
		Name:              input.Name,
		Warehouse:         input.Warehouse,
		PlanDate:          input.PlanDate,
		ProgressTotal:     progressTotal,
		ProgressCompleted: progressCompleted,
		Surplus:           surplus,
		Deficit:           deficit,
		Status:            InventoryCheckStatusPlanned,
		Operator:          operator,
		Remark:            input.Remark,
		Items:             items,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return &order, nil
}

// UpdateInventoryCheck replaces the item list and recomputes the count
// summary. Allowed while Planned or Counting; recording actual quantities
// is an update like any other.
func UpdateInventoryCheck(ctx context.Context, id int, input *NewInventoryCheckOrder) (*InventoryCheckOrder, error) {
	items, err := buildInventoryCheckItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.OrderId = id
	}
	progressTotal, progressCompleted, surplus, deficit := summarizeInventoryCheckItems(items)

	db := config.GetDB()
	tx := db.Begin()
	var order InventoryCheckOrder
	err = tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if !InventoryCheckEditable(order.Status) {
		tx.Rollback()
		return nil, utils.NewStateError("inventory check is not editable in its current status")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&InventoryCheckItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&order).
		Updates(map[string]interface{}{
			"Name":              input.Name,
			"Warehouse":         input.Warehouse,
			"PlanDate":          input.PlanDate,
			"ProgressTotal":     progressTotal,
			"ProgressCompleted": progressCompleted,
			"Surplus":           surplus,
			"Deficit":           deficit,
			"Remark":            input.Remark,
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

func DeleteInventoryCheck(ctx context.Context, id int) (*InventoryCheckOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order InventoryCheckOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if order.Status != InventoryCheckStatusPlanned {
		tx.Rollback()
		return nil, utils.NewStateError("inventory check can only be deleted while in Planned")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&InventoryCheckItem{}).Error; err != nil {
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

func UpdateInventoryCheckStatus(ctx context.Context, id int, status InventoryCheckStatus) (*InventoryCheckOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order InventoryCheckOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if _, err := ValidateInventoryCheckTransition(order.Status, status); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	order.Status = status
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func GetInventoryCheck(ctx context.Context, id int) (*InventoryCheckOrder, error) {
	return utils.FetchModel[InventoryCheckOrder](ctx, id, "Items")
}

func GetInventoryChecks(ctx context.Context, status *InventoryCheckStatus, keyword string) ([]*InventoryCheckOrder, error) {
	var orders []*InventoryCheckOrder
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		dbCtx = dbCtx.Where("name LIKE ? OR order_number LIKE ?", pattern, pattern)
	}
	if err := dbCtx.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
