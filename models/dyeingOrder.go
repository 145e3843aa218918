package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// DyeingOrder sends a grey-yarn batch to an outside factory for dyeing.
// Items are the target colors; the order total is quantity times the
// order-level processing price. Dyeing orders never move batch stock.
type DyeingOrder struct {
	ID                     int                `gorm:"primary_key" json:"id"`
	OrderNumber            string             `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	ProductId              int                `json:"product_id"`
	ProductName            string             `gorm:"size:200" json:"product_name"`
	GreyBatchId            int                `json:"grey_batch_id"`
	GreyBatchCode          string             `gorm:"size:50" json:"grey_batch_code"`
	FactoryId              int                `json:"factory_id"`
	FactoryName            string             `gorm:"size:100;not null" json:"factory_name"`
	FactoryPhone           string             `gorm:"size:20" json:"factory_phone"`
	ShipmentDate           *time.Time         `gorm:"type:date" json:"shipment_date"`
	ExpectedCompletionDate *time.Time         `gorm:"type:date" json:"expected_completion_date"`
	ActualCompletionDate   *time.Time         `gorm:"type:date" json:"actual_completion_date"`
	ProcessingPrice        decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"processing_price"`
	TotalAmount            decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Status                 DyeingOrderStatus  `gorm:"type:enum('AwaitingShipment','Processing','Completed','StockedIn','Cancelled');not null;default:'AwaitingShipment'" json:"status"`
	Operator               string             `gorm:"size:50" json:"operator"`
	Remark                 string             `gorm:"type:text" json:"remark"`
	Items                  []*DyeingOrderItem `gorm:"foreignKey:OrderId" json:"items"`
	CreatedAt              time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type DyeingOrderItem struct {
	ID               int             `gorm:"primary_key" json:"id"`
	OrderId          int             `gorm:"index;not null" json:"order_id"`
	TargetColorId    int             `json:"target_color_id"`
	TargetColorCode  string          `gorm:"size:50" json:"target_color_code"`
	TargetColorName  string          `gorm:"size:100" json:"target_color_name"`
	TargetColorValue string          `gorm:"size:20" json:"target_color_value"`
	Quantity         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewDyeingOrderItem struct {
	TargetColorId    int             `json:"target_color_id"`
	TargetColorCode  string          `json:"target_color_code"`
	TargetColorName  string          `json:"target_color_name"`
	TargetColorValue string          `json:"target_color_value"`
	Quantity         decimal.Decimal `json:"quantity"`
}

type NewDyeingOrder struct {
	ProductId              int                   `json:"product_id"`
	ProductName            string                `json:"product_name"`
	GreyBatchId            int                   `json:"grey_batch_id"`
	GreyBatchCode          string                `json:"grey_batch_code"`
	FactoryId              int                   `json:"factory_id"`
	FactoryName            string                `json:"factory_name" binding:"required"`
	FactoryPhone           string                `json:"factory_phone"`
	ShipmentDate           *time.Time            `json:"shipment_date"`
	ExpectedCompletionDate *time.Time            `json:"expected_completion_date"`
	ProcessingPrice        decimal.Decimal       `json:"processing_price"`
	Operator               string                `json:"operator"`
	Remark                 string                `json:"remark"`
	Items                  []*NewDyeingOrderItem `json:"items" binding:"required"`
}

func buildDyeingOrderItems(inputs []*NewDyeingOrderItem, processingPrice decimal.Decimal) ([]*DyeingOrderItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, utils.NewValidationError("dyeing order needs at least one item")
	}
	if processingPrice.IsNegative() {
		return nil, decimal.Zero, utils.NewValidationError("processing price cannot be negative")
	}
	items := make([]*DyeingOrderItem, 0, len(inputs))
	total := decimal.Zero
	for _, in := range inputs {
		if in.Quantity.IsNegative() {
			return nil, decimal.Zero, utils.NewValidationError("item quantity cannot be negative")
		}
		items = append(items, &DyeingOrderItem{
			TargetColorId:    in.TargetColorId,
			TargetColorCode:  in.TargetColorCode,
			TargetColorName:  in.TargetColorName,
			TargetColorValue: in.TargetColorValue,
			Quantity:         in.Quantity,
		})
		total = total.Add(in.Quantity.Mul(processingPrice))
	}
	return items, total, nil
}

func (input *NewDyeingOrder) validate(ctx context.Context) error {
	if input.GreyBatchId != 0 {
		if err := utils.ValidateResourceId[Batch](ctx, input.GreyBatchId); err != nil {
			return err
		}
	}
	return nil
}

func CreateDyeingOrder(ctx context.Context, input *NewDyeingOrder) (*DyeingOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildDyeingOrderItems(input.Items, input.ProcessingPrice)
	if err != nil {
		return nil, err
	}

	operator := input.Operator
	if operator == "" {
		operator, _ = utils.GetOperatorFromContext(ctx)
	}
	order := DyeingOrder{
		OrderNumber:            GenerateDyeingOrderNumber(),
		ProductId:              input.ProductId,
		ProductName:            input.ProductName,
		GreyBatchId:            input.GreyBatchId,
		GreyBatchCode:          input.GreyBatchCode,
		FactoryId:              input.FactoryId,
		FactoryName:            input.FactoryName,
		FactoryPhone:           input.FactoryPhone,
		ShipmentDate:           input.ShipmentDate,
		ExpectedCompletionDate: input.ExpectedCompletionDate,
		ProcessingPrice:        input.ProcessingPrice,
		TotalAmount:            total,
		Status:                 DyeingOrderStatusAwaitingShipment,
		Operator:               operator,
		Remark:                 input.Remark,
		Items:                  items,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return &order, nil
}

// UpdateDyeingOrder replaces the item list under a row lock so a concurrent
// transition cannot land between the editability check and the replace.
func UpdateDyeingOrder(ctx context.Context, id int, input *NewDyeingOrder) (*DyeingOrder, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	items, total, err := buildDyeingOrderItems(input.Items, input.ProcessingPrice)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.OrderId = id
	}

	db := config.GetDB()
	tx := db.Begin()
	var order DyeingOrder
	err = tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if !DyeingOrderEditable(order.Status) {
		tx.Rollback()
		return nil, utils.NewStateError("dyeing order can only be edited while awaiting shipment")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&DyeingOrderItem{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&order).
		Updates(map[string]interface{}{
			"ProductId":              input.ProductId,
			"ProductName":            input.ProductName,
			"GreyBatchId":            input.GreyBatchId,
			"GreyBatchCode":          input.GreyBatchCode,
			"FactoryId":              input.FactoryId,
			"FactoryName":            input.FactoryName,
			"FactoryPhone":           input.FactoryPhone,
			"ShipmentDate":           input.ShipmentDate,
			"ExpectedCompletionDate": input.ExpectedCompletionDate,
			"ProcessingPrice":        input.ProcessingPrice,
			"TotalAmount":            total,
			"Remark":                 input.Remark,
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

func DeleteDyeingOrder(ctx context.Context, id int) (*DyeingOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order DyeingOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if order.Status != DyeingOrderStatusAwaitingShipment {
		tx.Rollback()
		return nil, utils.NewStateError("dyeing order can only be deleted while awaiting shipment")
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Delete(&DyeingOrderItem{}).Error; err != nil {
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

func UpdateDyeingOrderStatus(ctx context.Context, id int, status DyeingOrderStatus) (*DyeingOrder, error) {
	db := config.GetDB()
	tx := db.Begin()
	var order DyeingOrder
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").First(&order, id).Error
	if err != nil {
		tx.Rollback()
		return nil, utils.TranslateDBError(err)
	}
	if _, err := ValidateDyeingOrderTransition(order.Status, status); err != nil {
		tx.Rollback()
		return nil, err
	}
	updates := map[string]interface{}{"Status": status}
	if status == DyeingOrderStatusCompleted && order.ActualCompletionDate == nil {
		now := time.Now()
		updates["ActualCompletionDate"] = &now
		order.ActualCompletionDate = &now
	}
	if err := tx.WithContext(ctx).Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	order.Status = status
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func GetDyeingOrder(ctx context.Context, id int) (*DyeingOrder, error) {
	return utils.FetchModel[DyeingOrder](ctx, id, "Items")
}

func GetDyeingOrders(ctx context.Context, status *DyeingOrderStatus, factoryId int, startDate, endDate *time.Time) ([]*DyeingOrder, error) {
	var orders []*DyeingOrder
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if factoryId != 0 {
		dbCtx = dbCtx.Where("factory_id = ?", factoryId)
	}
	if startDate != nil {
		dbCtx = dbCtx.Where("shipment_date >= ?", *startDate)
	}
	if endDate != nil {
		dbCtx = dbCtx.Where("shipment_date <= ?", *endDate)
	}
	if err := dbCtx.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
