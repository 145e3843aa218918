package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Batch is the unit of physical stock. StockQuantity is mutated only by
// ApplyBatchStockDelta inside a stock command transaction; order updates
// never overwrite it. InitialQuantity is the snapshot taken at creation
// and never changes afterwards.
type Batch struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ColorId         int             `gorm:"index;not null" json:"color_id" binding:"required"`
	Code            string          `gorm:"size:50;uniqueIndex;not null" json:"code" binding:"required"`
	ProductionDate  *time.Time      `json:"production_date"`
	SupplierId      int             `json:"supplier_id"`
	SupplierName    string          `gorm:"size:100" json:"supplier_name"`
	PurchasePrice   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"purchase_price"`
	StockQuantity   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"stock_quantity"`
	InitialQuantity decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"initial_quantity"`
	StockLocation   string          `gorm:"size:100" json:"stock_location"`
	Remark          string          `gorm:"type:text" json:"remark"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBatch struct {
	ColorId         int              `json:"color_id" binding:"required"`
	Code            string           `json:"code" binding:"required"`
	ProductionDate  *time.Time       `json:"production_date"`
	SupplierId      int              `json:"supplier_id"`
	SupplierName    string           `json:"supplier_name"`
	PurchasePrice   decimal.Decimal  `json:"purchase_price"`
	StockQuantity   *decimal.Decimal `json:"stock_quantity"`
	InitialQuantity decimal.Decimal  `json:"initial_quantity"`
	StockLocation   string           `json:"stock_location"`
	Remark          string           `json:"remark"`
}

func (input *NewBatch) validate(ctx context.Context, id int) error {
	if err := utils.ValidateResourceId[Color](ctx, input.ColorId); err != nil {
		return err
	}
	return utils.ValidateUnique[Batch](ctx, "code", input.Code, id)
}

func CreateBatch(ctx context.Context, input *NewBatch) (*Batch, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	stockQuantity := input.InitialQuantity
	if input.StockQuantity != nil {
		stockQuantity = *input.StockQuantity
	}
	batch := Batch{
		ColorId:         input.ColorId,
		Code:            input.Code,
		ProductionDate:  input.ProductionDate,
		SupplierId:      input.SupplierId,
		SupplierName:    input.SupplierName,
		PurchasePrice:   input.PurchasePrice,
		StockQuantity:   stockQuantity,
		InitialQuantity: input.InitialQuantity,
		StockLocation:   input.StockLocation,
		Remark:          input.Remark,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&batch).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return &batch, nil
}

// UpdateBatch edits descriptive fields only; stock and initial quantities
// are out of reach of the update path.
func UpdateBatch(ctx context.Context, id int, input *NewBatch) (*Batch, error) {
	batch, err := utils.FetchModel[Batch](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(batch).
		Updates(map[string]interface{}{
			"ColorId":        input.ColorId,
			"Code":           input.Code,
			"ProductionDate": input.ProductionDate,
			"SupplierId":     input.SupplierId,
			"SupplierName":   input.SupplierName,
			"PurchasePrice":  input.PurchasePrice,
			"StockLocation":  input.StockLocation,
			"Remark":         input.Remark,
		}).Error
	if err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return batch, nil
}

func DeleteBatch(ctx context.Context, id int) (*Batch, error) {
	batch, err := utils.FetchModel[Batch](ctx, id)
	if err != nil {
		return nil, err
	}
	if !batch.StockQuantity.IsZero() {
		return nil, utils.NewConflictError("batch still holds stock")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

func GetBatch(ctx context.Context, id int) (*Batch, error) {
	return utils.FetchModel[Batch](ctx, id)
}

func GetBatches(ctx context.Context, colorId int, keyword string) ([]*Batch, error) {
	var batches []*Batch
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if colorId != 0 {
		dbCtx = dbCtx.Where("color_id = ?", colorId)
	}
	if keyword != "" {
		dbCtx = dbCtx.Where("code LIKE ?", "%"+keyword+"%")
	}
	if err := dbCtx.Order("created_at DESC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// ApplyBatchStockDelta adds delta to the batch's stock inside tx. The
// update is relative so concurrent transitions on different orders cannot
// lose each other's writes.
func ApplyBatchStockDelta(tx *gorm.DB, batchId int, delta decimal.Decimal) error {
	var count int64
	if err := tx.Model(&Batch{}).Where("id = ?", batchId).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.NewNotFoundError("batch not found")
	}
	if delta.IsZero() {
		return nil
	}
	return tx.Exec("UPDATE batches SET stock_quantity = stock_quantity + ?, updated_at = NOW() WHERE id = ?", delta, batchId).Error
}
