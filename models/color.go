package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
)

type Color struct {
	ID          int         `gorm:"primary_key" json:"id"`
	ProductId   int         `gorm:"index;not null" json:"product_id" binding:"required"`
	Code        string      `gorm:"size:50;not null" json:"code" binding:"required"`
	Name        string      `gorm:"size:100;not null" json:"name" binding:"required"`
	ColorValue  string      `gorm:"size:20" json:"color_value"`
	Description string      `gorm:"type:text" json:"description"`
	Status      ColorStatus `gorm:"type:enum('OnSale','Discontinued');not null;default:'OnSale'" json:"status"`
	Batches     []*Batch    `json:"batches,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewColor struct {
	ProductId   int         `json:"product_id" binding:"required"`
	Code        string      `json:"code" binding:"required"`
	Name        string      `json:"name" binding:"required"`
	ColorValue  string      `json:"color_value"`
	Description string      `json:"description"`
	Status      ColorStatus `json:"status"`
}

func (input *NewColor) validate(ctx context.Context) error {
	return utils.ValidateResourceId[Product](ctx, input.ProductId)
}

func (input *NewColor) apply(color *Color) {
	color.ProductId = input.ProductId
	color.Code = input.Code
	color.Name = input.Name
	color.ColorValue = input.ColorValue
	color.Description = input.Description
	color.Status = input.Status
	if color.Status == "" {
		color.Status = ColorStatusOnSale
	}
}

func CreateColor(ctx context.Context, input *NewColor) (*Color, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	var color Color
	input.apply(&color)

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&color).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return &color, nil
}

func UpdateColor(ctx context.Context, id int, input *NewColor) (*Color, error) {
	color, err := utils.FetchModel[Color](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	input.apply(color)

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(color).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return color, nil
}

func DeleteColor(ctx context.Context, id int) (*Color, error) {
	color, err := utils.FetchModel[Color](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var batchCount int64
	if err := db.WithContext(ctx).Model(&Batch{}).Where("color_id = ?", id).Count(&batchCount).Error; err != nil {
		return nil, err
	}
	if batchCount > 0 {
		return nil, utils.NewConflictError("color still has batches")
	}

	if err := db.WithContext(ctx).Delete(color).Error; err != nil {
		return nil, err
	}
	return color, nil
}

func GetColor(ctx context.Context, id int) (*Color, error) {
	return utils.FetchModel[Color](ctx, id, "Batches")
}

func GetColors(ctx context.Context, productId int, status *ColorStatus) ([]*Color, error) {
	var colors []*Color
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if productId != 0 {
		dbCtx = dbCtx.Where("product_id = ?", productId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if err := dbCtx.Order("created_at DESC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}
