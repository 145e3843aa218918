package models

import (
	"context"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/utils"
)

type Product struct {
	ID            int         `gorm:"primary_key" json:"id"`
	Name          string      `gorm:"size:200;not null" json:"name" binding:"required"`
	Code          string      `gorm:"size:50;uniqueIndex;not null" json:"code" binding:"required"`
	Specification string      `gorm:"size:100" json:"specification"`
	Composition   string      `gorm:"size:200" json:"composition"`
	Count         string      `gorm:"size:50" json:"count"`
	Unit          string      `gorm:"size:20;not null;default:'kg'" json:"unit"`
	Kind          ProductKind `gorm:"type:enum('RawMaterial','SemiFinished','Finished');not null;default:'RawMaterial'" json:"kind"`
	IsWhiteYarn   *bool       `gorm:"not null;default:false" json:"is_white_yarn"`
	Description   string      `gorm:"type:text" json:"description"`
	Colors        []*Color    `json:"colors,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name          string      `json:"name" binding:"required"`
	Code          string      `json:"code" binding:"required"`
	Specification string      `json:"specification"`
	Composition   string      `json:"composition"`
	Count         string      `json:"count"`
	Unit          string      `json:"unit"`
	Kind          ProductKind `json:"kind"`
	IsWhiteYarn   *bool       `json:"is_white_yarn"`
	Description   string      `json:"description"`
}

func (input *NewProduct) validate(ctx context.Context, id int) error {
	return utils.ValidateUnique[Product](ctx, "code", input.Code, id)
}

func (input *NewProduct) apply(product *Product) {
	product.Name = input.Name
	product.Code = input.Code
	product.Specification = input.Specification
	product.Composition = input.Composition
	product.Count = input.Count
	product.Unit = input.Unit
	if product.Unit == "" {
		product.Unit = "kg"
	}
	product.Kind = input.Kind
	if product.Kind == "" {
		product.Kind = ProductKindRawMaterial
	}
	product.IsWhiteYarn = input.IsWhiteYarn
	product.Description = input.Description
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	var product Product
	input.apply(&product)

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	input.apply(product)

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, utils.TranslateDBError(err)
	}
	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var colorCount int64
	if err := db.WithContext(ctx).Model(&Color{}).Where("product_id = ?", id).Count(&colorCount).Error; err != nil {
		return nil, err
	}
	if colorCount > 0 {
		return nil, utils.NewConflictError("product still has colors")
	}

	if err := db.WithContext(ctx).Delete(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return utils.FetchModel[Product](ctx, id, "Colors")
}

func GetProducts(ctx context.Context, kind *ProductKind, keyword string) ([]*Product, error) {
	var products []*Product
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if kind != nil {
		dbCtx = dbCtx.Where("kind = ?", *kind)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		dbCtx = dbCtx.Where("name LIKE ? OR code LIKE ?", pattern, pattern)
	}
	if err := dbCtx.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
