package utils

import (
	"context"

	"github.com/Alucard672/shaxian/config"
)

// check if id exists, return NotFoundError when missing
func ValidateResourceId[T any](ctx context.Context, id interface{}) error {

	db := config.GetDB()
	var model T
	var count int64
	err := db.WithContext(ctx).Model(&model).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return err
	}
	if count <= 0 {
		return NewNotFoundError("record not found")
	}

	return nil
}

// validate a unique column for both create & update. (excludeId = 0 for create)
func ValidateUnique[T any](ctx context.Context, field string, value string, excludeId int) error {

	db := config.GetDB()
	var model T
	var count int64
	dbCtx := db.WithContext(ctx).Model(&model).Where(field+" = ?", value)
	if excludeId > 0 {
		dbCtx = dbCtx.Where("id != ?", excludeId)
	}
	if err := dbCtx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return NewConflictError(field + " already exists")
	}
	return nil
}
