package utils

import (
	"context"

	"github.com/Alucard672/shaxian/config"
)

/* DB fetching */

// fetch model from db
// (may return NotFoundError)
func FetchModel[T any](ctx context.Context, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	// preloading
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		return nil, NewNotFoundError("record not found")
	}
	return &result, nil
}
