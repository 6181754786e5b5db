package repository

import (
	"context"
	"strings"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
)

type MenuRepository interface {
	FindAll(ctx context.Context) ([]models.Dish, error)
}

type menuRepository struct {
	store RowStore
}

func NewMenuRepository(store RowStore) MenuRepository {
	return &menuRepository{store: store}
}

func (r *menuRepository) FindAll(ctx context.Context) ([]models.Dish, error) {
	records, err := r.store.FetchAll(ctx, SheetMenu)
	if err != nil {
		return nil, err
	}
	out := make([]models.Dish, 0, len(records))
	for _, rec := range records {
		out = append(out, models.Dish{
			ID:          rec[ColDishID],
			Name:        rec[ColDishName],
			Category:    rec[ColCategory],
			Price:       parseFloat(rec[ColPrice]),
			Available:   strings.EqualFold(strings.TrimSpace(rec[ColAvailable]), "true"),
			Description: rec[ColDescription],
		})
	}
	return out, nil
}
