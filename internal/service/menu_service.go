package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
)

const DefaultRecommendCount = 3

const (
	MenuQueryAll      = "all"
	MenuQueryCategory = "category"
	MenuQueryPrice    = "price"
	MenuQueryName     = "name"
)

type DishAvailability struct {
	Available bool     `json:"available"`
	Price     *float64 `json:"price,omitempty"`
	Category  string   `json:"category,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

type MenuService interface {
	Query(ctx context.Context, queryType, value string) ([]models.Dish, error)
	Recommend(ctx context.Context, category string, budget float64, count int) ([]models.Dish, error)
	CheckAvailability(ctx context.Context, names []string) (map[string]DishAvailability, error)
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

// Query filters the dishes currently on sale.
func (s *menuService) Query(ctx context.Context, queryType, value string) ([]models.Dish, error) {
	var keep func(models.Dish) bool
	switch queryType {
	case "", MenuQueryAll:
		keep = func(models.Dish) bool { return true }
	case MenuQueryCategory:
		keep = func(d models.Dish) bool { return d.Category == value }
	case MenuQueryPrice:
		limit, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, invalidf("price filter %q is not a number", value)
		}
		keep = func(d models.Dish) bool { return d.Price <= limit }
	case MenuQueryName:
		needle := strings.ToLower(value)
		keep = func(d models.Dish) bool { return strings.Contains(strings.ToLower(d.Name), needle) }
	default:
		return nil, invalidf("unknown menu query type %q", queryType)
	}

	dishes, err := s.available(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *menuService) Recommend(ctx context.Context, category string, budget float64, count int) ([]models.Dish, error) {
	if count <= 0 {
		count = DefaultRecommendCount
	}
	queryType := MenuQueryAll
	if category != "" {
		queryType = MenuQueryCategory
	}
	dishes, err := s.Query(ctx, queryType, category)
	if err != nil {
		return nil, err
	}

	out := make([]models.Dish, 0, count)
	for _, d := range dishes {
		if budget > 0 && d.Price > budget {
			continue
		}
		out = append(out, d)
		if len(out) == count {
			break
		}
	}
	return out, nil
}

func (s *menuService) CheckAvailability(ctx context.Context, names []string) (map[string]DishAvailability, error) {
	if len(names) == 0 {
		return nil, missingFields("dishes")
	}
	dishes, err := s.available(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]models.Dish, len(dishes))
	for _, d := range dishes {
		byName[d.Name] = d
	}

	out := make(map[string]DishAvailability, len(names))
	for _, name := range names {
		d, ok := byName[name]
		if !ok {
			out[name] = DishAvailability{Available: false, Reason: "dish not found"}
			continue
		}
		price := d.Price
		out[name] = DishAvailability{Available: true, Price: &price, Category: d.Category}
	}
	return out, nil
}

func (s *menuService) available(ctx context.Context) ([]models.Dish, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure("read menu", err)
	}
	out := make([]models.Dish, 0, len(all))
	for _, d := range all {
		if d.Available {
			out = append(out, d)
		}
	}
	return out, nil
}
