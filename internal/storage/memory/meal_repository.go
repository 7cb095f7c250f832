package memory

import (
	"time"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// NewMealRepository возвращает in-memory хранилище блюд для локальной
// разработки и тестов.
func NewMealRepository() domain.MealRepository {
	return &collection[domain.Meal, domain.MealPatch]{
		docs:     make(map[string]domain.Meal),
		validate: (*domain.Meal).Validate,
		onCreate: func(meal *domain.Meal, id string, now time.Time) {
			meal.ID = id
			meal.CreatedAt = now
			meal.UpdatedAt = now
		},
		fields: func(meal *domain.Meal) map[string]any {
			return map[string]any{
				"shop_id": meal.ShopID,
				"name":    meal.Name,
				"price":   meal.Price,
			}
		},
		apply: func(meal *domain.Meal, patch domain.MealPatch, now time.Time) {
			if patch.Name != nil {
				meal.Name = *patch.Name
			}
			if patch.Description != nil {
				meal.Description = *patch.Description
			}
			if patch.Price != nil {
				meal.Price = *patch.Price
			}
			if patch.Image != nil {
				meal.Image = *patch.Image
			}
			meal.UpdatedAt = now
		},
		clone: func(meal domain.Meal) domain.Meal { return meal },
	}
}
