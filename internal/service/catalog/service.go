package catalog

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/domain"
)

// Service управляет каталогом блюд магазинов.
type Service struct {
	meals  domain.MealRepository
	logger *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(meals domain.MealRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{meals: meals, logger: logger}
}

// Create сохраняет блюдо после проверки уникальности пары (shop_id, name).
// Проверка и вставка — два независимых обращения к хранилищу, поэтому при
// одновременном создании двух одинаковых блюд дубликат возможен и всплывёт
// позже как дубликат в каталоге, а не предотвращается здесь.
func (s *Service) Create(ctx context.Context, meal domain.Meal) (string, error) {
	if errs := meal.Validate(); len(errs) != 0 {
		return "", errors.Join(errs...)
	}

	exists, err := s.meals.ExistsBy(ctx, domain.Filter{
		"shop_id": meal.ShopID,
		"name":    meal.Name,
	})
	if err != nil {
		return "", fmt.Errorf("check meal exists: %w", err)
	}
	if exists {
		return "", domain.ErrMealExists
	}

	id, err := s.meals.Create(ctx, meal)
	if err != nil {
		return "", fmt.Errorf("create meal: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"meal_id": id,
		"shop_id": meal.ShopID,
		"name":    meal.Name,
	}).Info("meal created")

	return id, nil
}

// List возвращает все блюда каталога.
func (s *Service) List(ctx context.Context) ([]domain.Meal, error) {
	meals, err := s.meals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// Get возвращает блюдо по идентификатору.
func (s *Service) Get(ctx context.Context, id string) (domain.Meal, error) {
	meal, err := s.meals.FindByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Meal{}, err
		}
		return domain.Meal{}, fmt.Errorf("get meal: %w", err)
	}
	return meal, nil
}

// Update применяет частичное обновление; false — блюда нет.
func (s *Service) Update(ctx context.Context, id string, patch domain.MealPatch) (bool, error) {
	ok, err := s.meals.UpdateByID(ctx, id, patch)
	if err != nil {
		return false, fmt.Errorf("update meal: %w", err)
	}
	return ok, nil
}

// Delete удаляет блюдо; false — блюда уже нет.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.meals.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete meal: %w", err)
	}
	return ok, nil
}
