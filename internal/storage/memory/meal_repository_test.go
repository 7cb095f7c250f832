package memory_test

import (
	"context"
	"testing"

	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/storage/memory"
)

func newMeal() domain.Meal {
	return domain.Meal{
		ShopID:      "shop-1",
		Name:        "Beef Noodles",
		Description: "house special",
		Price:       120,
	}
}

func TestMealRepository_CreateFindByID(t *testing.T) {
	repo := memory.NewMealRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, newMeal())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.ShopID != "shop-1" || stored.Name != "Beef Noodles" || stored.Price != 120 {
		t.Fatalf("stored meal does not match payload: %+v", stored)
	}
	if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
		t.Fatal("expected generated timestamps")
	}
}

func TestMealRepository_CreateInvalid(t *testing.T) {
	repo := memory.NewMealRepository()

	meal := newMeal()
	meal.Price = -1
	if _, err := repo.Create(context.Background(), meal); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMealRepository_FindByIDMissing(t *testing.T) {
	repo := memory.NewMealRepository()

	if _, err := repo.FindByID(context.Background(), "no-such-id"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMealRepository_FindAll(t *testing.T) {
	repo := memory.NewMealRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newMeal()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := newMeal()
	other.Name = "Wonton Soup"
	if _, err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	meals, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
}

func TestMealRepository_ExistsBy(t *testing.T) {
	repo := memory.NewMealRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, newMeal())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	filter := domain.Filter{"shop_id": "shop-1", "name": "Beef Noodles"}
	exists, err := repo.ExistsBy(ctx, filter)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected meal to exist")
	}

	exists, err = repo.ExistsBy(ctx, domain.Filter{"shop_id": "shop-2", "name": "Beef Noodles"})
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("did not expect meal in another shop")
	}

	// После удаления фильтр больше не находит блюдо.
	if _, err := repo.DeleteByID(ctx, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	exists, err = repo.ExistsBy(ctx, filter)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("expected meal to be gone after delete")
	}
}

func TestMealRepository_UpdateByID(t *testing.T) {
	repo := memory.NewMealRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, newMeal())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	price := int64(150)
	ok, err := repo.UpdateByID(ctx, id, domain.MealPatch{Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !ok {
		t.Fatal("expected update to hit existing meal")
	}

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Price != 150 {
		t.Fatalf("expected price 150, got %d", stored.Price)
	}
	// Не указанные в патче поля остаются без изменений.
	if stored.Name != "Beef Noodles" || stored.Description != "house special" {
		t.Fatalf("expected untouched fields to survive, got %+v", stored)
	}
}

func TestMealRepository_UpdateByIDMissing(t *testing.T) {
	repo := memory.NewMealRepository()

	name := "Anything"
	ok, err := repo.UpdateByID(context.Background(), "no-such-id", domain.MealPatch{Name: &name})
	if err != nil {
		t.Fatalf("update of missing id must not error: %v", err)
	}
	if ok {
		t.Fatal("expected false for missing id")
	}
}

func TestMealRepository_DeleteByIDIdempotent(t *testing.T) {
	repo := memory.NewMealRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, newMeal())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err := repo.DeleteByID(ctx, id)
	if err != nil || !ok {
		t.Fatalf("expected first delete to succeed, ok=%v err=%v", ok, err)
	}

	ok, err = repo.DeleteByID(ctx, id)
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if ok {
		t.Fatal("expected false on repeated delete")
	}
}
