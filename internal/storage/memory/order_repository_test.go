package memory_test

import (
	"context"
	"testing"

	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/storage/memory"
)

func newOrder() domain.Order {
	return domain.Order{
		UserID: "user-1",
		ShopID: "shop-1",
		OrderItems: []domain.OrderItem{
			{MealID: "meal-1", MealName: "Beef Noodles", Quantity: 2, Price: 120, Remark: "less spicy"},
		},
	}
}

func TestOrderRepository_CreateFindByID(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.UserID != "user-1" || stored.ShopID != "shop-1" {
		t.Fatalf("stored order does not match payload: %+v", stored)
	}
	if stored.Status != domain.OrderStatusCreated {
		t.Fatalf("expected created status, got %s", stored.Status)
	}
	if len(stored.OrderItems) != 1 || stored.OrderItems[0].Quantity != 2 {
		t.Fatalf("expected item snapshot to survive, got %+v", stored.OrderItems)
	}
}

func TestOrderRepository_CreateInvalid(t *testing.T) {
	repo := memory.NewOrderRepository()

	order := newOrder()
	order.OrderItems = nil
	if _, err := repo.Create(context.Background(), order); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderRepository_StoredCopyIsolated(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	order := newOrder()
	id, err := repo.Create(ctx, order)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Мутация исходного среза не должна просочиться в хранилище.
	order.OrderItems[0].Quantity = 99

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.OrderItems[0].Quantity != 2 {
		t.Fatalf("expected stored quantity 2, got %d", stored.OrderItems[0].Quantity)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	status := domain.OrderStatusCompleted
	ok, err := repo.UpdateByID(ctx, id, domain.OrderPatch{Status: &status})
	if err != nil || !ok {
		t.Fatalf("expected update to succeed, ok=%v err=%v", ok, err)
	}

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Status != domain.OrderStatusCompleted {
		t.Fatalf("expected completed status, got %s", stored.Status)
	}
}

func TestOrderRepository_MissingIDs(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	status := domain.OrderStatusCanceled
	ok, err := repo.UpdateByID(ctx, "no-such-id", domain.OrderPatch{Status: &status})
	if err != nil || ok {
		t.Fatalf("expected false without error, ok=%v err=%v", ok, err)
	}

	ok, err = repo.DeleteByID(ctx, "no-such-id")
	if err != nil || ok {
		t.Fatalf("expected false without error, ok=%v err=%v", ok, err)
	}
}

func TestOrderRepository_ExistsBy(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newOrder()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err := repo.ExistsBy(ctx, domain.Filter{"user_id": "user-1", "shop_id": "shop-1"})
	if err != nil || !exists {
		t.Fatalf("expected order to exist, exists=%v err=%v", exists, err)
	}

	exists, err = repo.ExistsBy(ctx, domain.Filter{"user_id": "user-2"})
	if err != nil || exists {
		t.Fatalf("did not expect order for another user, exists=%v err=%v", exists, err)
	}
}
