package mongo_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/storage/mongo"
)

// Интеграционные тесты требуют живой MongoDB; без FOS_MONGO_TEST_URI
// пропускаются.
func openStoreForIntegrationTest(t *testing.T) *mongo.Store {
	t.Helper()

	uri := strings.TrimSpace(os.Getenv("FOS_MONGO_TEST_URI"))
	if uri == "" {
		t.Skip("FOS_MONGO_TEST_URI is not set, skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongo.Open(ctx, uri, "fos_test")
	if err != nil {
		t.Fatalf("open mongo store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	return store
}

func TestMealRepositoryIntegration_Contract(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := mongo.NewMealRepository(store)
	ctx := context.Background()

	meal := domain.Meal{
		ShopID: "shop-it",
		Name:   "Integration Bento",
		Price:  95,
	}

	id, err := repo.Create(ctx, meal)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = repo.DeleteByID(context.Background(), id)
	})

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.ShopID != meal.ShopID || stored.Name != meal.Name || stored.Price != meal.Price {
		t.Fatalf("stored meal does not match payload: %+v", stored)
	}

	exists, err := repo.ExistsBy(ctx, domain.Filter{"shop_id": "shop-it", "name": "Integration Bento"})
	if err != nil || !exists {
		t.Fatalf("expected meal to exist, exists=%v err=%v", exists, err)
	}

	price := int64(110)
	ok, err := repo.UpdateByID(ctx, id, domain.MealPatch{Price: &price})
	if err != nil || !ok {
		t.Fatalf("expected update to succeed, ok=%v err=%v", ok, err)
	}

	updated, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if updated.Price != 110 || updated.Name != meal.Name {
		t.Fatalf("expected patched price with untouched name, got %+v", updated)
	}

	ok, err = repo.DeleteByID(ctx, id)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, ok=%v err=%v", ok, err)
	}
	ok, err = repo.DeleteByID(ctx, id)
	if err != nil || ok {
		t.Fatalf("expected repeated delete to return false, ok=%v err=%v", ok, err)
	}
}

func TestOrderRepositoryIntegration_MalformedID(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	repo := mongo.NewOrderRepository(store)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "definitely-not-an-object-id"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}

	status := domain.OrderStatusCanceled
	ok, err := repo.UpdateByID(ctx, "definitely-not-an-object-id", domain.OrderPatch{Status: &status})
	if err != nil || ok {
		t.Fatalf("expected false without error for malformed id, ok=%v err=%v", ok, err)
	}
}
