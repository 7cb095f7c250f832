package cart_test

import (
	"context"
	"testing"

	"github.com/vladislavdragonenkov/fos/internal/cart"
	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/storage/memory"
)

func newManager(t *testing.T) (*cart.Manager, domain.CartStorage) {
	t.Helper()
	storage := memory.NewCartStorage()
	return cart.NewManager("user-1", storage, nil), storage
}

func TestManagerLoad_EmptySlot(t *testing.T) {
	mgr, _ := newManager(t)

	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("load of missing slot must not error: %v", err)
	}
	c := mgr.Cart()
	if !c.Empty() {
		t.Fatal("expected empty cart")
	}
}

func TestManagerLoad_Corrupt(t *testing.T) {
	mgr, storage := newManager(t)
	ctx := context.Background()

	if err := storage.Write(ctx, "{not json"); err != nil {
		t.Fatalf("seed corrupt slot: %v", err)
	}

	err := mgr.Load(ctx)
	if !domain.IsCorruptCart(err) {
		t.Fatalf("expected corrupt cart error, got %v", err)
	}
	// Повреждённый слот трактуется как отсутствие корзины.
	c := mgr.Cart()
	if !c.Empty() {
		t.Fatal("expected empty cart after corrupt load")
	}
}

func TestManagerFlushLoad_RoundTrip(t *testing.T) {
	mgr, storage := newManager(t)
	ctx := context.Background()

	mgr.UpsertItem("shop-a", domain.ShopRef{Name: "Noodle House", Image: "a.png"}, domain.OrderItem{
		MealID: "m1", MealName: "Beef Noodles", Quantity: 2, Price: 120, Remark: "less spicy",
	})
	if err := mgr.Flush(ctx); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	restored := cart.NewManager("user-1", storage, nil)
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	group, ok := restored.Snapshot("shop-a")
	if !ok {
		t.Fatal("expected shop-a group after reload")
	}
	if group.ShopName != "Noodle House" || group.ShopImage != "a.png" {
		t.Fatalf("expected shop attributes to survive, got %+v", group)
	}
	if len(group.Items) != 1 || group.Items[0].Quantity != 2 || group.Items[0].Remark != "less spicy" {
		t.Fatalf("expected item to survive round trip, got %+v", group.Items)
	}
}

func TestManagerSetItemQuantity(t *testing.T) {
	mgr, _ := newManager(t)
	shop := domain.ShopRef{Name: "A"}
	mgr.UpsertItem("shop-a", shop, domain.OrderItem{MealID: "m1", Quantity: 1, Price: 10})

	if !mgr.SetItemQuantity("shop-a", "m1", 5) {
		t.Fatal("expected quantity update to hit item")
	}
	group, _ := mgr.Snapshot("shop-a")
	if group.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", group.Items[0].Quantity)
	}

	// Ноль удаляет позицию, а с ней и опустевшую группу.
	if !mgr.SetItemQuantity("shop-a", "m1", 0) {
		t.Fatal("expected zero quantity to remove item")
	}
	if _, ok := mgr.Snapshot("shop-a"); ok {
		t.Fatal("expected empty group to be removed")
	}

	if mgr.SetItemQuantity("shop-a", "m1", 1) {
		t.Fatal("expected false for missing item")
	}
}

func TestManagerRemoveItem_KeepsSiblings(t *testing.T) {
	mgr, _ := newManager(t)
	shop := domain.ShopRef{Name: "A"}
	mgr.UpsertItem("shop-a", shop, domain.OrderItem{MealID: "m1", Quantity: 1, Price: 10})
	mgr.UpsertItem("shop-a", shop, domain.OrderItem{MealID: "m2", Quantity: 1, Price: 20})

	if !mgr.RemoveItem("shop-a", "m1") {
		t.Fatal("expected remove to hit item")
	}

	group, ok := mgr.Snapshot("shop-a")
	if !ok {
		t.Fatal("expected group to survive while items remain")
	}
	if len(group.Items) != 1 || group.Items[0].MealID != "m2" {
		t.Fatalf("expected only m2 to remain, got %+v", group.Items)
	}
}

func TestManagerLoad_KeepsUserIDForLegacyDocument(t *testing.T) {
	mgr, storage := newManager(t)
	ctx := context.Background()

	// Документ без user_id: поле заполняется из менеджера.
	if err := storage.Write(ctx, `{"orders_by_shop":{}}`); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	if err := mgr.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if mgr.Cart().UserID != "user-1" {
		t.Fatalf("expected user id to be restored, got %q", mgr.Cart().UserID)
	}
}
