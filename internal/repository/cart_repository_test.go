package repository

import (
	"testing"

	"github.com/artisanhub/internal/models"
)

func TestCartGetOrCreateIsIdempotent(t *testing.T) {
	db := setupRepositoryTest(t)
	user := createTestUser(t, db, "buyer@example.com", "customer")
	repo := NewCartRepository(db)

	if cart, err := repo.GetByUser(user.ID); err != nil || cart != nil {
		t.Fatalf("want no cart before first access, got %v err=%v", cart, err)
	}
	first, err := repo.GetOrCreate(user.ID)
	if err != nil || first == nil {
		t.Fatalf("get or create failed: %v", err)
	}
	second, err := repo.GetOrCreate(user.ID)
	if err != nil || second.ID != first.ID {
		t.Fatalf("second access should return the same cart")
	}
	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("want one cart per user got %d", count)
	}
}

func TestCartSaveReconcilesLines(t *testing.T) {
	db := setupRepositoryTest(t)
	user := createTestUser(t, db, "buyer@example.com", "customer")
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	bear := createTestProduct(t, db, artisan.ID, "Crochet Bear", 25, withStock(10))
	owl := createTestProduct(t, db, artisan.ID, "Crochet Owl", 12, withStock(10))
	fox := createTestProduct(t, db, artisan.ID, "Crochet Fox", 30, withStock(10))
	repo := NewCartRepository(db)

	cart, _ := repo.GetOrCreate(user.ID)
	_ = cart.AddItem(bear.ID, 2, bear.Price)
	_ = cart.AddItem(owl.ID, 1, owl.Price)
	if err := repo.Save(cart); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, _ := repo.GetByUser(user.ID)
	if loaded.TotalItems != 3 || loaded.TotalAmount.String() != "62.00" {
		t.Fatalf("persisted totals want 3/62.00 got %d/%s", loaded.TotalItems, loaded.TotalAmount)
	}
	if len(loaded.Items) != 2 || loaded.Items[0].Product == nil {
		t.Fatalf("lines with products should load, got %d", len(loaded.Items))
	}

	loaded.RemoveItem(owl.ID)
	_, _ = loaded.UpdateQuantity(bear.ID, 4)
	_ = loaded.AddItem(fox.ID, 1, fox.Price)
	if err := repo.Save(loaded); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	reloaded, _ := repo.GetByUser(user.ID)
	if len(reloaded.Items) != 2 {
		t.Fatalf("want 2 lines got %d", len(reloaded.Items))
	}
	if item := reloaded.FindItem(bear.ID); item == nil || item.Quantity != 4 {
		t.Fatalf("bear quantity should be 4")
	}
	if reloaded.FindItem(owl.ID) != nil {
		t.Fatalf("removed line must be deleted")
	}
	if reloaded.TotalItems != 5 || reloaded.TotalAmount.String() != "130.00" {
		t.Fatalf("totals want 5/130.00 got %d/%s", reloaded.TotalItems, reloaded.TotalAmount)
	}

	reloaded.Clear()
	if err := repo.Save(reloaded); err != nil {
		t.Fatalf("clear save failed: %v", err)
	}
	var lines int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", reloaded.ID).Count(&lines)
	if lines != 0 {
		t.Fatalf("cleared cart should have no lines, got %d", lines)
	}
}
