package repository

import (
	"testing"
	"time"
)

func TestWishlistAddRemoveContains(t *testing.T) {
	db := setupRepositoryTest(t)
	user := createTestUser(t, db, "buyer@example.com", "customer")
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	vase := createTestProduct(t, db, artisan.ID, "Blue Vase", 600)
	cup := createTestProduct(t, db, artisan.ID, "Clay Cup", 90, inactive())
	repo := NewWishlistRepository(db)

	wishlist, err := repo.GetOrCreate(user.ID)
	if err != nil || wishlist == nil || len(wishlist.Items) != 0 {
		t.Fatalf("fresh wishlist expected, err=%v", err)
	}
	added, err := repo.AddItem(wishlist.ID, vase.ID, time.Now())
	if err != nil || !added {
		t.Fatalf("first add should insert, err=%v", err)
	}
	if added, _ := repo.AddItem(wishlist.ID, vase.ID, time.Now()); added {
		t.Fatalf("second add of the same product should be a no-op")
	}
	_, _ = repo.AddItem(wishlist.ID, cup.ID, time.Now())

	loaded, _ := repo.GetOrCreate(user.ID)
	if loaded.ID != wishlist.ID || len(loaded.Items) != 2 {
		t.Fatalf("want same wishlist with 2 items, got %d", len(loaded.Items))
	}
	if active := loaded.ActiveItems(); len(active) != 1 || active[0].ProductID != vase.ID {
		t.Fatalf("inactive products should be filtered, got %d", len(active))
	}

	if ok, _ := repo.Contains(user.ID, vase.ID); !ok {
		t.Fatalf("wishlist should contain the vase")
	}
	if removed, _ := repo.RemoveItem(wishlist.ID, vase.ID); removed != 1 {
		t.Fatalf("remove want 1 row got %d", removed)
	}
	if removed, _ := repo.RemoveItem(wishlist.ID, vase.ID); removed != 0 {
		t.Fatalf("second remove want 0 rows got %d", removed)
	}
	if err := repo.Clear(wishlist.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if ok, _ := repo.Contains(user.ID, cup.ID); ok {
		t.Fatalf("cleared wishlist must be empty")
	}
}
