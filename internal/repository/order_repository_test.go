package repository

import (
	"testing"
	"time"

	"github.com/artisanhub/internal/constants"
)

func TestOrderListByArtisanIsScoped(t *testing.T) {
	db := setupRepositoryTest(t)
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	meera := createTestUser(t, db, "meera@example.com", "artisan")
	ravi := createTestUser(t, db, "ravi@example.com", "artisan")
	vase := createTestProduct(t, db, meera.ID, "Blue Vase", 600)
	kite := createTestProduct(t, db, ravi.ID, "Paper Kite", 150)
	now := time.Now()

	mixed := createTestOrder(t, db, customer.ID, constants.OrderStatusPending, now, vase, kite)
	createTestOrder(t, db, customer.ID, constants.OrderStatusPending, now.Add(time.Minute), kite)
	repo := NewOrderRepository(db)

	orders, total, err := repo.ListByArtisan(OrderListFilter{ArtisanID: meera.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by artisan failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != mixed.ID {
		t.Fatalf("meera should see only the mixed order, got total=%d", total)
	}
	if orders[0].Customer == nil || orders[0].Customer.ID != customer.ID {
		t.Fatalf("customer should be preloaded")
	}
	if len(orders[0].Items) != 2 {
		t.Fatalf("items should be preloaded, got %d", len(orders[0].Items))
	}

	_, total, _ = repo.ListByArtisan(OrderListFilter{ArtisanID: ravi.ID})
	if total != 2 {
		t.Fatalf("ravi want 2 orders got %d", total)
	}

	if got, _ := repo.GetByIDAndArtisan(mixed.ID, meera.ID); got == nil {
		t.Fatalf("meera should reach the mixed order")
	}
	other := createTestUser(t, db, "other@example.com", "artisan")
	if got, _ := repo.GetByIDAndArtisan(mixed.ID, other.ID); got != nil {
		t.Fatalf("unrelated artisan must not reach the order")
	}
}

func TestOrderListByCustomerNewestFirstWithStatus(t *testing.T) {
	db := setupRepositoryTest(t)
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	now := time.Now()
	first := createTestOrder(t, db, customer.ID, constants.OrderStatusPending, now.Add(-time.Hour), product)
	second := createTestOrder(t, db, customer.ID, constants.OrderStatusShipped, now, product)
	repo := NewOrderRepository(db)

	orders, total, err := repo.ListByCustomer(OrderListFilter{CustomerID: customer.ID})
	if err != nil || total != 2 {
		t.Fatalf("want 2 orders got %d err=%v", total, err)
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatalf("orders should be newest first")
	}
	_, total, _ = repo.ListByCustomer(OrderListFilter{CustomerID: customer.ID, Status: constants.OrderStatusShipped})
	if total != 1 {
		t.Fatalf("status filter want 1 got %d", total)
	}
	if got, _ := repo.GetByIDAndCustomer(first.ID, customer.ID+100); got != nil {
		t.Fatalf("other customers must not reach the order")
	}
}

func TestUpdateStatusIsConditional(t *testing.T) {
	db := setupRepositoryTest(t)
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	order := createTestOrder(t, db, customer.ID, constants.OrderStatusPending, time.Now(), product)
	repo := NewOrderRepository(db)

	affected, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, map[string]interface{}{"status": constants.OrderStatusConfirmed})
	if err != nil || affected != 1 {
		t.Fatalf("first transition want 1 row got %d err=%v", affected, err)
	}
	affected, err = repo.UpdateStatus(order.ID, constants.OrderStatusPending, map[string]interface{}{"status": constants.OrderStatusCancelled})
	if err != nil {
		t.Fatalf("second transition failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale transition must affect 0 rows, got %d", affected)
	}
	got, _ := repo.GetByID(order.ID)
	if got.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", got.Status)
	}
}

func TestHasDeliveredOrderWithProduct(t *testing.T) {
	db := setupRepositoryTest(t)
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	cup := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	bowl := createTestProduct(t, db, artisan.ID, "Clay Bowl", 120)
	delivered := createTestOrder(t, db, customer.ID, constants.OrderStatusDelivered, time.Now(), cup)
	shipped := createTestOrder(t, db, customer.ID, constants.OrderStatusShipped, time.Now(), bowl)
	repo := NewOrderRepository(db)

	cases := []struct {
		name      string
		customer  uint
		order     uint
		product   uint
		wantMatch bool
	}{
		{"delivered with product", customer.ID, delivered.ID, cup.ID, true},
		{"delivered without product", customer.ID, delivered.ID, bowl.ID, false},
		{"not yet delivered", customer.ID, shipped.ID, bowl.ID, false},
		{"someone else's order", customer.ID + 100, delivered.ID, cup.ID, false},
	}
	for _, tc := range cases {
		ok, err := repo.HasDeliveredOrderWithProduct(tc.customer, tc.order, tc.product)
		if err != nil {
			t.Fatalf("%s: query failed: %v", tc.name, err)
		}
		if ok != tc.wantMatch {
			t.Fatalf("%s: want %v got %v", tc.name, tc.wantMatch, ok)
		}
	}
}

func TestCountByStatusForArtisan(t *testing.T) {
	db := setupRepositoryTest(t)
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	now := time.Now()
	createTestOrder(t, db, customer.ID, constants.OrderStatusPending, now, product)
	createTestOrder(t, db, customer.ID, constants.OrderStatusPending, now, product)
	createTestOrder(t, db, customer.ID, constants.OrderStatusDelivered, now, product)

	rows, err := NewOrderRepository(db).CountByStatusForArtisan(artisan.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	if counts[constants.OrderStatusPending] != 2 || counts[constants.OrderStatusDelivered] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
