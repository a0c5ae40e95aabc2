package service

import (
	"errors"
	"testing"

	"github.com/artisanhub/internal/constants"
)

func TestCartAddItemChecksProduct(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	product := env.product(t, artisan, "Crochet Bunny", 25, 3)

	if _, err := env.carts.AddItem(customer.UserID, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want not found got %v", err)
	}

	cart, err := env.carts.AddItem(customer.UserID, product.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if cart.TotalItems != 2 || cart.TotalAmount.String() != "50.00" {
		t.Fatalf("unexpected totals %d/%s", cart.TotalItems, cart.TotalAmount)
	}
	if len(cart.Items) != 1 || cart.Items[0].Product == nil {
		t.Fatalf("cart lines should carry their product: %+v", cart.Items)
	}

	_, err = env.carts.AddItem(customer.UserID, product.ID, 2)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("merged quantity above stock want StockError got %v", err)
	}
	if stockErr.Available != 3 || stockErr.Requested != 4 {
		t.Fatalf("unexpected stock error %+v", stockErr)
	}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("stock error should match ErrInsufficientStock")
	}

	if _, err := env.artisans.SetProductActive(artisan, product.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := env.carts.AddItem(customer.UserID, product.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("inactive product want unavailable got %v", err)
	}
}

func TestCartUpdateRemoveClear(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	bunny := env.product(t, artisan, "Crochet Bunny", 25, 10)
	vase := env.product(t, artisan, "Painted Vase", 12, 10)

	if _, err := env.carts.UpdateItem(customer.UserID, bunny.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("update of absent line want not found got %v", err)
	}
	if _, err := env.carts.AddItem(customer.UserID, bunny.ID, 2); err != nil {
		t.Fatalf("add bunny failed: %v", err)
	}
	if _, err := env.carts.AddItem(customer.UserID, vase.ID, 1); err != nil {
		t.Fatalf("add vase failed: %v", err)
	}

	_, err := env.carts.UpdateItem(customer.UserID, bunny.ID, 0)
	assertFieldError(t, err, "quantity")
	if _, err := env.carts.UpdateItem(customer.UserID, bunny.ID, 11); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("update above stock want insufficient stock got %v", err)
	}
	cart, err := env.carts.UpdateItem(customer.UserID, bunny.ID, 4)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cart.TotalItems != 5 || cart.TotalAmount.String() != "112.00" {
		t.Fatalf("after update want 5/112.00 got %d/%s", cart.TotalItems, cart.TotalAmount)
	}

	cart, err = env.carts.RemoveItem(customer.UserID, vase.ID)
	if err != nil || len(cart.Items) != 1 {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := env.carts.RemoveItem(customer.UserID, vase.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("second remove want not found got %v", err)
	}

	if _, err := env.artisans.SetProductActive(artisan, bunny.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := env.carts.UpdateItem(customer.UserID, bunny.ID, 5); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("update on inactive product want unavailable got %v", err)
	}
	cart, err = env.carts.GetCart(customer.UserID)
	if err != nil || cart.FindItem(bunny.ID) == nil || cart.FindItem(bunny.ID).Quantity != 4 {
		t.Fatalf("inactive product line should keep its quantity: %v", err)
	}

	cart, err = env.carts.Clear(customer.UserID)
	if err != nil || !cart.IsEmpty() || cart.TotalItems != 0 {
		t.Fatalf("clear failed: %v", err)
	}
}

func TestCartSummaryWithoutCart(t *testing.T) {
	env := setupServiceTest(t)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	summary, err := env.carts.Summary(customer.UserID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalItems != 0 || !summary.TotalAmount.IsZero() {
		t.Fatalf("want zeros got %+v", summary)
	}
}

func TestCartValidateReportsIssues(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	bunny := env.product(t, artisan, "Crochet Bunny", 25, 5)
	vase := env.product(t, artisan, "Painted Vase", 12, 5)
	doll := env.product(t, artisan, "Rag Doll", 40, 5)
	for _, id := range []uint{bunny.ID, vase.ID, doll.ID} {
		if _, err := env.carts.AddItem(customer.UserID, id, 3); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	result, err := env.carts.Validate(customer.UserID)
	if err != nil || !result.IsValid || len(result.Issues) != 0 {
		t.Fatalf("fresh cart should be valid: %+v %v", result, err)
	}

	if _, err := env.artisans.SetProductActive(artisan, vase.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := env.db.Model(doll).Update("stock", 2).Error; err != nil {
		t.Fatalf("lower stock failed: %v", err)
	}

	result, err = env.carts.Validate(customer.UserID)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.IsValid || len(result.Issues) != 2 {
		t.Fatalf("want 2 issues got %+v", result)
	}
	for _, issue := range result.Issues {
		switch issue.ProductID {
		case vase.ID:
			if issue.Issue != "Product is no longer available" {
				t.Fatalf("unexpected vase issue %q", issue.Issue)
			}
		case doll.ID:
			if issue.AvailableStock == nil || *issue.AvailableStock != 2 {
				t.Fatalf("doll issue should report 2 available: %+v", issue)
			}
		default:
			t.Fatalf("unexpected issue for product %d", issue.ProductID)
		}
	}
}
