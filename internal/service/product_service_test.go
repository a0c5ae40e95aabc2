package service

import (
	"errors"
	"testing"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"

	"github.com/shopspring/decimal"
)

func TestProductListValidatesQuery(t *testing.T) {
	env := setupServiceTest(t)

	_, err := env.products.List(ProductQuery{Limit: 51})
	assertFieldError(t, err, "limit")
	_, err = env.products.List(ProductQuery{Page: -1})
	assertFieldError(t, err, "page")
	_, err = env.products.List(ProductQuery{Sort: "cheapest"})
	assertFieldError(t, err, "sort")
	_, err = env.products.List(ProductQuery{Category: "Pottery"})
	assertFieldError(t, err, "category")
	_, err = env.products.Search(ProductQuery{Search: "   "})
	assertFieldError(t, err, "q")
}

func TestProductListPaginationAndFilters(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	for i, price := range []float64{50, 150, 250, 750, 1500} {
		env.product(t, artisan, "Clay Lamp "+string(rune('A'+i)), price, 3)
	}

	page, err := env.products.List(ProductQuery{Limit: 2, Page: 2, Sort: constants.SortPriceLow})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Pagination.Total != 5 || page.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	if !page.Pagination.HasNextPage || !page.Pagination.HasPrevPage {
		t.Fatalf("page 2 of 3 should have both neighbours: %+v", page.Pagination)
	}
	if len(page.Products) != 2 || page.Products[0].Price.String() != "250.00" {
		t.Fatalf("unexpected second page: %+v", page.Products)
	}

	low := decimal.NewFromInt(100)
	high := decimal.NewFromInt(750)
	page, err = env.products.ByCategory(constants.CategoryAll, ProductQuery{MinPrice: &low, MaxPrice: &high})
	if err != nil {
		t.Fatalf("by category failed: %v", err)
	}
	if page.Pagination.Total != 3 {
		t.Fatalf("inclusive price range want 3 got %d", page.Pagination.Total)
	}
}

func TestProductGetHidesInactive(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	product := env.product(t, artisan, "Woven Basket", 300, 2)

	got, err := env.products.Get(product.ID)
	if err != nil || got.ID != product.ID {
		t.Fatalf("get active product failed: %v", err)
	}
	if _, err := env.artisans.SetProductActive(artisan, product.ID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := env.products.Get(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inactive product should be not found, got %v", err)
	}
	if _, err := env.products.Get(9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product should be not found, got %v", err)
	}
}

func TestProductWritesRequireOwnership(t *testing.T) {
	env := setupServiceTest(t)
	owner := env.user(t, "owner@example.com", constants.RoleArtisan)
	other := env.user(t, "other@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	admin := env.user(t, "admin@example.com", constants.RoleAdmin)

	if _, err := env.products.Create(customer, productInput("Knitted Scarf", 900, 1)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("customers cannot list products, got %v", err)
	}
	product := env.product(t, owner, "Knitted Scarf", 900, 1)

	rename := models.ProductInput{Title: "Knitted Wool Scarf"}
	if _, err := env.products.Update(other, product.ID, rename); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other artisan should be forbidden, got %v", err)
	}
	stock := 7
	updated, err := env.products.Update(admin, product.ID, models.ProductInput{Title: "Knitted Wool Scarf", Stock: &stock})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Title != "Knitted Wool Scarf" || env.stockOf(t, product.ID) != 7 {
		t.Fatalf("update not applied: title=%q stock=%d", updated.Title, env.stockOf(t, product.ID))
	}

	badPrice := models.NewMoneyFromFloat(100001)
	_, err = env.products.Update(owner, product.ID, models.ProductInput{Price: &badPrice})
	assertFieldError(t, err, "price")

	if err := env.products.Delete(other, product.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other artisan delete should be forbidden, got %v", err)
	}
	if err := env.products.Delete(owner, product.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := env.products.Get(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product should be gone, got %v", err)
	}
}

func TestProductFeaturedDefaultsLimit(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	for i := 0; i < 10; i++ {
		p := env.product(t, artisan, "Doll "+string(rune('A'+i)), 200, 1)
		if _, err := env.artisans.SetProductFeatured(artisan, p.ID, true); err != nil {
			t.Fatalf("feature failed: %v", err)
		}
	}
	featured, err := env.products.Featured(0)
	if err != nil {
		t.Fatalf("featured failed: %v", err)
	}
	if len(featured) != 8 {
		t.Fatalf("default featured limit want 8 got %d", len(featured))
	}
}
