package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

func createTestReview(t *testing.T, repo *GormReviewRepository, productID, customerID, orderID uint, rating int) *models.Review {
	t.Helper()
	review, err := models.NewReview(productID, customerID, orderID, models.ReviewInput{
		Rating:  rating,
		Title:   "Lovely piece",
		Comment: "Beautiful work, arrived well packed.",
	})
	if err != nil {
		t.Fatalf("new review failed: %v", err)
	}
	if err := repo.Create(review); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	return review
}

func TestReviewAggregateSkipsHidden(t *testing.T) {
	db := setupRepositoryTest(t)
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	repo := NewReviewRepository(db)

	for i, rating := range []int{5, 4, 4} {
		customer := createTestUser(t, db, "buyer"+string(rune('a'+i))+"@example.com", "customer")
		order := createTestOrder(t, db, customer.ID, constants.OrderStatusDelivered, time.Now(), product)
		createTestReview(t, repo, product.ID, customer.ID, order.ID, rating)
	}
	row, err := repo.AggregateRating(product.ID)
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if row.Count != 3 || row.Average < 4.33 || row.Average > 4.34 {
		t.Fatalf("want 3 reviews avg 4.33 got %d/%f", row.Count, row.Average)
	}

	if err := db.Model(&models.Review{}).Where("rating = ?", 5).Update("is_hidden", true).Error; err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	row, _ = repo.AggregateRating(product.ID)
	if row.Count != 2 || row.Average != 4 {
		t.Fatalf("hidden review must be excluded, got %d/%f", row.Count, row.Average)
	}

	stars, err := repo.CountByRating(product.ID)
	if err != nil {
		t.Fatalf("star counts failed: %v", err)
	}
	if len(stars) != 5 || stars[4] != 2 || stars[5] != 0 {
		t.Fatalf("unexpected star counts: %v", stars)
	}

	empty, _ := repo.AggregateRating(product.ID + 100)
	if empty.Count != 0 || empty.Average != 0 {
		t.Fatalf("no reviews should aggregate to zeros, got %+v", empty)
	}
}

func TestReviewTripleIsUnique(t *testing.T) {
	db := setupRepositoryTest(t)
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	order := createTestOrder(t, db, customer.ID, constants.OrderStatusDelivered, time.Now(), product)
	repo := NewReviewRepository(db)

	createTestReview(t, repo, product.ID, customer.ID, order.ID, 5)
	exists, err := repo.ExistsForTriple(product.ID, customer.ID, order.ID)
	if err != nil || !exists {
		t.Fatalf("triple should exist, err=%v", err)
	}
	dup, _ := models.NewReview(product.ID, customer.ID, order.ID, models.ReviewInput{
		Rating: 3, Title: "Again", Comment: "Trying to review twice here.",
	})
	if err := repo.Create(dup); err == nil {
		t.Fatalf("unique index should reject a duplicate triple")
	}
}

func TestReviewListSortAndHelpful(t *testing.T) {
	db := setupRepositoryTest(t)
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	repo := NewReviewRepository(db)

	var reviews []*models.Review
	for i, rating := range []int{2, 5, 3} {
		customer := createTestUser(t, db, "buyer"+string(rune('a'+i))+"@example.com", "customer")
		order := createTestOrder(t, db, customer.ID, constants.OrderStatusDelivered, time.Now(), product)
		reviews = append(reviews, createTestReview(t, repo, product.ID, customer.ID, order.ID, rating))
	}
	if affected, err := repo.IncrementHelpful(reviews[2].ID); err != nil || affected != 1 {
		t.Fatalf("increment helpful failed: %d %v", affected, err)
	}

	list, total, err := repo.List(ReviewListFilter{ProductID: product.ID, SortBy: "rating", SortOrder: "desc"})
	if err != nil || total != 3 {
		t.Fatalf("list failed: total=%d err=%v", total, err)
	}
	if list[0].Rating != 5 || list[2].Rating != 2 {
		t.Fatalf("rating sort wrong: %d..%d", list[0].Rating, list[2].Rating)
	}
	if list[0].Customer == nil {
		t.Fatalf("customer should be preloaded for product listings")
	}

	list, _, _ = repo.List(ReviewListFilter{ProductID: product.ID, SortBy: "helpful_votes"})
	if list[0].ID != reviews[2].ID || list[0].HelpfulVotes != 1 {
		t.Fatalf("most helpful review should be first")
	}

	mine, total, _ := repo.List(ReviewListFilter{CustomerID: reviews[1].CustomerID})
	if total != 1 || mine[0].Product == nil {
		t.Fatalf("customer listing want 1 review with product, got %d", total)
	}

	if affected, _ := repo.IncrementHelpful(99999); affected != 0 {
		t.Fatalf("missing review should affect 0 rows")
	}
}

func TestReviewCreateDuplicateTriple(t *testing.T) {
	db := setupRepositoryTest(t)
	artisan := createTestUser(t, db, "artisan@example.com", "artisan")
	customer := createTestUser(t, db, "buyer@example.com", "customer")
	product := createTestProduct(t, db, artisan.ID, "Clay Cup", 90)
	order := createTestOrder(t, db, customer.ID, constants.OrderStatusDelivered, time.Now(), product)
	repo := NewReviewRepository(db)
	createTestReview(t, repo, product.ID, customer.ID, order.ID, 5)

	again, err := models.NewReview(product.ID, customer.ID, order.ID, models.ReviewInput{
		Rating:  3,
		Title:   "Second thoughts",
		Comment: "Writing a second review for the same order.",
	})
	if err != nil {
		t.Fatalf("new review failed: %v", err)
	}
	if err := repo.Create(again); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("same product, customer and order want ErrDuplicate got %v", err)
	}
}

func TestAsConflict(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{gorm.ErrDuplicatedKey, true},
		{errors.New("constraint failed: UNIQUE constraint failed: reviews.product_id (2067)"), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "idx_review_triple" (SQLSTATE 23505)`), true},
		{errors.New("database is locked"), false},
	}
	for _, tc := range cases {
		if got := errors.Is(asConflict(tc.err), ErrDuplicate); got != tc.want {
			t.Fatalf("asConflict(%v) want %v got %v", tc.err, tc.want, got)
		}
	}
	if asConflict(nil) != nil {
		t.Fatalf("nil stays nil")
	}
}
