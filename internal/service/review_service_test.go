package service

import (
	"errors"
	"testing"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"

	"gorm.io/gorm"
)

func reviewInput(rating int) models.ReviewInput {
	return models.ReviewInput{
		Rating:  rating,
		Title:   "Lovely piece",
		Comment: "Arrived well packed and looks even better in person.",
	}
}

func (e *serviceTestEnv) ratingsOf(t *testing.T, productID uint) models.Ratings {
	t.Helper()
	var product models.Product
	if err := e.db.Unscoped().First(&product, productID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Ratings
}

func TestReviewRequiresDeliveredOrder(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	bunny := env.product(t, artisan, "Crochet Bunny", 25, 10)
	order := env.checkout(t, customer, map[uint]int{bunny.ID: 1})

	input := CreateReviewInput{ProductID: bunny.ID, OrderID: order.ID, ReviewInput: reviewInput(5)}
	if _, err := env.reviews.Create(customer.UserID, input); !errors.Is(err, ErrReviewNotEligible) {
		t.Fatalf("pending order want not eligible got %v", err)
	}
	env.deliver(t, artisan, order.ID)

	bad := input
	bad.ReviewInput = reviewInput(6)
	_, err := env.reviews.Create(customer.UserID, bad)
	assertFieldError(t, err, "rating")

	review, err := env.reviews.Create(customer.UserID, input)
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if !review.IsVerified {
		t.Fatalf("purchase reviews are verified")
	}
	if _, err := env.reviews.Create(customer.UserID, input); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("second review want duplicate got %v", err)
	}

	stranger := env.user(t, "stranger@example.com", constants.RoleCustomer)
	if _, err := env.reviews.Create(stranger.UserID, input); !errors.Is(err, ErrReviewNotEligible) {
		t.Fatalf("someone else's order want not eligible got %v", err)
	}
}

func TestReviewRatingsFollowChanges(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	admin := env.user(t, "admin@example.com", constants.RoleAdmin)
	bunny := env.product(t, artisan, "Crochet Bunny", 25, 10)

	var reviews []*models.Review
	for i, rating := range []int{5, 4, 4} {
		customer := env.user(t, string(rune('a'+i))+"@example.com", constants.RoleCustomer)
		order := env.checkout(t, customer, map[uint]int{bunny.ID: 1})
		env.deliver(t, artisan, order.ID)
		review, err := env.reviews.Create(customer.UserID, CreateReviewInput{ProductID: bunny.ID, OrderID: order.ID, ReviewInput: reviewInput(rating)})
		if err != nil {
			t.Fatalf("create review failed: %v", err)
		}
		reviews = append(reviews, review)
	}
	if got := env.ratingsOf(t, bunny.ID); got.Average != 4.3 || got.Count != 3 {
		t.Fatalf("want 4.3 over 3 got %+v", got)
	}

	if _, err := env.reviews.Update(reviews[1].CustomerID, reviews[1].ID, models.ReviewInput{Rating: 1}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := env.ratingsOf(t, bunny.ID); got.Average != 3.3 {
		t.Fatalf("after update want 3.3 got %+v", got)
	}

	if _, err := env.reviews.SetHidden(admin, reviews[0].ID, true); err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	if got := env.ratingsOf(t, bunny.ID); got.Average != 2.5 || got.Count != 2 {
		t.Fatalf("hidden review should drop out, got %+v", got)
	}
	page, err := env.reviews.ListForProduct(bunny.ID, ReviewListQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Pagination.Total != 2 || page.RatingStats.Count != 2 {
		t.Fatalf("listing should skip hidden review: %+v", page.Pagination)
	}

	if err := env.reviews.Delete(reviews[2].CustomerID, reviews[2].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := env.ratingsOf(t, bunny.ID); got.Average != 1 || got.Count != 1 {
		t.Fatalf("after delete want 1.0 over 1 got %+v", got)
	}
	if err := env.reviews.Delete(reviews[1].CustomerID, reviews[1].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := env.ratingsOf(t, bunny.ID); got.Average != 0 || got.Count != 0 {
		t.Fatalf("no visible reviews want zero got %+v", got)
	}
}

func TestReviewAuthorOnlyAndModeration(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	other := env.user(t, "other@example.com", constants.RoleCustomer)
	bunny := env.product(t, artisan, "Crochet Bunny", 25, 10)
	order := env.checkout(t, customer, map[uint]int{bunny.ID: 1})
	env.deliver(t, artisan, order.ID)
	review, err := env.reviews.Create(customer.UserID, CreateReviewInput{ProductID: bunny.ID, OrderID: order.ID, ReviewInput: reviewInput(4)})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	if _, err := env.reviews.Update(other.UserID, review.ID, reviewInput(1)); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("non-author update want not found got %v", err)
	}
	if err := env.reviews.Delete(other.UserID, review.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("non-author delete want not found got %v", err)
	}
	if _, err := env.reviews.SetHidden(artisan, review.ID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("artisan moderation want forbidden got %v", err)
	}

	if _, err := env.reviews.MarkHelpful(0, review.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous vote want unauthorized got %v", err)
	}
	if _, err := env.reviews.MarkHelpful(other.UserID, 9999); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("missing review want not found got %v", err)
	}
	voted, err := env.reviews.MarkHelpful(other.UserID, review.ID)
	if err != nil || voted.HelpfulVotes != 1 {
		t.Fatalf("helpful vote failed: %+v %v", voted, err)
	}

	mine, err := env.reviews.ListForCustomer(customer.UserID, ReviewListQuery{})
	if err != nil || mine.Pagination.Total != 1 {
		t.Fatalf("own reviews listing failed: %v", err)
	}
	_, err = env.reviews.ListForProduct(bunny.ID, ReviewListQuery{SortOrder: "up"})
	assertFieldError(t, err, "sortOrder")
	_, err = env.reviews.ListForProduct(bunny.ID, ReviewListQuery{SortBy: "title"})
	assertFieldError(t, err, "sortBy")
}

// staleReviewRepo answers the existence check as if a concurrent create had not landed yet
type staleReviewRepo struct {
	repository.ReviewRepository
}

func (r staleReviewRepo) ExistsForTriple(uint, uint, uint) (bool, error) { return false, nil }

func (r staleReviewRepo) WithTx(tx *gorm.DB) repository.ReviewRepository {
	return staleReviewRepo{r.ReviewRepository.WithTx(tx)}
}

func TestReviewCreateRaceMapsToDuplicate(t *testing.T) {
	env := setupServiceTest(t)
	artisan := env.user(t, "maker@example.com", constants.RoleArtisan)
	customer := env.user(t, "buyer@example.com", constants.RoleCustomer)
	bunny := env.product(t, artisan, "Crochet Bunny", 25, 10)
	order := env.checkout(t, customer, map[uint]int{bunny.ID: 1})
	env.deliver(t, artisan, order.ID)

	input := CreateReviewInput{ProductID: bunny.ID, OrderID: order.ID, ReviewInput: reviewInput(4)}
	if _, err := env.reviews.Create(customer.UserID, input); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	models.DB = nil
	reviewRepo := staleReviewRepo{repository.NewReviewRepository(env.db)}
	productRepo := repository.NewProductRepository(env.db)
	racing := NewReviewService(reviewRepo, repository.NewOrderRepository(env.db), productRepo, NewRatingAggregator(reviewRepo, productRepo))
	if _, err := racing.Create(customer.UserID, input); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("unique index hit want ErrDuplicateReview got %v", err)
	}
	if got := env.ratingsOf(t, bunny.ID); got.Count != 1 {
		t.Fatalf("failed create must not touch ratings, count %d", got.Count)
	}
}
