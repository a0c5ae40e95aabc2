package service

import (
	"time"

	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"
)

// WishlistService saved products of the calling user
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService builds the wishlist service
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Get the user's wishlist; delisted products are left out
func (s *WishlistService) Get(userID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	wishlist.Items = wishlist.ActiveItems()
	return wishlist, nil
}

// Add saves an active product
func (s *WishlistService) Add(userID, productID uint) (*models.Wishlist, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	added, err := s.wishlistRepo.AddItem(wishlist.ID, productID, time.Now())
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyInWishlist
	}
	return s.Get(userID)
}

// Remove drops a saved product
func (s *WishlistService) Remove(userID, productID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	removed, err := s.wishlistRepo.RemoveItem(wishlist.ID, productID)
	if err != nil {
		return nil, err
	}
	if removed == 0 {
		return nil, ErrWishlistItemNotFound
	}
	return s.Get(userID)
}

// Clear drops every saved product
func (s *WishlistService) Clear(userID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.wishlistRepo.Clear(wishlist.ID); err != nil {
		return nil, err
	}
	wishlist.Items = []models.WishlistItem{}
	return wishlist, nil
}

// Contains reports whether the product is saved
func (s *WishlistService) Contains(userID, productID uint) (bool, error) {
	return s.wishlistRepo.Contains(userID, productID)
}
