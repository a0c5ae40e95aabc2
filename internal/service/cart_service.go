package service

import (
	"fmt"

	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"

	"gorm.io/gorm"
)

// CartService shopping cart of the calling user
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService builds the cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartSummary header badge totals
type CartSummary struct {
	TotalItems  int          `json:"total_items"`
	TotalAmount models.Money `json:"total_amount"`
}

// CartIssue a line that cannot be checked out as-is
type CartIssue struct {
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	Issue          string `json:"issue"`
	AvailableStock *int   `json:"available_stock,omitempty"`
}

// CartValidation checkout readiness of a cart
type CartValidation struct {
	IsValid bool        `json:"is_valid"`
	Issues  []CartIssue `json:"issues"`
}

// GetCart returns the user's cart, creating it on first access
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	return s.cartRepo.GetOrCreate(userID)
}

// AddItem adds qty of a product at its current price
func (s *CartService) AddItem(userID, productID uint, qty int) (*models.Cart, error) {
	if qty == 0 {
		qty = 1
	}
	product, err := s.purchasable(productID)
	if err != nil {
		return nil, err
	}
	var cart *models.Cart
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		current, err := repo.GetOrCreate(userID)
		if err != nil {
			return err
		}
		requested := qty
		if line := current.FindItem(productID); line != nil {
			requested += line.Quantity
		}
		if requested > product.Stock {
			return stockError(product, requested)
		}
		if err := current.AddItem(productID, qty, product.Price); err != nil {
			return err
		}
		if err := repo.Save(current); err != nil {
			return err
		}
		cart, err = repo.GetByUser(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem overwrites the quantity of an existing line
func (s *CartService) UpdateItem(userID, productID uint, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, models.NewFieldError("quantity", "Quantity must be at least 1")
	}
	product, err := s.purchasable(productID)
	if err != nil {
		return nil, err
	}
	if qty > product.Stock {
		return nil, stockError(product, qty)
	}
	return s.mutate(userID, func(cart *models.Cart) error {
		found, err := cart.UpdateQuantity(productID, qty)
		if err != nil {
			return err
		}
		if !found {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// RemoveItem drops a line
func (s *CartService) RemoveItem(userID, productID uint) (*models.Cart, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		if !cart.RemoveItem(productID) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// Clear empties the cart
func (s *CartService) Clear(userID uint) (*models.Cart, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		cart.Clear()
		return nil
	})
}

// Summary totals; zeros when the user never opened a cart
func (s *CartService) Summary(userID uint) (CartSummary, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return CartSummary{}, err
	}
	if cart == nil {
		return CartSummary{TotalAmount: models.ZeroMoney()}, nil
	}
	return CartSummary{TotalItems: cart.TotalItems, TotalAmount: cart.TotalAmount}, nil
}

// Validate lists lines whose product vanished, was deactivated or lacks stock
func (s *CartService) Validate(userID uint) (CartValidation, error) {
	result := CartValidation{IsValid: true, Issues: []CartIssue{}}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return result, err
	}
	if cart.IsEmpty() {
		return result, nil
	}
	for _, item := range cart.Items {
		product := item.Product
		switch {
		case !product.IsPurchasable():
			issue := CartIssue{ProductID: item.ProductID, Issue: "Product is no longer available"}
			if product != nil {
				issue.ProductName = product.Title
			}
			result.Issues = append(result.Issues, issue)
		case product.Stock < item.Quantity:
			available := product.Stock
			result.Issues = append(result.Issues, CartIssue{
				ProductID:      item.ProductID,
				ProductName:    product.Title,
				Issue:          fmt.Sprintf("Only %d items available in stock", available),
				AvailableStock: &available,
			})
		}
	}
	result.IsValid = len(result.Issues) == 0
	return result, nil
}

func (s *CartService) mutate(userID uint, fn func(cart *models.Cart) error) (*models.Cart, error) {
	var cart *models.Cart
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		current, err := repo.GetOrCreate(userID)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}
		if err := repo.Save(current); err != nil {
			return err
		}
		cart, err = repo.GetByUser(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) purchasable(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}
	return product, nil
}

func stockError(product *models.Product, requested int) *StockError {
	return &StockError{
		ProductID:   product.ID,
		ProductName: product.Title,
		Available:   product.Stock,
		Requested:   requested,
	}
}
