package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/artisanhub/internal/models"
)

const featuredProductsKey = "catalog:featured"

func productKey(productID uint) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

func featuredKey(limit int) string {
	return fmt.Sprintf("%s:%d", featuredProductsKey, limit)
}

// GetProduct cached product detail
func GetProduct(ctx context.Context, productID uint) (*models.Product, bool, error) {
	var product models.Product
	hit, err := GetJSON(ctx, productKey(productID), &product)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &product, true, nil
}

func SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || product.ID == 0 {
		return nil
	}
	return SetJSON(ctx, productKey(product.ID), product, ttl)
}

// GetFeatured cached featured shelf for limit
func GetFeatured(ctx context.Context, limit int) ([]models.Product, bool, error) {
	var products []models.Product
	hit, err := GetJSON(ctx, featuredKey(limit), &products)
	if err != nil || !hit {
		return nil, hit, err
	}
	return products, true, nil
}

func SetFeatured(ctx context.Context, limit int, products []models.Product, ttl time.Duration) error {
	return SetJSON(ctx, featuredKey(limit), products, ttl)
}

// InvalidateProducts drops product details and every cached featured shelf
func InvalidateProducts(ctx context.Context, productIDs ...uint) error {
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}
	if err := Del(ctx, keys...); err != nil {
		return err
	}
	return delFeatured(ctx)
}

func delFeatured(ctx context.Context) error {
	return delMatching(ctx, featuredProductsKey+":*")
}
