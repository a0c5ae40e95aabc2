package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/artisanhub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user, err := models.NewUser("Test "+role, email, role)
	if err != nil {
		t.Fatalf("new user failed: %v", err)
	}
	user.PasswordHash = "hash"
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

type productOption func(*models.Product)

func withCategory(category string) productOption {
	return func(p *models.Product) { p.Category = category }
}

func withStock(stock int) productOption {
	return func(p *models.Product) { p.Stock = stock }
}

func withDescription(description string) productOption {
	return func(p *models.Product) { p.Description = description }
}

func inactive() productOption {
	return func(p *models.Product) { p.IsActive = false }
}

func featured() productOption {
	return func(p *models.Product) { p.IsFeatured = true }
}

func createTestProduct(t *testing.T, db *gorm.DB, artisanID uint, title string, price float64, opts ...productOption) *models.Product {
	t.Helper()
	amount := models.NewMoneyFromFloat(price)
	product, err := models.NewProduct(artisanID, models.ProductInput{
		Title:       title,
		Description: "Handmade with care in a small studio.",
		Price:       &amount,
		Category:    "Handmade Decors",
		Images:      []string{"https://cdn.example.com/" + strings.ReplaceAll(title, " ", "-") + ".jpg"},
	})
	if err != nil {
		t.Fatalf("new product failed: %v", err)
	}
	for _, opt := range opts {
		opt(product)
	}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestOrder(t *testing.T, db *gorm.DB, customerID uint, status string, createdAt time.Time, products ...*models.Product) *models.Order {
	t.Helper()
	items := make([]models.OrderItem, 0, len(products))
	total := models.ZeroMoney()
	for _, p := range products {
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			ArtisanID: p.ArtisanID,
			Title:     p.Title,
			Image:     p.Images.First(),
			Quantity:  1,
			Price:     p.Price,
		})
		total = total.Plus(p.Price)
	}
	order, err := models.NewOrder(models.OrderDraft{
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: total,
		ShippingAddress: models.ShippingAddress{
			Name:    "Asha Rao",
			Phone:   "+91 98765 43210",
			Street:  "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			ZipCode: "560001",
		},
	}, createdAt)
	if err != nil {
		t.Fatalf("new order failed: %v", err)
	}
	order.Status = status
	order.CreatedAt = createdAt
	if err := NewOrderRepository(db).Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}
