package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/queue"
	"github.com/artisanhub/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	products *ProductService
	carts    *CartService
	orders   *OrderService
	reviews  *ReviewService
	wishlist *WishlistService
	artisans *ArtisanService
	notifs   *NotificationService
	auth     *AuthService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{PasswordMinLength: 6},
		Order:    config.OrderConfig{EstimatedDeliveryDays: 7, LowStockThreshold: 5},
		Catalog:  config.CatalogConfig{DefaultPageSize: 12, MaxPageSize: 50, FeaturedLimit: 8, CacheTTLSeconds: 60},
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	auth := NewAuthService(cfg, userRepo)

	return &serviceTestEnv{
		db:       db,
		cfg:      cfg,
		products: NewProductService(cfg.Catalog, productRepo),
		carts:    NewCartService(cartRepo, productRepo),
		orders:   NewOrderService(cfg.Order, orderRepo, productRepo, cartRepo, queueClient),
		reviews:  NewReviewService(reviewRepo, orderRepo, productRepo, NewRatingAggregator(reviewRepo, productRepo)),
		wishlist: NewWishlistService(repository.NewWishlistRepository(db), productRepo),
		artisans: NewArtisanService(repository.NewDashboardRepository(db), productRepo, orderRepo, auth),
		notifs:   NewNotificationService(repository.NewNotificationRepository(db), orderRepo, productRepo),
		auth:     auth,
	}
}

func (e *serviceTestEnv) user(t *testing.T, email, role string) Identity {
	t.Helper()
	user, err := models.NewUser("Test "+role, email, role)
	if err != nil {
		t.Fatalf("new user failed: %v", err)
	}
	user.PasswordHash = "hash"
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return Identity{UserID: user.ID, Role: role}
}

func productInput(title string, price float64, stock int) models.ProductInput {
	p := models.NewMoneyFromFloat(price)
	return models.ProductInput{
		Title:       title,
		Description: "Handmade with care in a small studio.",
		Price:       &p,
		Category:    constants.CategoryHandmadeDecors,
		Images:      []string{"https://cdn.example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".jpg"},
		Stock:       &stock,
	}
}

func (e *serviceTestEnv) product(t *testing.T, artisan Identity, title string, price float64, stock int) *models.Product {
	t.Helper()
	product, err := e.products.Create(artisan, productInput(title, price, stock))
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (e *serviceTestEnv) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	var product models.Product
	if err := e.db.Unscoped().First(&product, productID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return product.Stock
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:    "Asha Rao",
		Phone:   "+91 98765 43210",
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		ZipCode: "560001",
	}
}

// checkout fills the cart and places an order
func (e *serviceTestEnv) checkout(t *testing.T, customer Identity, lines map[uint]int) *models.Order {
	t.Helper()
	for productID, qty := range lines {
		if _, err := e.carts.AddItem(customer.UserID, productID, qty); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
	}
	order, err := e.orders.CreateOrder(customer.UserID, CreateOrderInput{ShippingAddress: testAddress()})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

// deliver walks the order through every forward status
func (e *serviceTestEnv) deliver(t *testing.T, artisan Identity, orderID uint) {
	t.Helper()
	steps := []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	}
	for _, status := range steps {
		if _, err := e.orders.UpdateOrderStatus(artisan, orderID, OrderStatusInput{Status: status}); err != nil {
			t.Fatalf("move order to %s failed: %v", status, err)
		}
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want validation error on %s got %v", field, err)
	}
	for _, f := range verr.Fields {
		if f.Field == field {
			return
		}
	}
	t.Fatalf("want field %s in %+v", field, verr.Fields)
}
