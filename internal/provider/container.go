package provider

import (
	"github.com/artisanhub/internal/authz"
	"github.com/artisanhub/internal/cache"
	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/metrics"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/queue"
	"github.com/artisanhub/internal/repository"
	"github.com/artisanhub/internal/service"

	"gorm.io/gorm"
)

// Container dependency wiring shared by the HTTP server and the worker
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Collector

	// Repositories
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	ReviewRepo       repository.ReviewRepository
	WishlistRepo     repository.WishlistRepository
	NotificationRepo repository.NotificationRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	ProductService      *service.ProductService
	CartService         *service.CartService
	OrderService        *service.OrderService
	RatingAggregator    *service.RatingAggregator
	ReviewService       *service.ReviewService
	WishlistService     *service.WishlistService
	ArtisanService      *service.ArtisanService
	NotificationService *service.NotificationService
}

// NewContainer wires everything against the global models.DB
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New()
	}

	c.initRepositories(models.DB)
	c.initServices(models.DB)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.Config.Catalog, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.Config.Order, c.OrderRepo, c.ProductRepo, c.CartRepo, c.QueueClient)
	if c.Metrics != nil {
		c.OrderService.RecordEventsTo(c.Metrics)
	}
	c.RatingAggregator = service.NewRatingAggregator(c.ReviewRepo, c.ProductRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductRepo, c.RatingAggregator)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.ArtisanService = service.NewArtisanService(c.DashboardRepo, c.ProductRepo, c.OrderRepo, c.AuthService)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.OrderRepo, c.ProductRepo)
}
