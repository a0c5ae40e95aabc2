package service

import (
	"errors"
	"strings"
	"time"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/queue"
	"github.com/artisanhub/internal/repository"

	"gorm.io/gorm"
)

// lowStockAlertWindow one alert per product within the window
const lowStockAlertWindow = time.Hour

// OrderService checkout and order lifecycle
type OrderService struct {
	orderCfg    config.OrderConfig
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
	events      OrderEventRecorder
}

// OrderEventRecorder counts checkout outcomes and status changes
type OrderEventRecorder interface {
	RecordOrderEvent(event string)
}

// Order events beyond the status names
const (
	OrderEventCreated           = "created"
	OrderEventEmptyCart         = "empty_cart"
	OrderEventInsufficientStock = "insufficient_stock"
)

// NewOrderService builds the order service
func NewOrderService(
	orderCfg config.OrderConfig,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderCfg:    orderCfg,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
	}
}

// RecordEventsTo sends order events to r; nil stops recording
func (s *OrderService) RecordEventsTo(r OrderEventRecorder) *OrderService {
	s.events = r
	return s
}

func (s *OrderService) record(event string) {
	if s.events != nil {
		s.events.RecordOrderEvent(event)
	}
}

// CreateOrderInput checkout form
type CreateOrderInput struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	Notes           string                 `json:"notes"`
}

// OrderStatusInput artisan status change
type OrderStatusInput struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

// OrderListQuery order listing parameters
type OrderListQuery struct {
	Page   int
	Limit  int
	Status string
}

// OrderPage one page of orders
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// CreateOrder turns the customer's cart into a pending order in one transaction
func (s *OrderService) CreateOrder(customerID uint, input CreateOrderInput) (*models.Order, error) {
	now := time.Now()
	var order *models.Order
	var touched []uint
	var lowStock []queue.LowStockPayload

	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByUser(customerID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		ids := make([]uint, 0, len(cart.Items))
		for _, item := range cart.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := productRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			product, ok := byID[line.ProductID]
			if !ok || !product.IsActive {
				stockErr := &StockError{ProductID: line.ProductID, Requested: line.Quantity}
				if ok {
					stockErr.ProductName = product.Title
				}
				return stockErr
			}
			if product.Stock < line.Quantity {
				return stockError(&product, line.Quantity)
			}
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				ArtisanID: product.ArtisanID,
				Title:     product.Title,
				Image:     product.Images.First(),
				Quantity:  line.Quantity,
				Price:     line.Price,
			})
		}

		order, err = models.NewOrder(models.OrderDraft{
			CustomerID:        customerID,
			Items:             items,
			TotalAmount:       cart.TotalAmount,
			PaymentMethod:     input.PaymentMethod,
			ShippingAddress:   input.ShippingAddress,
			Notes:             input.Notes,
			EstimatedDelivery: s.orderCfg.EstimatedDelivery(),
		}, now)
		if err != nil {
			return err
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		for _, item := range order.Items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// stock moved since the read above
				current, err := productRepo.GetByID(item.ProductID)
				if err != nil {
					return err
				}
				stockErr := &StockError{ProductID: item.ProductID, ProductName: item.Title, Requested: item.Quantity}
				if current != nil {
					stockErr.Available = current.Stock
				}
				return stockErr
			}
		}

		after, err := productRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		for _, p := range after {
			if p.Stock <= s.orderCfg.LowStockThreshold {
				lowStock = append(lowStock, queue.LowStockPayload{ProductID: p.ID, Stock: p.Stock})
			}
		}
		touched = ids

		cart.Clear()
		return cartRepo.Save(cart)
	})
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.Is(err, ErrEmptyCart):
			s.record(OrderEventEmptyCart)
			return nil, err
		case errors.Is(err, ErrInsufficientStock):
			s.record(OrderEventInsufficientStock)
			return nil, err
		case errors.As(err, &verr):
			return nil, err
		}
		logger.Errorw("order_create_failed", "customer_id", customerID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	s.record(OrderEventCreated)
	invalidateProductCache(touched...)
	s.enqueueStatusNotify(order.ID, order.Status)
	for _, payload := range lowStock {
		if err := s.queueClient.EnqueueLowStock(payload, lowStockAlertWindow); err != nil {
			logger.Warnw("order_enqueue_low_stock_failed",
				"order_id", order.ID,
				"product_id", payload.ProductID,
				"stock", payload.Stock,
				"error", err,
			)
		}
	}
	return order, nil
}

// ListCustomerOrders the customer's orders, newest first
func (s *OrderService) ListCustomerOrders(customerID uint, query OrderListQuery) (*OrderPage, error) {
	filter, err := orderFilter(query)
	if err != nil {
		return nil, err
	}
	filter.CustomerID = customerID
	orders, total, err := s.orderRepo.ListByCustomer(filter)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Pagination: NewPagination(filter.Page, filter.PageSize, total)}, nil
}

// GetCustomerOrder one order of the customer
func (s *OrderService) GetCustomerOrder(customerID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder cancels a pending or confirmed order and puts its stock back
func (s *OrderService) CancelOrder(customerID, orderID uint) (*models.Order, error) {
	order, err := s.GetCustomerOrder(customerID, orderID)
	if err != nil {
		return nil, err
	}
	if !isCancellable(order.Status) {
		return nil, &TransitionError{Current: order.Status, Requested: constants.OrderStatusCancelled}
	}
	if err := s.transition(order, constants.OrderStatusCancelled, ""); err != nil {
		return nil, err
	}
	return order, nil
}

// ListArtisanOrders orders containing at least one of the artisan's items
func (s *OrderService) ListArtisanOrders(artisanID uint, query OrderListQuery) (*OrderPage, error) {
	filter, err := orderFilter(query)
	if err != nil {
		return nil, err
	}
	filter.ArtisanID = artisanID
	orders, total, err := s.orderRepo.ListByArtisan(filter)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Pagination: NewPagination(filter.Page, filter.PageSize, total)}, nil
}

// UpdateOrderStatus moves an order to any later lifecycle state; admins may act on any order
func (s *OrderService) UpdateOrderStatus(actor Identity, orderID uint, input OrderStatusInput) (*models.Order, error) {
	target := normalizeOrderStatus(input.Status)
	if !isKnownOrderStatus(target) {
		return nil, models.NewFieldError("status", "Invalid status")
	}
	tracking := strings.TrimSpace(input.TrackingNumber)
	if tracking != "" && (len(tracking) < 5 || len(tracking) > 50) {
		return nil, models.NewFieldError("tracking_number", "Tracking number must be between 5 and 50 characters")
	}

	var order *models.Order
	var err error
	if actor.IsAdmin() {
		order, err = s.orderRepo.GetByID(orderID)
	} else {
		order, err = s.orderRepo.GetByIDAndArtisan(orderID, actor.UserID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, &TransitionError{Current: order.Status, Requested: target}
	}
	if err := s.transition(order, target, tracking); err != nil {
		return nil, err
	}
	return order, nil
}

// transition writes target conditionally on the observed status and applies its side effects
func (s *OrderService) transition(order *models.Order, target, tracking string) error {
	now := time.Now()
	observed := order.Status
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	if tracking != "" {
		updates["tracking_number"] = tracking
	}
	switch target {
	case constants.OrderStatusDelivered:
		updates["actual_delivery"] = now
		if order.PaymentMethod == constants.PaymentMethodCOD {
			updates["payment_status"] = constants.PaymentStatusPaid
		}
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		affected, err := orderRepo.UpdateStatus(order.ID, observed, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			current, err := orderRepo.GetByID(order.ID)
			if err != nil {
				return err
			}
			latest := observed
			if current != nil {
				latest = current.Status
			}
			return &TransitionError{Current: latest, Requested: target}
		}
		if target != constants.OrderStatusCancelled {
			return nil
		}
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return err
		}
		logger.Errorw("order_status_update_failed",
			"order_id", order.ID,
			"from_status", observed,
			"to_status", target,
			"error", err,
		)
		return ErrOrderUpdateFailed
	}

	order.Status = target
	order.UpdatedAt = now
	if tracking != "" {
		order.TrackingNumber = tracking
	}
	switch target {
	case constants.OrderStatusDelivered:
		order.ActualDelivery = &now
		if order.PaymentMethod == constants.PaymentMethodCOD {
			order.PaymentStatus = constants.PaymentStatusPaid
		}
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
		ids := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ProductID)
		}
		invalidateProductCache(ids...)
	}
	s.record(target)
	s.enqueueStatusNotify(order.ID, target)
	return nil
}

func (s *OrderService) enqueueStatusNotify(orderID uint, status string) {
	err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{OrderID: orderID, Status: status})
	if err != nil {
		logger.Warnw("order_enqueue_notify_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func orderFilter(query OrderListQuery) (repository.OrderListFilter, error) {
	page, limit, err := normalizePage(query.Page, query.Limit, constants.DefaultOrderPageSize, constants.MaxProductPageSize)
	if err != nil {
		return repository.OrderListFilter{}, err
	}
	status := normalizeOrderStatus(query.Status)
	if status != "" && !isKnownOrderStatus(status) {
		return repository.OrderListFilter{}, models.NewFieldError("status", "Invalid status")
	}
	return repository.OrderListFilter{Page: page, PageSize: limit, Status: status}, nil
}
