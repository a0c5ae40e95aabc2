package service

import (
	"fmt"
	"time"

	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/repository"
)

// NotificationService in-app notifications: written by the worker, read by their recipient
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
}

// NewNotificationService builds the notification service
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
	}
}

// NotificationListQuery listing parameters
type NotificationListQuery struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

// NotificationPage one page of notifications plus the unread badge count
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int64                 `json:"unread"`
	Pagination    Pagination            `json:"pagination"`
}

// List newest first
func (s *NotificationService) List(userID uint, query NotificationListQuery) (*NotificationPage, error) {
	page, limit, err := normalizePage(query.Page, query.Limit, constants.DefaultOrderPageSize, constants.MaxProductPageSize)
	if err != nil {
		return nil, err
	}
	items, total, err := s.notificationRepo.List(repository.NotificationListFilter{
		Page:       page,
		PageSize:   limit,
		UserID:     userID,
		UnreadOnly: query.UnreadOnly,
	})
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{
		Notifications: items,
		Unread:        unread,
		Pagination:    NewPagination(page, limit, total),
	}, nil
}

// MarkRead marks one of the user's notifications read; already-read ones are left as they are
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	affected, err := s.notificationRepo.MarkRead(notificationID, userID, time.Now())
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	// nothing updated: already read, or not the caller's
	notification, err := s.notificationRepo.GetByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil || notification.UserID != userID {
		return ErrNotificationNotFound
	}
	return nil
}

var orderStatusTitles = map[string]string{
	constants.OrderStatusPending:    "Order placed",
	constants.OrderStatusConfirmed:  "Order confirmed",
	constants.OrderStatusProcessing: "Order is being prepared",
	constants.OrderStatusShipped:    "Order shipped",
	constants.OrderStatusDelivered:  "Order delivered",
	constants.OrderStatusCancelled:  "Order cancelled",
}

// NotifyOrderStatus tells the customer about the order's status.
// A new order also notifies every artisan with a line in it.
// Returns the number of notifications written; a vanished order writes none.
func (s *NotificationService) NotifyOrderStatus(orderID uint, status string) (int, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, nil
	}
	status = normalizeOrderStatus(status)
	if status == "" {
		status = order.Status
	}
	title, ok := orderStatusTitles[status]
	if !ok {
		return 0, models.NewFieldError("status", "Invalid status")
	}

	ref := order.ID
	body := fmt.Sprintf("Your order %s is now %s.", order.OrderNumber, status)
	if status == constants.OrderStatusPending {
		body = fmt.Sprintf("We received your order %s for %s.", order.OrderNumber, order.TotalAmount)
	}
	if status == constants.OrderStatusShipped && order.TrackingNumber != "" {
		body = fmt.Sprintf("Your order %s is on its way. Tracking number: %s.", order.OrderNumber, order.TrackingNumber)
	}
	batch := []models.Notification{{
		UserID:  order.CustomerID,
		Kind:    constants.NotificationKindOrderStatus,
		Title:   title,
		Body:    body,
		OrderID: &ref,
	}}
	if status == constants.OrderStatusPending {
		for _, artisanID := range order.ArtisanIDs() {
			units := 0
			for _, item := range order.Items {
				if item.ArtisanID == artisanID {
					units += item.Quantity
				}
			}
			batch = append(batch, models.Notification{
				UserID:  artisanID,
				Kind:    constants.NotificationKindOrderStatus,
				Title:   "New order received",
				Body:    fmt.Sprintf("Order %s includes %d of your items.", order.OrderNumber, units),
				OrderID: &ref,
			})
		}
	}
	if err := s.notificationRepo.CreateBatch(batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// NotifyLowStock warns the product's artisan, using the stock level at delivery time.
// Nothing is written when the product is gone or was restocked above threshold.
func (s *NotificationService) NotifyLowStock(productID uint, threshold int) (bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil || product.Stock > threshold {
		return false, nil
	}
	ref := product.ID
	title := fmt.Sprintf("Low stock: %s", product.Title)
	body := fmt.Sprintf("Only %d left in stock.", product.Stock)
	if product.Stock == 0 {
		title = fmt.Sprintf("Out of stock: %s", product.Title)
		body = "This product can no longer be ordered until it is restocked."
	}
	err = s.notificationRepo.Create(&models.Notification{
		UserID:    product.ArtisanID,
		Kind:      constants.NotificationKindLowStock,
		Title:     title,
		Body:      body,
		ProductID: &ref,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
