package worker

import (
	"context"
	"errors"

	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/provider"
	"github.com/artisanhub/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer asynq task handlers
type Consumer struct {
	*provider.Container
}

// NewConsumer builds the consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task types to handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskProductLowStock, c.handleLowStock)
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := queue.Decode(task, &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_status_notify_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	written, err := c.NotificationService.NotifyOrderStatus(payload.OrderID, payload.Status)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			logger.Warnw("worker_order_status_notify_skip_invalid_status",
				"order_id", payload.OrderID,
				"status", payload.Status,
			)
			return nil
		}
		logger.Warnw("worker_order_status_notify_failed",
			"order_id", payload.OrderID,
			"status", payload.Status,
			"error", err,
		)
		return err
	}
	if written == 0 {
		logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
	}
	return nil
}

func (c *Consumer) handleLowStock(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockPayload
	if err := queue.Decode(task, &payload); err != nil {
		logger.Warnw("worker_low_stock_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_low_stock_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_low_stock_skip_service_nil", "product_id", payload.ProductID)
		return nil
	}
	threshold := 0
	if c.Config != nil {
		threshold = c.Config.Order.LowStockThreshold
	}
	sent, err := c.NotificationService.NotifyLowStock(payload.ProductID, threshold)
	if err != nil {
		logger.Warnw("worker_low_stock_failed",
			"product_id", payload.ProductID,
			"stock", payload.Stock,
			"error", err,
		)
		return err
	}
	if !sent {
		logger.Debugw("worker_low_stock_skip_restocked", "product_id", payload.ProductID, "stock", payload.Stock)
	}
	return nil
}
