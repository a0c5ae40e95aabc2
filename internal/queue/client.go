package queue

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/constants"
	"github.com/artisanhub/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue customer and artisan order notifications
	DefaultQueue = constants.QueueDefault
	// CriticalQueue stock alerts
	CriticalQueue = constants.QueueCritical
)

// Client producer side of the task queue. A disabled client accepts tasks and drops them,
// so checkout never depends on redis being up.
type Client struct {
	asynq *asynq.Client
}

// NewClient disabled when cfg is nil or queue.enabled is false
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("queue port %d out of range", cfg.Port)
	}
	return &Client{asynq: asynq.NewClient(redisOpt(cfg))}, nil
}

func (c *Client) Enabled() bool {
	return c != nil && c.asynq != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.asynq.Close()
}

// EnqueueOrderStatusNotify tells the customer and artisans about a status change
func (c *Client) EnqueueOrderStatusNotify(payload OrderStatusNotifyPayload) error {
	return c.enqueue(TaskOrderStatusNotify, payload)
}

// EnqueueLowStock at most one alert per product inside the dedupe window
func (c *Client) EnqueueLowStock(payload LowStockPayload, dedupe time.Duration) error {
	var opts []asynq.Option
	if dedupe > 0 {
		opts = append(opts, asynq.Unique(dedupe))
	}
	err := c.enqueue(TaskProductLowStock, payload, opts...)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := newTask(taskType, payload)
	if err != nil {
		return err
	}
	info, err := c.asynq.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	logger.Debugw("queue_task_enqueued", "type", taskType, "task_id", info.ID, "queue", info.Queue)
	return nil
}

// ServerOptions redis connection and consumer settings for the worker
func ServerOptions(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 10
	queues := map[string]int{DefaultQueue: 3, CriticalQueue: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return redisOpt(cfg), asynq.Config{
		Concurrency:     concurrency,
		Queues:          queues,
		ShutdownTimeout: 10 * time.Second,
		Logger:          logger.S(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			logger.Warnw("queue_task_failed", "type", task.Type(), "retried", retried, "error", err)
		}),
	}
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	var opt asynq.RedisClientOpt
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}
