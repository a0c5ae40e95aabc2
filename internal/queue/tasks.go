package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/artisanhub/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	TaskProductLowStock   = constants.TaskProductLowStock
)

const taskTimeout = 30 * time.Second

// OrderStatusNotifyPayload an order reached Status
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// LowStockPayload stock left right after a checkout decrement
type LowStockPayload struct {
	ProductID uint `json:"product_id"`
	Stock     int  `json:"stock"`
}

// per-type queue and retry budget
var taskOptions = map[string][]asynq.Option{
	TaskOrderStatusNotify: {asynq.Queue(DefaultQueue), asynq.MaxRetry(5), asynq.Timeout(taskTimeout)},
	TaskProductLowStock:   {asynq.Queue(CriticalQueue), asynq.MaxRetry(3), asynq.Timeout(taskTimeout)},
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, body, taskOptions[taskType]...), nil
}

// Decode unmarshals a task body into dest. A body that does not parse never
// will, so the error carries asynq.SkipRetry.
func Decode(task *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		return fmt.Errorf("decode %s payload: %w", task.Type(), errors.Join(err, asynq.SkipRetry))
	}
	return nil
}
