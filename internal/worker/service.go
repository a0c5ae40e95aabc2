package worker

import (
	"context"
	"errors"
	"time"

	"github.com/artisanhub/internal/config"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/queue"

	"github.com/hibiken/asynq"
)

// Service runs the notification consumers against the task queue
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService fails when the queue is disabled
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	redisOpt, serverCfg := queue.ServerOptions(cfg)
	mux := asynq.NewServeMux()
	var observe taskObserver
	if consumer.Container != nil {
		observe = consumer.Metrics
	}
	mux.Use(timeTask(observe))
	consumer.Register(mux)
	return &Service{server: asynq.NewServer(redisOpt, serverCfg), mux: mux}, nil
}

func (s *Service) Name() string { return "worker" }

// Start processes tasks in the background until ctx is done
func (s *Service) Start(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop lets in-flight tasks finish, bounded by ctx
func (s *Service) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.server.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type taskObserver interface {
	ObserveTask(task string, elapsed time.Duration, err error)
}

func timeTask(observe taskObserver) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			start := time.Now()
			err := next.ProcessTask(ctx, task)
			elapsed := time.Since(start)
			if observe != nil {
				observe.ObserveTask(task.Type(), elapsed, err)
			}
			logger.Debugw("worker_task_processed",
				"type", task.Type(),
				"duration_ms", elapsed.Milliseconds(),
				"failed", err != nil,
			)
			return err
		})
	}
}
