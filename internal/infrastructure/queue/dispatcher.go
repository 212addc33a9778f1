// Package queue runs relay deliveries outside the request that accepted them
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"heritage-site/internal/infrastructure/relay"
	"heritage-site/internal/shared"
	"heritage-site/pkg/logger"
)

// Dispatcher hands a submission off for delivery and returns immediately.
// Delivery outcome is visible only in the logs.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub relay.Submission)
}

// logFailure reports a lost submission outside production
func logFailure(verbose bool, sub relay.Submission, err error) {
	if !verbose {
		return
	}
	logger.Error(fmt.Sprintf("relay %s submission %s failed", sub.Kind, sub.ID), err)
}

// =====================================================
// INLINE
// =====================================================

// InlineDispatcher delivers on a detached goroutine bounded by timeout
type InlineDispatcher struct {
	relay   relay.Relay
	timeout time.Duration
	verbose bool
	wg      sync.WaitGroup
}

func NewInlineDispatcher(r relay.Relay, timeout time.Duration, verbose bool) *InlineDispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &InlineDispatcher{relay: r, timeout: timeout, verbose: verbose}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, sub relay.Submission) {
	// the request context ends with the response, the delivery must not
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.relay.Send(ctx, sub); err != nil {
			logFailure(d.verbose, sub, err)
			return
		}
		logger.Debug(fmt.Sprintf("relayed %s submission %s", sub.Kind, sub.ID))
	}()
}

// Wait blocks until every in-flight delivery has finished
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}

// =====================================================
// ASYNQ
// =====================================================

// Enqueuer is the part of *asynq.Client the dispatcher uses
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqDispatcher enqueues submissions for cmd/worker. Tasks are never retried.
type AsynqDispatcher struct {
	client  Enqueuer
	timeout time.Duration
	verbose bool
}

func NewAsynqDispatcher(client Enqueuer, timeout time.Duration, verbose bool) *AsynqDispatcher {
	return &AsynqDispatcher{client: client, timeout: timeout, verbose: verbose}
}

// NewRelayTask builds the task carrying sub
func NewRelayTask(sub relay.Submission) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.RelayPayload{
		ID:     sub.ID,
		Kind:   sub.Kind,
		Fields: sub.Fields,
	})
	if err != nil {
		return nil, fmt.Errorf("encode relay payload: %w", err)
	}
	return asynq.NewTask(shared.TypeRelayFormSubmission, payload), nil
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, sub relay.Submission) {
	task, err := NewRelayTask(sub)
	if err != nil {
		logFailure(d.verbose, sub, err)
		return
	}

	opts := []asynq.Option{
		asynq.Queue(shared.QueueRelay),
		asynq.MaxRetry(0),
	}
	if d.timeout > 0 {
		opts = append(opts, asynq.Timeout(d.timeout))
	}

	if _, err := d.client.EnqueueContext(context.WithoutCancel(ctx), task, opts...); err != nil {
		logFailure(d.verbose, sub, fmt.Errorf("enqueue: %w", err))
	}
}
