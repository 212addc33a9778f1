package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"heritage-site/internal/infrastructure/relay"
	"heritage-site/internal/shared"
	"heritage-site/pkg/logger"
)

// RelayHandler delivers a queued form submission. Every failure ends the
// task: relays are best effort and never retried.
func RelayHandler(r relay.Relay, verbose bool) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.RelayPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("decode relay payload: %v: %w", err, asynq.SkipRetry)
		}

		sub := relay.Submission{ID: p.ID, Kind: p.Kind, Fields: p.Fields}
		if err := r.Send(ctx, sub); err != nil {
			if verbose {
				logger.Error(fmt.Sprintf("relay %s submission %s failed", p.Kind, p.ID), err)
			}
			return fmt.Errorf("relay %s: %v: %w", p.ID, err, asynq.SkipRetry)
		}

		logger.Info("submission relayed", map[string]interface{}{
			"id":   p.ID,
			"kind": p.Kind,
		})
		return nil
	}
}
