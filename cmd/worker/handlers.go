package main

import (
	"context"

	"github.com/hibiken/asynq"

	"heritage-site/internal/config"
	"heritage-site/internal/infrastructure/queue/handlers"
	"heritage-site/internal/shared"
	"heritage-site/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	relaySubmission func(ctx context.Context, t *asynq.Task) error
}

// initializeHandlers builds the relay router the API would use inline
func initializeHandlers(cfg *config.Config) *HandlerRegistry {
	router := container.NewRelayRouter(cfg)

	return &HandlerRegistry{
		relaySubmission: handlers.RelayHandler(router, !cfg.App.IsProduction()),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeRelayFormSubmission, h.relaySubmission)
}
