package service

import (
	"context"

	"github.com/google/uuid"

	"heritage-site/internal/domains/forms/model"
	"heritage-site/internal/infrastructure/queue"
	"heritage-site/internal/infrastructure/relay"
	"heritage-site/internal/shared"
	"heritage-site/pkg/logger"
)

type formsService struct {
	dispatcher queue.Dispatcher
	providers  []relay.MailingListProvider
	verbose    bool // log upstream failures, off in production
}

func NewFormsService(d queue.Dispatcher, providers []relay.MailingListProvider, verbose bool) ServiceInterface {
	return &formsService{
		dispatcher: d,
		providers:  providers,
		verbose:    verbose,
	}
}

func (s *formsService) SubmitContact(ctx context.Context, req model.ContactRequest) string {
	return s.dispatch(ctx, shared.FormContact, req.Fields())
}

func (s *formsService) SubscribeNewsletter(ctx context.Context, req model.NewsletterRequest) string {
	return s.dispatch(ctx, shared.FormNewsletter, req.Fields())
}

func (s *formsService) dispatch(ctx context.Context, kind shared.FormKind, fields map[string]string) string {
	sub := relay.Submission{
		ID:     uuid.New().String(),
		Kind:   kind,
		Fields: fields,
	}
	s.dispatcher.Dispatch(ctx, sub)
	return sub.ID
}

func (s *formsService) Unsubscribe(ctx context.Context, req model.UnsubscribeRequest) {
	if len(s.providers) == 0 && s.verbose {
		logger.Warn("unsubscribe requested but no mailing-list provider is configured", nil)
		return
	}

	for _, p := range s.providers {
		if err := p.Unsubscribe(ctx, req.Email); err != nil {
			if s.verbose {
				logger.Error(p.Name()+" unsubscribe failed", err)
			}
			continue
		}
		logger.Debug(p.Name() + " unsubscribe done")
	}
}
