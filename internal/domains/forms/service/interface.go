package service

import (
	"context"

	"heritage-site/internal/domains/forms/model"
)

// ServiceInterface accepts validated submissions. None of the methods report
// delivery failures: once a request validates, the caller is told it worked.
type ServiceInterface interface {
	// SubmitContact hands the submission to the dispatcher and returns its id
	SubmitContact(ctx context.Context, req model.ContactRequest) string
	SubscribeNewsletter(ctx context.Context, req model.NewsletterRequest) string

	// Unsubscribe calls every configured mailing-list provider in turn
	Unsubscribe(ctx context.Context, req model.UnsubscribeRequest)
}
