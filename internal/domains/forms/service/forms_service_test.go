package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/domains/forms/model"
	"heritage-site/internal/infrastructure/relay"
	"heritage-site/internal/shared"
)

type captureDispatcher struct {
	subs []relay.Submission
}

func (d *captureDispatcher) Dispatch(ctx context.Context, sub relay.Submission) {
	d.subs = append(d.subs, sub)
}

type mockProvider struct {
	mock.Mock
}

func (p *mockProvider) Name() string {
	return p.Called().String(0)
}

func (p *mockProvider) Unsubscribe(ctx context.Context, email string) error {
	return p.Called(ctx, email).Error(0)
}

func TestSubmitContact_Dispatches(t *testing.T) {
	d := &captureDispatcher{}
	svc := NewFormsService(d, nil, true)

	id := svc.SubmitContact(context.Background(), model.ContactRequest{
		Name: "Ana", Email: "ana@example.org", Message: "Hi", Subject: "Visit",
	})

	require.Len(t, d.subs, 1)
	assert.Equal(t, id, d.subs[0].ID)
	assert.Equal(t, shared.FormContact, d.subs[0].Kind)
	assert.Equal(t, "Visit", d.subs[0].Fields["subject"])
}

func TestSubscribeNewsletter_Dispatches(t *testing.T) {
	d := &captureDispatcher{}
	NewFormsService(d, nil, false).SubscribeNewsletter(context.Background(), model.NewsletterRequest{Email: "ana@example.org"})

	require.Len(t, d.subs, 1)
	assert.Equal(t, shared.FormNewsletter, d.subs[0].Kind)
	assert.Equal(t, map[string]string{"email": "ana@example.org"}, d.subs[0].Fields)
}

func TestUnsubscribe_TriesEveryProvider(t *testing.T) {
	ctx := context.Background()

	failing := &mockProvider{}
	failing.On("Name").Return("mailchimp").Maybe()
	failing.On("Unsubscribe", ctx, "ana@example.org").Return(errors.New("401")).Once()

	ok := &mockProvider{}
	ok.On("Name").Return("brevo").Maybe()
	ok.On("Unsubscribe", ctx, "ana@example.org").Return(nil).Once()

	svc := NewFormsService(&captureDispatcher{}, []relay.MailingListProvider{failing, ok}, true)
	svc.Unsubscribe(ctx, model.UnsubscribeRequest{Email: "ana@example.org", Token: "t"})

	failing.AssertExpectations(t)
	ok.AssertExpectations(t)
}

func TestUnsubscribe_NoProviders(t *testing.T) {
	svc := NewFormsService(&captureDispatcher{}, nil, true)
	assert.NotPanics(t, func() {
		svc.Unsubscribe(context.Background(), model.UnsubscribeRequest{Email: "a@b.co", Token: "t"})
	})
}
