package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/infrastructure/relay"
	"heritage-site/internal/shared"
)

type relayFunc func(ctx context.Context, sub relay.Submission) error

func (f relayFunc) Send(ctx context.Context, sub relay.Submission) error { return f(ctx, sub) }

func task(t *testing.T, p shared.RelayPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeRelayFormSubmission, b)
}

func TestRelayHandler(t *testing.T) {
	var got relay.Submission
	h := RelayHandler(relayFunc(func(ctx context.Context, sub relay.Submission) error {
		got = sub
		return nil
	}), true)

	err := h(context.Background(), task(t, shared.RelayPayload{ID: "s1", Kind: shared.FormNewsletter, Fields: map[string]string{"email": "a@b.co"}}))
	require.NoError(t, err)
	assert.Equal(t, shared.FormNewsletter, got.Kind)
	assert.Equal(t, "a@b.co", got.Fields["email"])
}

func TestRelayHandler_FailuresSkipRetry(t *testing.T) {
	h := RelayHandler(relayFunc(func(context.Context, relay.Submission) error {
		return errors.New("relay down")
	}), false)

	err := h(context.Background(), task(t, shared.RelayPayload{ID: "s2", Kind: shared.FormContact}))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h(context.Background(), asynq.NewTask(shared.TypeRelayFormSubmission, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
