package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/shared"
)

type recorded struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// fakeUpstream records requests and answers from a path-keyed status table
func fakeUpstream(t *testing.T, statuses map[string]int, bodies map[string]string) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		key := r.Method + " " + r.URL.EscapedPath()
		mu.Lock()
		reqs = append(reqs, recorded{Method: r.Method, Path: r.URL.EscapedPath(), Header: r.Header.Clone(), Body: string(b)})
		mu.Unlock()

		status, ok := statuses[key]
		if !ok {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, bodies[key])
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

// ========================================
// FORM RELAY
// ========================================

func TestFormRelay_Send(t *testing.T) {
	srv, calls := fakeUpstream(t, nil, nil)
	r := NewFormRelay(srv.URL, "xyzabc", time.Second)

	err := r.Send(context.Background(), Submission{
		Kind:   shared.FormContact,
		Fields: map[string]string{"name": "Ana", "email": "ana@example.org", "message": "Hello"},
	})
	require.NoError(t, err)

	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, "/f/xyzabc", got[0].Path)
	assert.Equal(t, "application/json", got[0].Header.Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Ana","email":"ana@example.org","message":"Hello"}`, got[0].Body)
}

func TestFormRelay_UpstreamError(t *testing.T) {
	srv, _ := fakeUpstream(t, map[string]int{"POST /f/xyzabc": http.StatusUnprocessableEntity}, map[string]string{"POST /f/xyzabc": `{"error":"bad"}`})

	err := NewFormRelay(srv.URL, "xyzabc", time.Second).Send(context.Background(), Submission{Kind: shared.FormNewsletter})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
}

func TestRouter(t *testing.T) {
	srv, calls := fakeUpstream(t, nil, nil)
	router := NewRouter().
		Register(shared.FormNewsletter, NewFormRelay(srv.URL, "news", time.Second)).
		Register(shared.FormContact, nil)

	require.NoError(t, router.Send(context.Background(), Submission{Kind: shared.FormNewsletter}))
	assert.Equal(t, "/f/news", calls()[0].Path)

	err := router.Send(context.Background(), Submission{Kind: shared.FormContact})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// ========================================
// SMTP
// ========================================

func TestSMTPRelay_Send(t *testing.T) {
	r := NewSMTPRelay("mail.local", "2525", "noreply@site.org", "team@site.org")

	var gotAddr string
	var gotMsg []byte
	r.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		return nil
	}

	err := r.Send(context.Background(), Submission{
		Kind: shared.FormContact,
		Fields: map[string]string{
			"name": "Ana", "email": "ana@example.org\r\nBcc: victim@example.org",
			"subject": "Dig visit", "message": "Can we visit?",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "mail.local:2525", gotAddr)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: Dig visit\r\n")
	assert.Contains(t, msg, "message: Can we visit?")
	assert.NotContains(t, msg, "\r\nBcc:")
}

func TestSMTPRelay_Failure(t *testing.T) {
	r := NewSMTPRelay("mail.local", "2525", "a@b.c", "d@e.f")
	r.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }

	assert.Error(t, r.Send(context.Background(), Submission{Kind: shared.FormContact}))
}

// ========================================
// MAILING LISTS
// ========================================

func TestSubscriberHash(t *testing.T) {
	assert.Equal(t, SubscriberHash("urist.mcvankab@freddiesjokes.com"), SubscriberHash("  Urist.McVankab@FreddiesJokes.com "))
	assert.Len(t, SubscriberHash("a@b.c"), 32)
}

func TestMailchimp_Unsubscribe(t *testing.T) {
	hash := SubscriberHash("ana@example.org")
	srv, calls := fakeUpstream(t, nil, nil)
	m := NewMailchimp("key-us21", "", "list1", srv.URL, time.Second)

	require.NoError(t, m.Unsubscribe(context.Background(), "Ana@Example.org"))

	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPatch, got[0].Method)
	assert.Equal(t, "/3.0/lists/list1/members/"+hash, got[0].Path)
	assert.JSONEq(t, `{"status":"unsubscribed"}`, got[0].Body)
	user, pass, ok := (&http.Request{Header: got[0].Header}).BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "anystring", user)
	assert.Equal(t, "key-us21", pass)
}

func TestMailchimp_HostFromKey(t *testing.T) {
	m := NewMailchimp("abc123-us21", "", "l", "", time.Second)
	assert.Equal(t, "https://us21.api.mailchimp.com", m.baseURL)

	m = NewMailchimp("abc123-us21", "us5", "l", "", time.Second)
	assert.Equal(t, "https://us5.api.mailchimp.com", m.baseURL)
}

func TestMailchimp_UnknownMemberIsNoop(t *testing.T) {
	srv, _ := fakeUpstream(t, map[string]int{
		"PATCH /3.0/lists/l/members/" + SubscriberHash("x@y.z"): http.StatusNotFound,
	}, nil)

	assert.NoError(t, NewMailchimp("k", "", "l", srv.URL, time.Second).Unsubscribe(context.Background(), "x@y.z"))
}

func TestBrevo_LookupThenDelete(t *testing.T) {
	srv, calls := fakeUpstream(t,
		map[string]int{"DELETE /v3/contacts/42": http.StatusNoContent},
		map[string]string{"GET /v3/contacts/ana@example.org": `{"id":42,"email":"ana@example.org"}`},
	)
	b := NewBrevo("brevo-key", "", srv.URL, time.Second)

	require.NoError(t, b.Unsubscribe(context.Background(), "ana@example.org"))

	got := calls()
	require.Len(t, got, 2)
	assert.Equal(t, "GET", got[0].Method)
	assert.Equal(t, "brevo-key", got[0].Header.Get("api-key"))
	assert.Equal(t, "DELETE", got[1].Method)
	assert.Equal(t, "/v3/contacts/42", got[1].Path)
}

func TestBrevo_ListRemoval(t *testing.T) {
	srv, calls := fakeUpstream(t, nil,
		map[string]string{"GET /v3/contacts/ana@example.org": `{"id":7}`},
	)
	b := NewBrevo("k", "12", srv.URL, time.Second)

	require.NoError(t, b.Unsubscribe(context.Background(), "ana@example.org"))

	got := calls()
	require.Len(t, got, 2)
	assert.Equal(t, "/v3/contacts/lists/12/contacts/remove", got[1].Path)

	var body map[string][]int64
	require.NoError(t, json.Unmarshal([]byte(got[1].Body), &body))
	assert.Equal(t, []int64{7}, body["ids"])
}

func TestBrevo_UnknownContactIsNoop(t *testing.T) {
	srv, calls := fakeUpstream(t, map[string]int{"GET /v3/contacts/ghost@example.org": http.StatusNotFound}, nil)

	require.NoError(t, NewBrevo("k", "", srv.URL, time.Second).Unsubscribe(context.Background(), "ghost@example.org"))
	assert.Len(t, calls(), 1)
}

func TestBrevo_LookupFailure(t *testing.T) {
	srv, calls := fakeUpstream(t, map[string]int{"GET /v3/contacts/ana@example.org": http.StatusUnauthorized}, nil)

	err := NewBrevo("bad", "", srv.URL, time.Second).Unsubscribe(context.Background(), "ana@example.org")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.True(t, strings.Contains(se.Error(), "401"))
	assert.Len(t, calls(), 1)
}
