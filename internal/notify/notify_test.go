package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"riseadvertising/internal/model"
)

func samplePayload() QuotePayload {
	return PayloadFromQuote(&model.QuoteRequest{
		ID:               uuid.New(),
		Name:             "Abebe Kebede",
		Email:            "abebe@example.com",
		Phone:            "+251911000000",
		Services:         []string{"Banners", "Stickers"},
		Width:            "2m",
		Height:           "1m",
		DeliveryLocation: "Bole, Addis Ababa",
		Message:          "Need banners for a product launch",
		Status:           model.QuoteStatusNew,
		CreatedAt:        time.Now(),
	})
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []QuotePayload
	err   error
	done  chan struct{}
}

func (r *recordingNotifier) NotifyNewQuote(_ context.Context, p QuotePayload) error {
	r.mu.Lock()
	r.calls = append(r.calls, p)
	r.mu.Unlock()
	if r.done != nil {
		r.done <- struct{}{}
	}
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail map[string]error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail[to]; err != nil {
		return err
	}
	m.sent = append(m.sent, to+"|"+subject+"|"+html)
	return nil
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := &recordingNotifier{}
	d := NewDispatcher(n, 10)
	for i := 0; i < 5; i++ {
		d.Dispatch(samplePayload())
	}
	d.Close()

	assert.Equal(t, 5, n.count())
}

func TestDispatcherNeverBlocksWhenQueueIsFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	n := &recordingNotifier{done: make(chan struct{}, 16)}
	blocking := notifierFunc(func(ctx context.Context, p QuotePayload) error {
		<-release
		return n.NotifyNewQuote(ctx, p)
	})

	d := NewDispatcher(blocking, 1)
	returned := make(chan struct{})
	go func() {
		for i := 0; i < 4; i++ {
			d.Dispatch(samplePayload())
		}
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch blocked with a full queue")
	}

	close(release)
	d.Close()
	assert.Equal(t, 4, n.count())
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := &recordingNotifier{err: errors.New("smtp down")}
	d := NewDispatcher(n, 1)
	d.Dispatch(samplePayload())
	d.Close()

	assert.Equal(t, 1, n.count())
	// Dispatch after Close is dropped rather than panicking.
	d.Dispatch(samplePayload())
	assert.Equal(t, 1, n.count())
}

type notifierFunc func(ctx context.Context, p QuotePayload) error

func (f notifierFunc) NotifyNewQuote(ctx context.Context, p QuotePayload) error { return f(ctx, p) }

func TestWebhookNotifier(t *testing.T) {
	var got QuotePayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := samplePayload()
	err := NewWebhookNotifier(srv.URL, "secret").NotifyNewQuote(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, []string{"Banners", "Stickers"}, got.Services)
	assert.Equal(t, "new", got.Status)
}

func TestWebhookNotifierNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, "").NotifyNewQuote(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestEmailNotifierSendsBothEmails(t *testing.T) {
	m := &fakeMailer{}
	err := NewEmailNotifier(m, "sales@rise.example").NotifyNewQuote(context.Background(), samplePayload())
	require.NoError(t, err)
	require.Len(t, m.sent, 2)

	assert.True(t, strings.HasPrefix(m.sent[0], "sales@rise.example|New quote request from Abebe Kebede|"))
	assert.Contains(t, m.sent[0], "Banners, Stickers")
	assert.Contains(t, m.sent[0], "2m x 1m")
	assert.True(t, strings.HasPrefix(m.sent[1], "abebe@example.com|We received your quote request|"))
}

func TestEmailNotifierReportsEitherFailure(t *testing.T) {
	m := &fakeMailer{fail: map[string]error{"abebe@example.com": errors.New("mailbox unavailable")}}
	err := NewEmailNotifier(m, "sales@rise.example").NotifyNewQuote(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer e-mail")
	assert.Len(t, m.sent, 1)
}

func TestMultiJoinsErrors(t *testing.T) {
	ok := &recordingNotifier{}
	bad := &recordingNotifier{err: errors.New("down")}
	err := Multi{bad, ok}.NotifyNewQuote(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Equal(t, 1, ok.count())
}
