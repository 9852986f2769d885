package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zayura-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

type fakeStore struct {
	mu      sync.Mutex
	subs    map[uuid.UUID][]model.PushSubscription
	listErr error
	deleted []string
}

func (f *fakeStore) ListSubscriptionsForResident(ctx context.Context, residentID uuid.UUID) ([]model.PushSubscription, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subs[residentID], nil
}

func (f *fakeStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, endpoint)
	return nil
}

func (f *fakeStore) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func response(code int) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(bytes.NewBufferString(""))}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, &fakeStore{}, &webpush.Options{})
	residentID := uuid.New()

	assert.True(t, wp.Dispatch(Job{ResidentID: residentID, Title: "x"}))

	select {
	case job := <-wp.jobs:
		assert.Equal(t, residentID, job.ResidentID)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchDropsWhenFull(t *testing.T) {
	wp := NewWorkerPool(1, &fakeStore{}, &webpush.Options{})
	for i := 0; i < cap(wp.jobs); i++ {
		require.True(t, wp.Dispatch(Job{Title: "x"}))
	}
	for i := 0; i < 5; i++ {
		assert.False(t, wp.Dispatch(Job{Title: "x"}))
	}
	assert.Len(t, wp.jobs, cap(wp.jobs))
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	residentID := uuid.New()
	store := &fakeStore{subs: map[uuid.UUID][]model.PushSubscription{
		residentID: {{Endpoint: "https://example.com/push", P256DH: "test_p256dh", Auth: "test_auth"}},
	}}
	wp := NewWorkerPool(1, store, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	t.Run("sends notification for one subscription", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				defer wg.Done()
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				assert.Equal(t, "test_p256dh", sub.Keys.P256dh)

				var msg map[string]string
				assert.NoError(t, json.Unmarshal(payload, &msg))
				assert.Equal(t, "Laundry siap diambil", msg["title"])
				assert.Contains(t, msg["body"], "Budi")
				return response(http.StatusCreated), nil
			},
		}

		wp.Dispatch(LaundryReady(residentID, "Budi", 2.5))
		wg.Wait()
	})

	t.Run("deletes expired subscription", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				wg.Done()
				return response(http.StatusGone), nil
			},
		}

		wp.Dispatch(InvoiceDue(residentID, "Budi", "Januari 2025", "Rp 1.500.000"))
		wg.Wait()

		require.Eventually(t, func() bool {
			return len(store.Deleted()) == 1
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, "https://example.com/push", store.Deleted()[0])
	})
}

func TestWorkerPool_NoSubscriptionsSendsNothing(t *testing.T) {
	store := &fakeStore{listErr: errors.New("db down")}
	wp := NewWorkerPool(1, store, &webpush.Options{})
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			t.Fatal("sender must not be called")
			return nil, nil
		},
	}

	wp.sendNotificationsForResident(context.Background(), Job{ResidentID: uuid.New()})
	store.listErr = nil
	wp.sendNotificationsForResident(context.Background(), Job{ResidentID: uuid.New()})
}
