package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"

	"zayura-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// SubscriptionStore is the slice of the store the pool needs.
type SubscriptionStore interface {
	ListSubscriptionsForResident(ctx context.Context, residentID uuid.UUID) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// Job is one message for every device following a resident.
type Job struct {
	ResidentID uuid.UUID `json:"-"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	URL        string    `json:"url,omitempty"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Job
	store   SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, store SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Job, size*16),
		store:   store,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			log.Printf("Worker %d processing %q for resident %s", id, job.Title, job.ResidentID)
			wp.sendNotificationsForResident(ctx, job)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a job and reports whether it was accepted. When the queue
// is full the job is dropped so that request handlers never block on push
// delivery.
func (wp *WorkerPool) Dispatch(job Job) bool {
	select {
	case wp.jobs <- job:
		return true
	default:
		log.Printf("Notification queue full, dropping %q for resident %s", job.Title, job.ResidentID)
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Job {
	return wp.jobs
}

func (wp *WorkerPool) sendNotificationsForResident(ctx context.Context, job Job) {
	subscriptions, err := wp.store.ListSubscriptionsForResident(ctx, job.ResidentID)
	if err != nil {
		log.Printf("Error fetching subscriptions for resident %s: %v", job.ResidentID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("Error encoding notification for resident %s: %v", job.ResidentID, err)
		return
	}

	log.Printf("Sending %d notifications for resident %s", len(subscriptions), job.ResidentID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

// LaundryReady builds the message sent when an order is ready for pickup.
func LaundryReady(residentID uuid.UUID, residentName string, weightKg float64) Job {
	return Job{
		ResidentID: residentID,
		Title:      "Laundry siap diambil",
		Body:       fmt.Sprintf("Halo %s, laundry %.1f kg Anda sudah selesai.", residentName, weightKg),
	}
}

// InvoiceDue builds the reminder for an unpaid invoice.
func InvoiceDue(residentID uuid.UUID, residentName, monthYear, amount string) Job {
	return Job{
		ResidentID: residentID,
		Title:      "Tagihan jatuh tempo",
		Body:       fmt.Sprintf("Halo %s, tagihan %s sebesar %s belum dibayar.", residentName, monthYear, amount),
	}
}
