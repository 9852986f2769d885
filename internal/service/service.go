// Package service holds the boarding-house operations behind the HTTP API.
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"zayura-backend/config"
	"zayura-backend/internal/auth"
	"zayura-backend/internal/billing"
	"zayura-backend/internal/notification"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/store"
)

var (
	// ErrValidation wraps every input problem; the message carries the detail.
	ErrValidation        = errors.New("validation failed")
	ErrInvoicePaid       = errors.New("invoice already paid")
	ErrPayrollPaid       = errors.New("salary already paid")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrInvalidTransition = errors.New("invalid status transition")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Notifier delivers push notifications to residents. Dispatch reports
// whether the job was queued.
type Notifier interface {
	Dispatch(job notification.Job) bool
}

// Service implements the dashboard operations on top of a Store.
type Service struct {
	store    store.Store
	billing  config.BillingConfig
	rates    billing.Rates
	issuer   *auth.Issuer
	notifier Notifier
	now      func() time.Time
}

// New creates a Service. notifier may be nil when push is disabled.
func New(st store.Store, cfg config.BillingConfig, issuer *auth.Issuer, notifier Notifier) *Service {
	return &Service{
		store:    st,
		billing:  cfg,
		rates:    billing.NewRates(cfg.PackageRates, cfg.PackageMonths),
		issuer:   issuer,
		notifier: notifier,
		now:      time.Now,
	}
}

// Store returns the underlying store.
func (s *Service) Store() store.Store {
	return s.store
}

// Today is the current calendar date in the business timezone.
func (s *Service) Today() time.Time {
	return parse.Today(s.now(), s.billing.Location)
}

// dateOr returns d truncated to a calendar date, or today when d is zero.
func (s *Service) dateOr(d time.Time) time.Time {
	if d.IsZero() {
		return s.Today()
	}
	return parse.DateOf(d)
}

func (s *Service) notify(job notification.Job) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.Dispatch(job) {
		log.Printf("Notification %q for resident %s was not queued", job.Title, job.ResidentID)
	}
}
