// Package reminder periodically notifies residents about rent coming due.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"zayura-backend/config"
	"zayura-backend/internal/billing"
	"zayura-backend/internal/model"
	"zayura-backend/internal/notification"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/store"
)

// InvoiceStore is the slice of the store the reminder loop needs.
type InvoiceStore interface {
	ListInvoices(ctx context.Context, filter store.InvoiceFilter) ([]model.Invoice, error)
	GetResident(ctx context.Context, id uuid.UUID) (*model.Resident, error)
	MarkInvoiceReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Dispatcher queues push notifications and reports whether the job was accepted.
type Dispatcher interface {
	Dispatch(job notification.Job) bool
}

// Service scans unpaid invoices and reminds their residents once.
type Service struct {
	cfg        config.ReminderConfig
	loc        *time.Location
	store      InvoiceStore
	dispatcher Dispatcher
}

// NewService creates a reminder service.
func NewService(cfg config.ReminderConfig, loc *time.Location, st InvoiceStore, dispatcher Dispatcher) *Service {
	return &Service{cfg: cfg, loc: loc, store: st, dispatcher: dispatcher}
}

// Run starts the reminder loop and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Invoice reminders are disabled. Not starting.")
		return
	}
	if s.dispatcher == nil {
		log.Println("Invoice reminders need push notifications. Not starting.")
		return
	}
	log.Println("Starting invoice reminder service...")

	s.runCycle(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Invoice reminder service shutting down.")
			return
		case <-timer.C:
			s.runCycle(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	n, err := s.RunOnce(ctx, time.Now())
	if err != nil {
		log.Printf("Reminder cycle failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Reminder cycle finished: %d residents reminded", n)
	}
}

// RunOnce reminds every unpaid, not yet reminded invoice due within the lead
// window and returns how many were queued. Invoices whose reminder could not
// be queued are left unmarked.
func (s *Service) RunOnce(ctx context.Context, now time.Time) (int, error) {
	cutoff := parse.Today(now, s.loc).AddDate(0, 0, s.cfg.LeadDays)
	invoices, err := s.store.ListInvoices(ctx, store.InvoiceFilter{
		Status:         model.InvoiceUnpaid,
		DueBefore:      &cutoff,
		OnlyUnreminded: true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list due invoices: %w", err)
	}

	sent := 0
	for i, inv := range invoices {
		name := ""
		res, err := s.store.GetResident(ctx, inv.ResidentID)
		switch {
		case err == nil:
			name = res.FullName
		case errors.Is(err, store.ErrNotFound):
			log.Printf("Invoice %s has no resident; skipping reminder", inv.ID)
			continue
		default:
			return sent, err
		}

		if !s.dispatcher.Dispatch(notification.InvoiceDue(inv.ResidentID, name, inv.MonthYear, billing.FormatRupiah(inv.Amount))) {
			// Queue is full. The rest stay unreminded for the next cycle.
			log.Printf("Notification queue full; %d reminders deferred", len(invoices)-i)
			break
		}
		if err := s.store.MarkInvoiceReminded(ctx, inv.ID, now.UTC()); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
