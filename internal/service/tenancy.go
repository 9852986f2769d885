package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"zayura-backend/internal/billing"
	"zayura-backend/internal/model"
	"zayura-backend/internal/occupancy"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/store"
)

// CheckInRequest registers a new resident into a room.
type CheckInRequest struct {
	FullName         string    `json:"full_name" binding:"required"`
	PhoneNumber      string    `json:"phone_number" binding:"required"`
	KTPNumber        string    `json:"ktp_number"`
	Profession       string    `json:"profession"`
	EmergencyContact string    `json:"emergency_contact"`
	RoomID           uuid.UUID `json:"room_id" binding:"required"`
	StartDate        time.Time `json:"-"`
	Months           int       `json:"duration_months"`
}

// CheckInResult is everything a check-in created.
type CheckInResult struct {
	Resident model.Resident  `json:"resident"`
	Tenancy  model.Tenancy   `json:"tenancy"`
	Invoices []model.Invoice `json:"invoices"`
}

// CheckIn creates the resident, the tenancy and its invoices and marks the
// room occupied, all in one database transaction.
func (s *Service) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.FullName == "" || req.PhoneNumber == "" {
		return nil, invalid("full name and phone number are required")
	}
	if req.RoomID == uuid.Nil {
		return nil, invalid("room is required")
	}
	if req.Months <= 0 {
		req.Months = 1
	}
	start := s.dateOr(req.StartDate)

	var res CheckInResult
	err := s.store.InTx(ctx, func(tx store.Store) error {
		room, err := tx.GetRoom(ctx, req.RoomID)
		if err != nil {
			return err
		}
		n, err := tx.CountActiveTenancies(ctx, room.ID)
		if err != nil {
			return err
		}
		// Same rule as the room list: a stale stored occupied status does not block.
		if occupancy.Status(*room, map[uuid.UUID]bool{room.ID: n > 0}) != model.RoomAvailable {
			return fmt.Errorf("room %s: %w", room.RoomNumber, ErrRoomUnavailable)
		}

		res.Resident = model.Resident{
			FullName:         req.FullName,
			PhoneNumber:      req.PhoneNumber,
			KTPNumber:        strings.TrimSpace(req.KTPNumber),
			Profession:       strings.TrimSpace(req.Profession),
			EmergencyContact: strings.TrimSpace(req.EmergencyContact),
		}
		if err := tx.CreateResident(ctx, &res.Resident); err != nil {
			return err
		}

		res.Tenancy = model.Tenancy{
			RoomID:          room.ID,
			ResidentID:      res.Resident.ID,
			StartDate:       start,
			ExpectedEndDate: start.AddDate(0, req.Months, 0),
			Status:          model.TenancyActive,
		}
		if err := tx.CreateTenancy(ctx, &res.Tenancy); err != nil {
			return err
		}
		if err := tx.UpdateRoomStatus(ctx, room.ID, model.RoomOccupied); err != nil {
			return err
		}

		periods := billing.Generate(start, req.Months, room.Type, room.PricePerMonth, s.rates)
		res.Invoices = billing.Invoices(res.Tenancy, periods)
		return tx.CreateInvoices(ctx, res.Invoices)
	})
	if err != nil {
		return nil, fmt.Errorf("check-in failed: %w", err)
	}
	return &res, nil
}

// ExtendRequest prolongs an active tenancy.
type ExtendRequest struct {
	Months    int       `json:"months" binding:"required"`
	StartDate time.Time `json:"-"`
}

// Extend bills further months for a tenancy and moves its expected end date.
// Billing resumes where the latest invoice ends unless a start date is given.
func (s *Service) Extend(ctx context.Context, tenancyID uuid.UUID, req ExtendRequest) ([]model.Invoice, error) {
	if req.Months <= 0 {
		return nil, invalid("months must be positive")
	}

	var invoices []model.Invoice
	err := s.store.InTx(ctx, func(tx store.Store) error {
		ten, err := tx.GetTenancy(ctx, tenancyID)
		if err != nil {
			return err
		}
		if ten.Status != model.TenancyActive {
			return fmt.Errorf("tenancy %s is %s: %w", ten.ID, ten.Status, ErrInvalidTransition)
		}
		room, err := tx.GetRoom(ctx, ten.RoomID)
		if err != nil {
			return err
		}

		var start time.Time
		if !req.StartDate.IsZero() {
			start = parse.DateOf(req.StartDate)
		} else {
			existing, err := tx.ListInvoices(ctx, store.InvoiceFilter{TenancyID: ten.ID})
			if err != nil {
				return err
			}
			start = billing.NextStart(ten.StartDate, existing)
		}

		if err := tx.UpdateTenancyEndDate(ctx, ten.ID, start.AddDate(0, req.Months, 0)); err != nil {
			return err
		}
		periods := billing.Generate(start, req.Months, room.Type, room.PricePerMonth, s.rates)
		invoices = billing.Invoices(*ten, periods)
		return tx.CreateInvoices(ctx, invoices)
	})
	if err != nil {
		return nil, fmt.Errorf("extend failed: %w", err)
	}
	return invoices, nil
}

// Checkout completes a tenancy and frees its room.
func (s *Service) Checkout(ctx context.Context, tenancyID uuid.UUID) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		ten, err := tx.GetTenancy(ctx, tenancyID)
		if err != nil {
			return err
		}
		if ten.Status != model.TenancyActive {
			return fmt.Errorf("tenancy %s is %s: %w", ten.ID, ten.Status, ErrInvalidTransition)
		}
		if err := tx.UpdateTenancyStatus(ctx, ten.ID, model.TenancyCompleted); err != nil {
			return err
		}
		return tx.UpdateRoomStatus(ctx, ten.RoomID, model.RoomAvailable)
	})
}

// DeleteTenancy removes a completed tenancy from history along with its invoices.
func (s *Service) DeleteTenancy(ctx context.Context, tenancyID uuid.UUID) error {
	ten, err := s.store.GetTenancy(ctx, tenancyID)
	if err != nil {
		return err
	}
	if ten.Status != model.TenancyCompleted {
		return fmt.Errorf("tenancy %s must be checked out before deletion: %w", ten.ID, ErrInvalidTransition)
	}
	return s.store.DeleteTenancy(ctx, ten.ID)
}

// TenancyView is a tenancy joined with its resident and room for listing.
type TenancyView struct {
	model.Tenancy
	ResidentName string         `json:"resident_name"`
	PhoneNumber  string         `json:"phone_number"`
	RoomNumber   string         `json:"room_number"`
	RoomType     model.RoomType `json:"room_type"`
	Floor        int            `json:"floor"`
	HasUnpaid    bool           `json:"has_unpaid"` // any unpaid invoice of the resident
}

// ListTenancies returns tenancy views filtered by status and a search over
// resident name and room number.
func (s *Service) ListTenancies(ctx context.Context, status model.TenancyStatus, search string) ([]TenancyView, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rooms := make(map[uuid.UUID]model.Room, len(snap.Rooms))
	for _, r := range snap.Rooms {
		rooms[r.ID] = r
	}
	residents := make(map[uuid.UUID]model.Resident, len(snap.Residents))
	for _, r := range snap.Residents {
		residents[r.ID] = r
	}
	// Keyed by resident: a returning resident still owes for an earlier stay.
	unpaid := make(map[uuid.UUID]bool)
	for _, inv := range snap.Invoices {
		if inv.Status == model.InvoiceUnpaid {
			unpaid[inv.ResidentID] = true
		}
	}

	search = strings.ToLower(strings.TrimSpace(search))
	views := []TenancyView{}
	for _, t := range snap.Tenancies {
		if status != "" && t.Status != status {
			continue
		}
		res, room := residents[t.ResidentID], rooms[t.RoomID]
		if search != "" &&
			!strings.Contains(strings.ToLower(res.FullName), search) &&
			!strings.Contains(strings.ToLower(room.RoomNumber), search) {
			continue
		}
		views = append(views, TenancyView{
			Tenancy:      t,
			ResidentName: res.FullName,
			PhoneNumber:  res.PhoneNumber,
			RoomNumber:   room.RoomNumber,
			RoomType:     room.Type,
			Floor:        room.Floor,
			HasUnpaid:    unpaid[t.ResidentID],
		})
	}
	return views, nil
}

// ResidentInvoices lists a resident's invoices, earliest due first.
func (s *Service) ResidentInvoices(ctx context.Context, residentID uuid.UUID) ([]model.Invoice, error) {
	if _, err := s.store.GetResident(ctx, residentID); err != nil {
		return nil, err
	}
	invoices, err := s.store.ListInvoices(ctx, store.InvoiceFilter{ResidentID: residentID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].DueDate.Before(invoices[j].DueDate)
	})
	return invoices, nil
}

// InvoiceTransaction returns the ledger entry that settled an invoice.
func (s *Service) InvoiceTransaction(ctx context.Context, invoiceID uuid.UUID) (*model.Transaction, error) {
	return s.store.FindTransactionByInvoice(ctx, invoiceID)
}

// PayInvoiceRequest settles an invoice.
type PayInvoiceRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method" binding:"required"`
	Date          time.Time           `json:"-"`
	ProofImage    string              `json:"proof_image"`
}

// PayInvoice records the rent income and marks the invoice paid in one
// transaction. The proof image is only kept for transfers.
func (s *Service) PayInvoice(ctx context.Context, invoiceID uuid.UUID, req PayInvoiceRequest) (*model.Transaction, error) {
	if req.PaymentMethod != model.PaymentTransfer && req.PaymentMethod != model.PaymentCash {
		return nil, invalid("unknown payment method %q", req.PaymentMethod)
	}
	date := s.dateOr(req.Date)

	var entry model.Transaction
	err := s.store.InTx(ctx, func(tx store.Store) error {
		inv, err := tx.GetInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status == model.InvoicePaid {
			return fmt.Errorf("invoice %s: %w", inv.ID, ErrInvoicePaid)
		}

		name := "Unknown"
		if res, err := tx.GetResident(ctx, inv.ResidentID); err == nil {
			name = res.FullName
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		invID := inv.ID
		entry = model.Transaction{
			Type:            model.Income,
			Category:        model.CategoryRent,
			Amount:          inv.Amount,
			TransactionDate: date,
			Description:     fmt.Sprintf("Pelunasan: %s - %s (%s)", inv.Description, inv.MonthYear, name),
			PaymentMethod:   req.PaymentMethod,
			InvoiceID:       &invID,
		}
		if req.PaymentMethod == model.PaymentTransfer {
			entry.ProofImage = req.ProofImage
		}
		if err := tx.CreateTransaction(ctx, &entry); err != nil {
			return err
		}
		return tx.MarkInvoicePaid(ctx, inv.ID)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
