package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"zayura-backend/internal/model"
	"zayura-backend/internal/occupancy"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/store"
)

// Snapshot loads every table with room status reconciled against tenancies.
func (s *Service) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if drift := occupancy.Drift(snap.Rooms, snap.Tenancies); len(drift) > 0 {
		log.Printf("%d rooms have a stored status that disagrees with their tenancies", len(drift))
	}
	snap.Rooms = occupancy.Sync(snap.Rooms, snap.Tenancies)
	return snap, nil
}

// Rooms lists rooms with their effective status.
func (s *Service) Rooms(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.store.ListTenancies(ctx, model.TenancyActive)
	if err != nil {
		return nil, err
	}
	return occupancy.Sync(rooms, active), nil
}

// Dashboard is the summary shown on the landing page.
type Dashboard struct {
	ActiveResidents    int                 `json:"active_residents"`
	AvailableRooms     int                 `json:"available_rooms"`
	TotalRooms         int                 `json:"total_rooms"`
	MonthlyIncome      int64               `json:"monthly_income"`
	MonthlyExpense     int64               `json:"monthly_expense"`
	LaundryInProcess   int                 `json:"laundry_in_process"`
	NetCash            int64               `json:"net_cash"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
}

// Dashboard aggregates the headline numbers for the month containing now.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	from, to := parse.MonthRange(today.Year(), today.Month())

	d := &Dashboard{TotalRooms: len(snap.Rooms), RecentTransactions: []model.Transaction{}}
	for _, t := range snap.Tenancies {
		if t.Status == model.TenancyActive {
			d.ActiveResidents++
		}
	}
	for _, r := range snap.Rooms {
		if r.Status == model.RoomAvailable {
			d.AvailableRooms++
		}
	}
	for _, l := range snap.Laundry {
		if l.Status == model.LaundryProcess {
			d.LaundryInProcess++
		}
	}

	// Transactions arrive newest first.
	for _, tx := range snap.Transactions {
		inMonth := !tx.TransactionDate.Before(from) && tx.TransactionDate.Before(to)
		switch tx.Type {
		case model.Income:
			d.NetCash += tx.Amount
			if inMonth {
				d.MonthlyIncome += tx.Amount
			}
		case model.Expense:
			d.NetCash -= tx.Amount
			if inMonth {
				d.MonthlyExpense += tx.Amount
			}
		}
	}
	for i := 0; i < len(snap.Transactions) && i < 5; i++ {
		d.RecentTransactions = append(d.RecentTransactions, snap.Transactions[i])
	}
	return d, nil
}

// CreateRoomRequest is the input to CreateRoom.
type CreateRoomRequest struct {
	RoomNumber    string         `json:"room_number" binding:"required"`
	Floor         int            `json:"floor"`
	Type          model.RoomType `json:"type" binding:"required"`
	PricePerMonth int64          `json:"price_per_month" binding:"required"`
}

// CreateRoom adds an available room. The floor is inferred from the room number when omitted.
func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*model.Room, error) {
	parsed, err := parse.RoomNumber(req.RoomNumber)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if !req.Type.Valid() {
		return nil, invalid("unknown room type %q", req.Type)
	}
	if req.PricePerMonth <= 0 {
		return nil, invalid("price per month must be positive")
	}

	room := &model.Room{
		RoomNumber:    parsed.Number,
		Floor:         req.Floor,
		Type:          req.Type,
		Status:        model.RoomAvailable,
		PricePerMonth: req.PricePerMonth,
	}
	if room.Floor <= 0 {
		room.Floor = parsed.Floor
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdateRoomStatus sets the stored status of a room.
func (s *Service) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status model.RoomStatus) error {
	if !status.Valid() {
		return invalid("unknown room status %q", status)
	}
	return s.store.UpdateRoomStatus(ctx, id, status)
}

// DeleteRoom removes a room nobody is living in.
func (s *Service) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	n, err := s.store.CountActiveTenancies(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("room %s has an active tenancy: %w", id, ErrRoomUnavailable)
	}
	return s.store.DeleteRoom(ctx, id)
}

// Residents lists every resident, optionally filtered by a name or phone substring.
func (s *Service) Residents(ctx context.Context, search string) ([]model.Resident, error) {
	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return residents, nil
	}
	out := residents[:0]
	for _, r := range residents {
		if strings.Contains(strings.ToLower(r.FullName), search) || strings.Contains(r.PhoneNumber, search) {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateResidentRequest replaces a resident's contact details.
type UpdateResidentRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
	KTPNumber        string `json:"ktp_number"`
	Profession       string `json:"profession"`
	EmergencyContact string `json:"emergency_contact"`
}

// UpdateResident edits the name, phone and optional identity fields of a resident.
func (s *Service) UpdateResident(ctx context.Context, id uuid.UUID, req UpdateResidentRequest) (*model.Resident, error) {
	res := &model.Resident{
		FullName:         strings.TrimSpace(req.FullName),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		KTPNumber:        strings.TrimSpace(req.KTPNumber),
		Profession:       strings.TrimSpace(req.Profession),
		EmergencyContact: strings.TrimSpace(req.EmergencyContact),
	}
	if res.FullName == "" || res.PhoneNumber == "" {
		return nil, invalid("full name and phone number are required")
	}
	res.ID = id
	if err := s.store.UpdateResident(ctx, res); err != nil {
		return nil, err
	}
	return s.store.GetResident(ctx, id)
}
