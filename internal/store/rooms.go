package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zayura-backend/internal/model"
)

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return first[model.Room](ctx, s.db, id, "room")
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room %q: %w", room.RoomNumber, err)
	}
	return nil
}

func (s *gormStore) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status model.RoomStatus) error {
	return updateColumns(ctx, s.db, &model.Room{}, id, "room", map[string]any{"status": status})
}

func (s *gormStore) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, s.db, &model.Room{}, id, "room")
}

func (s *gormStore) ListResidents(ctx context.Context) ([]model.Resident, error) {
	var residents []model.Resident
	if err := s.db.WithContext(ctx).Order("full_name").Find(&residents).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	return residents, nil
}

func (s *gormStore) GetResident(ctx context.Context, id uuid.UUID) (*model.Resident, error) {
	return first[model.Resident](ctx, s.db, id, "resident")
}

func (s *gormStore) CreateResident(ctx context.Context, resident *model.Resident) error {
	if err := s.db.WithContext(ctx).Create(resident).Error; err != nil {
		return fmt.Errorf("failed to create resident %q: %w", resident.FullName, err)
	}
	return nil
}

func (s *gormStore) UpdateResident(ctx context.Context, resident *model.Resident) error {
	return updateColumns(ctx, s.db, &model.Resident{}, resident.ID, "resident", map[string]any{
		"full_name":         resident.FullName,
		"phone_number":      resident.PhoneNumber,
		"ktp_number":        resident.KTPNumber,
		"profession":        resident.Profession,
		"emergency_contact": resident.EmergencyContact,
	})
}

func (s *gormStore) ListTenancies(ctx context.Context, status model.TenancyStatus) ([]model.Tenancy, error) {
	q := s.db.WithContext(ctx).Order("start_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tenancies []model.Tenancy
	if err := q.Find(&tenancies).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenancies: %w", err)
	}
	return tenancies, nil
}

func (s *gormStore) GetTenancy(ctx context.Context, id uuid.UUID) (*model.Tenancy, error) {
	return first[model.Tenancy](ctx, s.db, id, "tenancy")
}

func (s *gormStore) CreateTenancy(ctx context.Context, tenancy *model.Tenancy) error {
	if err := s.db.WithContext(ctx).Omit("Room", "Resident").Create(tenancy).Error; err != nil {
		return fmt.Errorf("failed to create tenancy: %w", err)
	}
	return nil
}

func (s *gormStore) UpdateTenancyStatus(ctx context.Context, id uuid.UUID, status model.TenancyStatus) error {
	return updateColumns(ctx, s.db, &model.Tenancy{}, id, "tenancy", map[string]any{"status": status})
}

func (s *gormStore) UpdateTenancyEndDate(ctx context.Context, id uuid.UUID, end time.Time) error {
	return updateColumns(ctx, s.db, &model.Tenancy{}, id, "tenancy", map[string]any{"expected_end_date": end})
}

// DeleteTenancy removes a tenancy together with its invoices.
func (s *gormStore) DeleteTenancy(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenancy_id = ?", id).Delete(&model.Invoice{}).Error; err != nil {
			return fmt.Errorf("failed to delete invoices of tenancy %s: %w", id, err)
		}
		return deleteByID(ctx, tx, &model.Tenancy{}, id, "tenancy")
	})
}

func (s *gormStore) CountActiveTenancies(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Tenancy{}).
		Where("room_id = ? AND status = ?", roomID, model.TenancyActive).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tenancies of room %s: %w", roomID, err)
	}
	return n, nil
}
