package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zayura-backend/internal/model"
)

// UpsertSubscription creates or refreshes a push subscription and replaces the residents it follows.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription, residentIDs []uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Residents").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		residents := []*model.Resident{}
		if len(residentIDs) > 0 {
			if err := tx.Where("id IN ?", residentIDs).Find(&residents).Error; err != nil {
				return fmt.Errorf("failed to load followed residents: %w", err)
			}
		}

		if err := tx.Model(sub).Association("Residents").Replace(residents); err != nil {
			return fmt.Errorf("failed to replace followed residents: %w", err)
		}
		sub.Residents = residents
		return nil
	})
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).Preload("Residents").First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subscription: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := model.PushSubscription{Endpoint: endpoint}
		if err := tx.Model(&sub).Association("Residents").Clear(); err != nil {
			return fmt.Errorf("failed to clear followed residents: %w", err)
		}
		if err := tx.Delete(&sub).Error; err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		return nil
	})
}

func (s *gormStore) ListSubscriptionsForResident(ctx context.Context, residentID uuid.UUID) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_resident_mapping srm ON srm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("srm.resident_id = ?", residentID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for resident %s: %w", residentID, err)
	}
	return subs, nil
}
