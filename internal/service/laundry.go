package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zayura-backend/internal/model"
	"zayura-backend/internal/notification"
	"zayura-backend/internal/store"
)

// LaundryRequest is a new laundry order.
type LaundryRequest struct {
	ResidentID uuid.UUID `json:"resident_id" binding:"required"`
	WeightKg   float64   `json:"weight_kg" binding:"required"`
	Price      int64     `json:"price"`
	Date       time.Time `json:"-"`
}

// LaundryPrice is weight times the per-kilo rate, rounded to the rupiah.
func LaundryPrice(weightKg float64, perKg int64) int64 {
	return decimal.NewFromFloat(weightKg).Mul(decimal.NewFromInt(perKg)).Round(0).IntPart()
}

// AddLaundry records an order and the income it brings.
func (s *Service) AddLaundry(ctx context.Context, req LaundryRequest) (*model.Laundry, error) {
	if req.WeightKg <= 0 {
		return nil, invalid("weight must be positive")
	}
	if req.Price < 0 {
		return nil, invalid("price must not be negative")
	}

	order := &model.Laundry{
		ResidentID: req.ResidentID,
		WeightKg:   req.WeightKg,
		Price:      req.Price,
		Status:     model.LaundryProcess,
		Date:       s.dateOr(req.Date),
	}
	if order.Price == 0 {
		order.Price = LaundryPrice(req.WeightKg, s.billing.LaundryPricePerKg)
	}

	err := s.store.InTx(ctx, func(tx store.Store) error {
		res, err := tx.GetResident(ctx, req.ResidentID)
		if err != nil {
			return err
		}
		if err := tx.CreateLaundry(ctx, order); err != nil {
			return err
		}
		return tx.CreateTransaction(ctx, &model.Transaction{
			Type:            model.Income,
			Category:        model.CategoryLaundry,
			Amount:          order.Price,
			TransactionDate: order.Date,
			Description:     "Laundry - " + res.FullName,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AdvanceLaundry moves an order one step forward. Only process to done and
// done to picked_up are allowed; reaching done notifies the resident.
func (s *Service) AdvanceLaundry(ctx context.Context, id uuid.UUID, status model.LaundryStatus) (*model.Laundry, error) {
	order, err := s.store.GetLaundry(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := order.Status.Next()
	if !ok || next != status {
		return nil, fmt.Errorf("laundry %s cannot move from %s to %s: %w", id, order.Status, status, ErrInvalidTransition)
	}
	if err := s.store.UpdateLaundryStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if status == model.LaundryDone {
		name := ""
		if res, err := s.store.GetResident(ctx, order.ResidentID); err == nil {
			name = res.FullName
		}
		s.notify(notification.LaundryReady(order.ResidentID, name, order.WeightKg))
	}
	return order, nil
}

// LaundryStats counts open orders and total revenue.
type LaundryStats struct {
	InProcess    int   `json:"in_process"`
	ReadyPickup  int   `json:"ready_pickup"`
	TotalRevenue int64 `json:"total_revenue"`
}

// LaundryStats summarises every laundry order.
func (s *Service) LaundryStats(ctx context.Context) (*LaundryStats, error) {
	orders, err := s.store.ListLaundry(ctx)
	if err != nil {
		return nil, err
	}
	var st LaundryStats
	for _, o := range orders {
		switch o.Status {
		case model.LaundryProcess:
			st.InProcess++
		case model.LaundryDone:
			st.ReadyPickup++
		}
		st.TotalRevenue += o.Price
	}
	return &st, nil
}

// Laundry lists orders, newest first.
func (s *Service) Laundry(ctx context.Context) ([]model.Laundry, error) {
	return s.store.ListLaundry(ctx)
}
