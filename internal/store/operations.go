package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zayura-backend/internal/model"
)

func (s *gormStore) ListLaundry(ctx context.Context) ([]model.Laundry, error) {
	var orders []model.Laundry
	if err := s.db.WithContext(ctx).Order("date DESC").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list laundry orders: %w", err)
	}
	return orders, nil
}

func (s *gormStore) GetLaundry(ctx context.Context, id uuid.UUID) (*model.Laundry, error) {
	return first[model.Laundry](ctx, s.db, id, "laundry order")
}

func (s *gormStore) CreateLaundry(ctx context.Context, order *model.Laundry) error {
	if err := s.db.WithContext(ctx).Omit("Resident").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create laundry order: %w", err)
	}
	return nil
}

func (s *gormStore) UpdateLaundryStatus(ctx context.Context, id uuid.UUID, status model.LaundryStatus) error {
	return updateColumns(ctx, s.db, &model.Laundry{}, id, "laundry order", map[string]any{"status": status})
}

func (s *gormStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := s.db.WithContext(ctx).Order("name").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *gormStore) GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	return first[model.Employee](ctx, s.db, id, "employee")
}

func (s *gormStore) CreateEmployee(ctx context.Context, employee *model.Employee) error {
	if err := s.db.WithContext(ctx).Create(employee).Error; err != nil {
		return fmt.Errorf("failed to create employee %q: %w", employee.Name, err)
	}
	return nil
}

func (s *gormStore) ListPayrolls(ctx context.Context, month string) ([]model.Payroll, error) {
	var payrolls []model.Payroll
	err := s.db.WithContext(ctx).
		Preload("Employee").
		Where("month = ?", month).
		Find(&payrolls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls for %s: %w", month, err)
	}
	return payrolls, nil
}

// EnsurePayrolls creates an unpaid payroll row for every employee lacking one in month.
func (s *gormStore) EnsurePayrolls(ctx context.Context, month string, employees []model.Employee) error {
	if len(employees) == 0 {
		return nil
	}
	rows := make([]model.Payroll, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, model.Payroll{
			EmployeeID: e.ID,
			Month:      month,
			Amount:     e.Salary,
			Status:     model.PayrollUnpaid,
		})
	}
	err := s.db.WithContext(ctx).Omit("Employee").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "month"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to ensure payrolls for %s: %w", month, err)
	}
	return nil
}

func (s *gormStore) GetPayroll(ctx context.Context, id uuid.UUID) (*model.Payroll, error) {
	var p model.Payroll
	if err := s.db.WithContext(ctx).Preload("Employee").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payroll %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load payroll %s: %w", id, err)
	}
	return &p, nil
}

func (s *gormStore) MarkPayrollPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	return updateColumns(ctx, s.db, &model.Payroll{}, id, "payroll", map[string]any{
		"status":  model.PayrollPaid,
		"paid_at": at,
	})
}

func (s *gormStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user %q: %w", username, err)
	}
	return &u, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return nil
}

func (s *gormStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
