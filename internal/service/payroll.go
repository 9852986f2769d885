package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"zayura-backend/internal/billing"
	"zayura-backend/internal/model"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/store"
)

// EmployeeRequest is a new staff member.
type EmployeeRequest struct {
	Name     string    `json:"name" binding:"required"`
	Position string    `json:"position" binding:"required"`
	Salary   int64     `json:"salary" binding:"required"`
	JoinDate time.Time `json:"-"`
}

// AddEmployee adds a staff member to the payroll.
func (s *Service) AddEmployee(ctx context.Context, req EmployeeRequest) (*model.Employee, error) {
	name, position := strings.TrimSpace(req.Name), strings.TrimSpace(req.Position)
	if name == "" || position == "" {
		return nil, invalid("name and position are required")
	}
	if req.Salary <= 0 {
		return nil, invalid("salary must be positive")
	}

	emp := &model.Employee{Name: name, Position: position, Salary: req.Salary, JoinDate: s.dateOr(req.JoinDate)}
	if err := s.store.CreateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Employees lists staff ordered by name.
func (s *Service) Employees(ctx context.Context) ([]model.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// Employee returns one staff member.
func (s *Service) Employee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// Payrolls makes sure every employee has a payroll row for month ("2025-01")
// and returns them. An empty month means the current one.
func (s *Service) Payrolls(ctx context.Context, month string) ([]model.Payroll, error) {
	if month == "" {
		month = parse.MonthKey(s.Today())
	} else {
		t, err := parse.Month(month)
		if err != nil {
			return nil, invalid("%v", err)
		}
		month = parse.MonthKey(t)
	}

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.EnsurePayrolls(ctx, month, employees); err != nil {
		return nil, err
	}
	payrolls, err := s.store.ListPayrolls(ctx, month)
	if err != nil {
		return nil, err
	}
	if payrolls == nil {
		payrolls = []model.Payroll{}
	}
	return payrolls, nil
}

// PaySalaryRequest settles a payroll. Both fields are optional.
type PaySalaryRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Date          time.Time           `json:"-"`
}

// PaySalary records the salary expense and marks the payroll paid.
func (s *Service) PaySalary(ctx context.Context, payrollID uuid.UUID, req PaySalaryRequest) (*model.Transaction, error) {
	if req.PaymentMethod != "" && req.PaymentMethod != model.PaymentTransfer && req.PaymentMethod != model.PaymentCash {
		return nil, invalid("unknown payment method %q", req.PaymentMethod)
	}
	date := s.dateOr(req.Date)

	var entry model.Transaction
	err := s.store.InTx(ctx, func(tx store.Store) error {
		p, err := tx.GetPayroll(ctx, payrollID)
		if err != nil {
			return err
		}
		if p.Status == model.PayrollPaid {
			return fmt.Errorf("payroll %s: %w", p.ID, ErrPayrollPaid)
		}

		name := ""
		if p.Employee != nil {
			name = p.Employee.Name
		}
		monthLabel := p.Month
		if t, err := parse.Month(p.Month); err == nil {
			monthLabel = billing.MonthYear(t)
		}

		pid := p.ID
		entry = model.Transaction{
			Type:            model.Expense,
			Category:        model.CategorySalary,
			Amount:          p.Amount,
			TransactionDate: date,
			Description:     fmt.Sprintf("Gaji %s bulan %s", name, monthLabel),
			PaymentMethod:   req.PaymentMethod,
			PayrollID:       &pid,
		}
		if err := tx.CreateTransaction(ctx, &entry); err != nil {
			return err
		}
		return tx.MarkPayrollPaid(ctx, p.ID, s.now())
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
