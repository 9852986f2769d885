package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"zayura-backend/internal/model"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/store"
)

// TransactionRequest is a manual ledger entry.
type TransactionRequest struct {
	Type          model.TransactionType `json:"type" binding:"required"`
	Category      string                `json:"category" binding:"required"`
	Amount        int64                 `json:"amount" binding:"required"`
	Date          time.Time             `json:"-"`
	Description   string                `json:"description"`
	PaymentMethod model.PaymentMethod   `json:"payment_method"`
	ProofImage    string                `json:"proof_image"`
}

// AddTransaction records a manual income or expense.
func (s *Service) AddTransaction(ctx context.Context, req TransactionRequest) (*model.Transaction, error) {
	if !req.Type.Valid() {
		return nil, invalid("unknown transaction type %q", req.Type)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, invalid("category is required")
	}
	if req.Amount <= 0 {
		return nil, invalid("amount must be positive")
	}
	if req.PaymentMethod != "" && req.PaymentMethod != model.PaymentTransfer && req.PaymentMethod != model.PaymentCash {
		return nil, invalid("unknown payment method %q", req.PaymentMethod)
	}

	tx := &model.Transaction{
		Type:            req.Type,
		Category:        category,
		Amount:          req.Amount,
		TransactionDate: s.dateOr(req.Date),
		Description:     strings.TrimSpace(req.Description),
		PaymentMethod:   req.PaymentMethod,
		ProofImage:      req.ProofImage,
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Ledger is one month of transactions with totals.
type Ledger struct {
	Month        string              `json:"month"`
	Transactions []model.Transaction `json:"transactions"`
	Income       int64               `json:"income"`
	Expense      int64               `json:"expense"`
	Balance      int64               `json:"balance"`
}

// Ledger lists the transactions of a month, optionally of one type. Totals
// always cover both types.
func (s *Service) Ledger(ctx context.Context, year int, month time.Month, txType model.TransactionType) (*Ledger, error) {
	if month < time.January || month > time.December {
		return nil, invalid("month must be between 1 and 12")
	}
	if txType != "" && !txType.Valid() {
		return nil, invalid("unknown transaction type %q", txType)
	}

	from, to := parse.MonthRange(year, month)
	txs, err := s.store.ListTransactions(ctx, store.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	l := &Ledger{Month: parse.MonthKey(from), Transactions: []model.Transaction{}}
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		amount := decimal.NewFromInt(tx.Amount)
		if tx.Type == model.Income {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
		if txType == "" || tx.Type == txType {
			l.Transactions = append(l.Transactions, tx)
		}
	}
	l.Income = income.IntPart()
	l.Expense = expense.IntPart()
	l.Balance = income.Sub(expense).IntPart()
	return l, nil
}

// OperationalCategories are the utility buckets summarised by OperationalCosts.
var OperationalCategories = []string{"Listrik", "Air", "Perbaikan", "Kebersihan"}

// OperationalCosts is the expense breakdown for a month.
type OperationalCosts struct {
	Month        string              `json:"month"`
	Transactions []model.Transaction `json:"transactions"`
	Total        int64               `json:"total"`
	ByCategory   map[string]int64    `json:"by_category"`
}

// OperationalCosts totals the month's expenses and buckets them by category.
// A transaction counts toward a bucket when its category contains the bucket
// name, ignoring case.
func (s *Service) OperationalCosts(ctx context.Context, year int, month time.Month) (*OperationalCosts, error) {
	if month < time.January || month > time.December {
		return nil, invalid("month must be between 1 and 12")
	}
	from, to := parse.MonthRange(year, month)
	txs, err := s.store.ListTransactions(ctx, store.TransactionFilter{From: &from, To: &to, Type: model.Expense})
	if err != nil {
		return nil, err
	}

	oc := &OperationalCosts{
		Month:        parse.MonthKey(from),
		Transactions: txs,
		ByCategory:   make(map[string]int64, len(OperationalCategories)),
	}
	if oc.Transactions == nil {
		oc.Transactions = []model.Transaction{}
	}
	for _, name := range OperationalCategories {
		oc.ByCategory[name] = 0
	}
	for _, tx := range txs {
		oc.Total += tx.Amount
		category := strings.ToLower(tx.Category)
		for _, name := range OperationalCategories {
			if strings.Contains(category, strings.ToLower(name)) {
				oc.ByCategory[name] += tx.Amount
			}
		}
	}
	return oc, nil
}
