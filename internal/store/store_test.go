package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zayura-backend/internal/db"
	"zayura-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// newSQLiteStore opens a private in-memory database with the full schema.
func newSQLiteStore(t *testing.T) Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewGormStore(gormDB)
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}

func TestGormStore_ListRoomsOrdersByNumber(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rooms" ORDER BY room_number`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "floor", "type", "status", "price_per_month"}).
			AddRow(id.String(), "101", 1, "Small", "available", 1500000))

	rooms, err := s.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, id, rooms[0].ID)
	assert.Equal(t, model.RoomSmall, rooms[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateRoomStatus(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "Row updated", affected: 1},
		{name: "Unknown room maps to ErrNotFound", affected: 0, wantErr: ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)
			id := uuid.New()

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "rooms" SET "status"=$1,"updated_at"=$2 WHERE id = $3`)).
				WithArgs("occupied", Any{}, id.String()).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			mock.ExpectCommit()

			err := s.UpdateRoomStatus(context.Background(), id, model.RoomOccupied)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_GetInvoiceNotFound(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "invoices" WHERE id = $1`)).
		WithArgs(id.String(), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := s.GetInvoice(context.Background(), id)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_InTxRollsBack(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(tx Store) error {
		if err := tx.CreateRoom(ctx, &model.Room{RoomNumber: "101", Floor: 1, Type: model.RoomSmall, Status: model.RoomAvailable, PricePerMonth: 1500000}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestGormStore_TransactionsFilterByMonth(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		require.NoError(t, s.CreateTransaction(ctx, &model.Transaction{
			Type: model.Income, Category: "Laundry", Amount: int64(1000 * (i + 1)), TransactionDate: d,
		}))
	}

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	txs, err := s.ListTransactions(ctx, TransactionFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(2000), txs[0].Amount, "newest first")
	assert.Equal(t, int64(1000), txs[1].Amount)
}

func TestGormStore_EnsurePayrollsIsIdempotent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	emp := model.Employee{Name: "Siti Aminah", Position: "Kebersihan", Salary: 2000000, JoinDate: time.Now()}
	require.NoError(t, s.CreateEmployee(ctx, &emp))
	employees := []model.Employee{emp}

	require.NoError(t, s.EnsurePayrolls(ctx, "2025-01", employees))
	require.NoError(t, s.EnsurePayrolls(ctx, "2025-01", employees))

	payrolls, err := s.ListPayrolls(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, payrolls, 1)
	assert.Equal(t, model.PayrollUnpaid, payrolls[0].Status)
	require.NotNil(t, payrolls[0].Employee)
	assert.Equal(t, "Siti Aminah", payrolls[0].Employee.Name)

	require.NoError(t, s.MarkPayrollPaid(ctx, payrolls[0].ID, time.Now()))
	require.NoError(t, s.EnsurePayrolls(ctx, "2025-01", employees))
	p, err := s.GetPayroll(ctx, payrolls[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.PayrollPaid, p.Status, "ensure must not reset a paid payroll")
}

func TestGormStore_DeleteTenancyRemovesInvoices(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	room := model.Room{RoomNumber: "201", Floor: 2, Type: model.RoomMedium, Status: model.RoomAvailable, PricePerMonth: 2200000}
	require.NoError(t, s.CreateRoom(ctx, &room))
	res := model.Resident{FullName: "Budi", PhoneNumber: "0812"}
	require.NoError(t, s.CreateResident(ctx, &res))
	ten := model.Tenancy{RoomID: room.ID, ResidentID: res.ID, StartDate: time.Now(), ExpectedEndDate: time.Now().AddDate(0, 1, 0), Status: model.TenancyCompleted}
	require.NoError(t, s.CreateTenancy(ctx, &ten))
	require.NoError(t, s.CreateInvoices(ctx, []model.Invoice{
		{TenancyID: ten.ID, ResidentID: res.ID, MonthYear: "Januari 2025", Months: 1, Amount: 2200000, Status: model.InvoiceUnpaid, DueDate: time.Now(), Description: "x"},
	}))

	require.NoError(t, s.DeleteTenancy(ctx, ten.ID))

	invoices, err := s.ListInvoices(ctx, InvoiceFilter{TenancyID: ten.ID})
	require.NoError(t, err)
	assert.Empty(t, invoices)
	assert.ErrorIs(t, s.DeleteTenancy(ctx, ten.ID), ErrNotFound)
}

func TestGormStore_Subscriptions(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	a := model.Resident{FullName: "Ani", PhoneNumber: "1"}
	b := model.Resident{FullName: "Bayu", PhoneNumber: "2"}
	require.NoError(t, s.CreateResident(ctx, &a))
	require.NoError(t, s.CreateResident(ctx, &b))

	sub := &model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "k", Auth: "a"}
	require.NoError(t, s.UpsertSubscription(ctx, sub, []uuid.UUID{a.ID}))

	subs, err := s.ListSubscriptionsForResident(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push.example/1", subs[0].Endpoint)

	// Re-subscribing replaces the followed set.
	require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "k2", Auth: "a2"}, []uuid.UUID{b.ID}))
	subs, err = s.ListSubscriptionsForResident(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)

	got, err := s.GetSubscription(ctx, "https://push.example/1")
	require.NoError(t, err)
	assert.Equal(t, "k2", got.P256DH)
	require.Len(t, got.Residents, 1)
	assert.Equal(t, b.ID, got.Residents[0].ID)

	require.NoError(t, s.DeleteSubscription(ctx, "https://push.example/1"))
	_, err = s.GetSubscription(ctx, "https://push.example/1")
	assert.ErrorIs(t, err, ErrNotFound)
}
