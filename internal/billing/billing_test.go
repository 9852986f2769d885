package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zayura-backend/internal/model"
)

func testRates() Rates {
	return NewRates(map[string]int64{"Small": 1900000, "Medium": 2000000, "Large": 2100000}, 3)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_SevenMonthsFromJanuary(t *testing.T) {
	periods := Generate(date(2025, time.January, 1), 7, model.RoomMedium, 2200000, testRates())

	require.Len(t, periods, 3)
	assert.Equal(t, []int{3, 3, 1}, []int{periods[0].Months, periods[1].Months, periods[2].Months})

	assert.Equal(t, int64(6000000), periods[0].Amount)
	assert.Equal(t, int64(6000000), periods[1].Amount)
	assert.Equal(t, int64(2200000), periods[2].Amount)

	assert.Equal(t, "Januari 2025", periods[0].MonthYear)
	assert.Equal(t, "April 2025", periods[1].MonthYear)
	assert.Equal(t, "Juli 2025", periods[2].MonthYear)

	assert.Equal(t, date(2025, time.January, 1), periods[0].DueDate)
	assert.Equal(t, date(2025, time.April, 1), periods[0].PeriodEnd)
	assert.Equal(t, date(2025, time.July, 1), periods[2].PeriodStart)
	assert.Equal(t, date(2025, time.August, 1), periods[2].PeriodEnd)

	assert.Equal(t, "Paket 3 Bulan (Medium - Rp 2.000.000/bln)", periods[0].Description)
	assert.Equal(t, "Sewa Bulanan (Medium - Rp 2.200.000/bln)", periods[2].Description)
}

func TestGenerate_BlockSizes(t *testing.T) {
	testCases := []struct {
		name   string
		months int
		blocks []int
	}{
		{name: "Zero months", months: 0, blocks: nil},
		{name: "Negative months", months: -2, blocks: nil},
		{name: "One month", months: 1, blocks: []int{1}},
		{name: "Two months", months: 2, blocks: []int{1, 1}},
		{name: "Exactly one package", months: 3, blocks: []int{3}},
		{name: "Package plus two", months: 5, blocks: []int{3, 1, 1}},
		{name: "Two packages", months: 6, blocks: []int{3, 3}},
		{name: "Year", months: 12, blocks: []int{3, 3, 3, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			periods := Generate(date(2025, time.March, 10), tc.months, model.RoomSmall, 1500000, testRates())
			var blocks []int
			total := 0
			for _, p := range periods {
				blocks = append(blocks, p.Months)
				total += p.Months
			}
			assert.Equal(t, tc.blocks, blocks)
			if tc.months > 0 {
				assert.Equal(t, tc.months, total)
			}
		})
	}
}

func TestGenerate_CalendarOverflowFollowsRunningDate(t *testing.T) {
	// Jan 31 + 1 month normalizes to Mar 3, and the next block continues from there.
	periods := Generate(date(2025, time.January, 31), 2, model.RoomLarge, 2500000, testRates())
	require.Len(t, periods, 2)
	assert.Equal(t, date(2025, time.January, 31), periods[0].DueDate)
	assert.Equal(t, date(2025, time.March, 3), periods[1].DueDate)
	assert.Equal(t, "Maret 2025", periods[1].MonthYear)
}

func TestRatesFor(t *testing.T) {
	r := testRates()
	assert.Equal(t, int64(1900000), r.For(model.RoomSmall))
	assert.Equal(t, int64(2100000), r.For(model.RoomType("Penthouse")), "unknown types use the Large rate")
}

func TestInvoices(t *testing.T) {
	ten := model.Tenancy{ResidentID: uuid.New()}
	ten.ID = uuid.New()
	periods := Generate(date(2025, time.January, 1), 4, model.RoomSmall, 1500000, testRates())

	invoices := Invoices(ten, periods)
	require.Len(t, invoices, 2)
	for i, inv := range invoices {
		assert.Equal(t, ten.ID, inv.TenancyID)
		assert.Equal(t, ten.ResidentID, inv.ResidentID)
		assert.Equal(t, model.InvoiceUnpaid, inv.Status)
		require.NotNil(t, inv.PeriodEnd)
		assert.Equal(t, periods[i].PeriodEnd, *inv.PeriodEnd)
	}
	assert.Equal(t, int64(5700000), invoices[0].Amount)
	assert.Equal(t, int64(1500000), invoices[1].Amount)
}

func TestNextStart(t *testing.T) {
	start := date(2025, time.January, 1)
	assert.Equal(t, start, NextStart(start, nil))

	end := date(2025, time.August, 1)
	invoices := []model.Invoice{
		{DueDate: date(2025, time.January, 1), Months: 3},
		{DueDate: date(2025, time.July, 1), Months: 1, PeriodEnd: &end},
		{DueDate: date(2025, time.April, 1), Months: 3},
	}
	assert.Equal(t, end, NextStart(start, invoices))

	legacy := []model.Invoice{{DueDate: date(2025, time.February, 1), Months: 3}}
	assert.Equal(t, date(2025, time.May, 1), NextStart(start, legacy))
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 950", FormatRupiah(950))
	assert.Equal(t, "Rp 10.000", FormatRupiah(10000))
	assert.Equal(t, "Rp 1.900.000", FormatRupiah(1900000))
	assert.Equal(t, "-Rp 250.000", FormatRupiah(-250000))
}
