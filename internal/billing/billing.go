// Package billing turns a stay length into rent invoices.
package billing

import (
	"fmt"
	"sort"
	"time"

	"zayura-backend/internal/model"
)

// Rates maps a room type to the discounted monthly rate used for packages.
type Rates struct {
	PerType       map[model.RoomType]int64
	PackageMonths int
}

// NewRates builds Rates from configuration values keyed by room type name.
func NewRates(perType map[string]int64, packageMonths int) Rates {
	r := Rates{PerType: make(map[model.RoomType]int64, len(perType)), PackageMonths: packageMonths}
	for k, v := range perType {
		r.PerType[model.RoomType(k)] = v
	}
	if r.PackageMonths <= 0 {
		r.PackageMonths = 3
	}
	return r
}

// For returns the package rate for roomType. Unknown types are billed at the Large rate.
func (r Rates) For(roomType model.RoomType) int64 {
	if v, ok := r.PerType[roomType]; ok {
		return v
	}
	return r.PerType[model.RoomLarge]
}

// Period is one billing block produced by Generate.
type Period struct {
	Months      int
	Amount      int64
	MonthYear   string
	Description string
	DueDate     time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Generate splits a stay of months starting at start into billing blocks.
// While at least a package worth of months remains, one discounted package
// block is emitted; the rest is billed month by month at roomPrice.
func Generate(start time.Time, months int, roomType model.RoomType, roomPrice int64, rates Rates) []Period {
	pkg := rates.PackageMonths
	if pkg <= 0 {
		pkg = 3
	}

	var periods []Period
	current := start
	for remaining := months; remaining > 0; {
		p := Period{Months: 1, Amount: roomPrice}
		if remaining >= pkg {
			rate := rates.For(roomType)
			p.Months = pkg
			p.Amount = rate * int64(pkg)
			p.Description = fmt.Sprintf("Paket %d Bulan (%s - %s/bln)", pkg, roomType, FormatRupiah(rate))
		} else {
			p.Description = fmt.Sprintf("Sewa Bulanan (%s - %s/bln)", roomType, FormatRupiah(roomPrice))
		}

		p.DueDate = current
		p.PeriodStart = current
		p.PeriodEnd = current.AddDate(0, p.Months, 0)
		p.MonthYear = MonthYear(current)
		periods = append(periods, p)

		current = current.AddDate(0, p.Months, 0)
		remaining -= p.Months
	}
	return periods
}

// Invoices converts periods into unpaid invoices for a tenancy.
func Invoices(tenancy model.Tenancy, periods []Period) []model.Invoice {
	out := make([]model.Invoice, 0, len(periods))
	for _, p := range periods {
		start, end := p.PeriodStart, p.PeriodEnd
		out = append(out, model.Invoice{
			TenancyID:   tenancy.ID,
			ResidentID:  tenancy.ResidentID,
			MonthYear:   p.MonthYear,
			Months:      p.Months,
			Amount:      p.Amount,
			Status:      model.InvoiceUnpaid,
			DueDate:     p.DueDate,
			Description: p.Description,
			PeriodStart: &start,
			PeriodEnd:   &end,
		})
	}
	return out
}

// NextStart returns where the next billing block of a tenancy begins: the end
// of the latest invoice already issued, or the tenancy start when none exist.
func NextStart(tenancyStart time.Time, invoices []model.Invoice) time.Time {
	if len(invoices) == 0 {
		return tenancyStart
	}
	sorted := make([]model.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.After(sorted[j].DueDate)
	})

	last := sorted[0]
	if last.PeriodEnd != nil && !last.PeriodEnd.IsZero() {
		return *last.PeriodEnd
	}
	months := last.Months
	if months <= 0 {
		months = 1
	}
	return last.DueDate.AddDate(0, months, 0)
}
