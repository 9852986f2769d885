// Package report renders spreadsheets for the bookkeeping pages.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"zayura-backend/internal/model"
	"zayura-backend/internal/parse"
	"zayura-backend/internal/service"
)

const (
	SheetTransactions = "Transaksi"
	SheetSummary      = "Ringkasan"
)

var typeLabels = map[model.TransactionType]string{
	model.Income:  "Pemasukan",
	model.Expense: "Pengeluaran",
}

// LedgerWorkbook builds a workbook with every transaction of the ledger and a
// summary sheet with the month's totals.
func LedgerWorkbook(l *service.Ledger) (*excelize.File, error) {
	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	writeRow := func(sheet string, row int, values []any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}
	writeHeaders := func(sheet string, headers []string) error {
		values := make([]any, len(headers))
		for i, h := range headers {
			values[i] = h
		}
		if err := writeRow(sheet, 1, values); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		return f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		f.Close()
		return nil, err
	}

	err = func() error {
		if err := writeHeaders(SheetTransactions, []string{"Tanggal", "Jenis", "Kategori", "Keterangan", "Metode", "Jumlah"}); err != nil {
			return err
		}
		for i, tx := range l.Transactions {
			row := i + 2
			label := typeLabels[tx.Type]
			if label == "" {
				label = string(tx.Type)
			}
			if err := writeRow(SheetTransactions, row, []any{
				parse.FormatDate(tx.TransactionDate), label, tx.Category, tx.Description, string(tx.PaymentMethod), tx.Amount,
			}); err != nil {
				return err
			}
		}
		if n := len(l.Transactions); n > 0 {
			if err := f.SetCellStyle(SheetTransactions, "F2", fmt.Sprintf("F%d", n+1), moneyStyle); err != nil {
				return err
			}
		}
		if err := f.AutoFilter(SheetTransactions, "A1:F1", []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
		if err := f.SetPanes(SheetTransactions, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return err
		}

		if err := writeHeaders(SheetSummary, []string{"Bulan", "Pemasukan", "Pengeluaran", "Saldo"}); err != nil {
			return err
		}
		if err := writeRow(SheetSummary, 2, []any{l.Month, l.Income, l.Expense, l.Balance}); err != nil {
			return err
		}
		return f.SetCellStyle(SheetSummary, "B2", "D2", moneyStyle)
	}()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write ledger workbook: %w", err)
	}

	f.SetActiveSheet(0)
	return f, nil
}
