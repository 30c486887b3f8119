package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/Old-ch1ld/so-sach-happy-monkey/internal/encoding"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/export"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/voucher"
)

// Column names the parser looks for, as written by the export.
const (
	colVoucher     = "Số hiệu chứng từ"
	colDate        = "Ngày tháng"
	colProduct     = "Tên sản phẩm"
	colUnit        = "Đơn vị tính"
	colUnitPrice   = "Đơn giá"
	colQuantityIn  = "Số lượng nhập"
	colAmountIn    = "Thành tiền nhập"
	colQuantityOut = "Số lượng xuất"
	colQuantityOutOld = "Số lượng"
	colNote        = "Ghi chú"
)

// Parser reads a ledger CSV export back into import params. It locates the
// header row by column names rather than position, so files that spreadsheet
// tools re-saved with leading junk rows still parse. Older exports wrote the
// outgoing-quantity column as "Số lượng"; both spellings are accepted.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// colIndex maps column names to their index in the header row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]ledger.ImportParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no ledger header found: expected columns %q", strings.Join(export.Header, ", "))
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx)
}

// findHeader scans rows for one carrying the required ledger columns.
func findHeader(rows [][]string) (colIndex, int, bool) {
	required := []string{colVoucher, colDate, colProduct, colUnit, colUnitPrice}

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		matched := true

		for _, name := range required {
			if _, ok := cols[name]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// parseRows extracts import params from data rows. headerRowNum is the
// 0-based index of the header in the original file (for error messages).
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]ledger.ImportParams, error) {
	quantityOutIdx, ok := cols[colQuantityOut]
	if !ok {
		quantityOutIdx, ok = cols[colQuantityOutOld]
		if !ok {
			quantityOutIdx = -1
		}
	}

	var params []ledger.ImportParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		if blankRow(row) {
			continue
		}

		voucherID := cellValue(row, cols[colVoucher])
		if !voucher.ValidLedger(voucherID) {
			return nil, fmt.Errorf("row %d: invalid voucher id %q", rowNum, voucherID)
		}

		date, err := time.Parse(time.DateOnly, cellValue(row, cols[colDate]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date: %w", rowNum, err)
		}

		name := cellValue(row, cols[colProduct])
		if name == "" {
			return nil, fmt.Errorf("row %d: missing product name", rowNum)
		}

		unitPrice, err := parseNumber(row, cols[colUnitPrice])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid unit price: %w", rowNum, err)
		}

		quantityIn, err := parseNumber(row, cols[colQuantityIn])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid incoming quantity: %w", rowNum, err)
		}

		quantityOut, err := parseNumber(row, quantityOutIdx)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid outgoing quantity: %w", rowNum, err)
		}

		noteIdx, ok := cols[colNote]
		if !ok {
			noteIdx = -1
		}

		params = append(params, ledger.ImportParams{
			VoucherID:   voucherID,
			EntryDate:   date,
			ProductName: name,
			Unit:        cellValue(row, cols[colUnit]),
			UnitPrice:   unitPrice,
			QuantityIn:  quantityIn,
			QuantityOut: quantityOut,
			Note:        cellValue(row, noteIdx),
		})
	}

	return params, nil
}

// parseNumber reads a decimal cell, treating absent and empty cells as zero.
// Amounts are not read back; they are rederived from price and quantity.
func parseNumber(row []string, idx int) (decimal.Decimal, error) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(s)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
