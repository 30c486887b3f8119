// Package export renders the detailed ledger as a CSV download compatible
// with common spreadsheet tools.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
)

// Header is the fixed column set of a ledger export. Import relies on these
// exact names to recognize the format.
var Header = []string{
	"Số hiệu chứng từ",
	"Ngày tháng",
	"Tên sản phẩm",
	"Đơn vị tính",
	"Đơn giá",
	"Số lượng nhập",
	"Thành tiền nhập",
	"Số lượng xuất",
	"Thành tiền xuất",
	"Ghi chú",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service turns a user's ledger into CSV.
type Service struct {
	ledger  *ledger.Service
	withBOM bool
}

// NewService creates the export service. withBOM prepends a UTF-8 byte-order
// mark so spreadsheet applications pick up the Vietnamese text correctly.
func NewService(ledgerSvc *ledger.Service, withBOM bool) *Service {
	return &Service{ledger: ledgerSvc, withBOM: withBOM}
}

// Filename returns the download name for an export taken at t.
func (s *Service) Filename(t time.Time) string {
	return fmt.Sprintf("so_chi_tiet_%s.csv", t.Format(time.DateOnly))
}

// WriteLedgerCSV streams the user's ledger to w and returns the number of
// data rows written. Every value is double-quoted with internal quotes
// doubled; prices and amounts are rendered as whole VND, quantities keep
// their full precision. An empty ledger yields just the header row.
func (s *Service) WriteLedgerCSV(ctx context.Context, userID string, w io.Writer) (int, error) {
	entries, err := s.ledger.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listing ledger entries: %w", err)
	}

	if s.withBOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return 0, fmt.Errorf("writing BOM: %w", err)
		}
	}

	if err := writeRow(w, Header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		row := []string{
			e.VoucherID,
			e.EntryDate.Format(time.DateOnly),
			e.ProductName,
			e.Unit,
			e.UnitPrice.StringFixed(0),
			e.QuantityIn.String(),
			e.AmountIn.StringFixed(0),
			e.QuantityOut.String(),
			e.AmountOut.StringFixed(0),
			e.Note,
		}

		if err := writeRow(w, row); err != nil {
			return i, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	return len(entries), nil
}

// writeRow emits one CSV record with every field quoted, matching the export
// format of the original bookkeeping sheets.
func writeRow(w io.Writer, fields []string) error {
	var sb strings.Builder

	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}

	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())

	return err
}
