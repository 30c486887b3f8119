package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/export"
	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ledgerServiceWith(t *testing.T, entries []*ledger.Entry) *ledger.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().ListEntries(gomock.Any(), "user-1").Return(entries, nil)

	return ledger.NewService(repo, ledger.NewMockReconciler(ctrl), nil)
}

func TestService_WriteLedgerCSV(t *testing.T) {
	entries := []*ledger.Entry{
		{
			VoucherID:   "03072025-ABC",
			EntryDate:   time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
			ProductName: "Bò viên",
			Unit:        "kg",
			UnitPrice:   dec("50000"),
			QuantityIn:  dec("10"),
			QuantityOut: dec("0"),
			AmountIn:    dec("500000"),
			AmountOut:   dec("0"),
			Note:        `hàng "loại 1"`,
		},
	}

	svc := export.NewService(ledgerServiceWith(t, entries), true)

	var buf bytes.Buffer

	n, err := svc.WriteLedgerCSV(context.Background(), "user-1", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()

	// BOM prefix for spreadsheet compatibility.
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "output should start with a UTF-8 BOM")

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\xEF\xBB\xBF"), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		`"Số hiệu chứng từ","Ngày tháng","Tên sản phẩm","Đơn vị tính","Đơn giá","Số lượng nhập","Thành tiền nhập","Số lượng xuất","Thành tiền xuất","Ghi chú"`,
		lines[0])

	// Every value quoted, internal quotes doubled, amounts in whole VND.
	assert.Equal(t,
		`"03072025-ABC","2025-07-03","Bò viên","kg","50000","10","500000","0","0","hàng ""loại 1"""`,
		lines[1])
}

func TestService_WriteLedgerCSV_RoundsAmountsToWholeVND(t *testing.T) {
	entries := []*ledger.Entry{
		{
			VoucherID:   "03072025-XYZ",
			EntryDate:   time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
			ProductName: "Thịt bò xay",
			Unit:        "kg",
			UnitPrice:   dec("123456.7"),
			QuantityIn:  dec("0.3"),
			QuantityOut: dec("0"),
			AmountIn:    dec("37037.01"), // stored exact
			AmountOut:   dec("0"),
		},
	}

	svc := export.NewService(ledgerServiceWith(t, entries), false)

	var buf bytes.Buffer

	_, err := svc.WriteLedgerCSV(context.Background(), "user-1", &buf)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "37037.01", "amounts render as whole VND")
	assert.Contains(t, buf.String(), `"37037"`)
	assert.Contains(t, buf.String(), `"0.3"`, "quantities keep full precision")
}

func TestService_WriteLedgerCSV_EmptyLedger(t *testing.T) {
	svc := export.NewService(ledgerServiceWith(t, nil), false)

	var buf bytes.Buffer

	n, err := svc.WriteLedgerCSV(context.Background(), "user-1", &buf)
	require.NoError(t, err)
	assert.Zero(t, n)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1, "empty ledger exports the header only")
}

func TestService_Filename(t *testing.T) {
	svc := export.NewService(nil, false)

	name := svc.Filename(time.Date(2025, 7, 3, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, "so_chi_tiet_2025-07-03.csv", name)
}
