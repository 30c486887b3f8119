package voucher_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/voucher"
)

func TestGenerate(t *testing.T) {
	date := time.Date(2025, 7, 3, 14, 30, 0, 0, time.Local)

	for range 50 {
		v := voucher.Generate(date)

		assert.True(t, voucher.ValidLedger(v), "generated voucher %q does not match pattern", v)
		assert.True(t, strings.HasPrefix(v, "03072025-"), "date portion of %q should be DDMMYYYY", v)
	}
}

func TestGenerateExpense(t *testing.T) {
	date := time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)

	v := voucher.GenerateExpense(date)

	assert.True(t, voucher.ValidExpense(v), "generated expense voucher %q does not match pattern", v)
	assert.True(t, strings.HasPrefix(v, "31122025-"))
	assert.True(t, strings.HasSuffix(v, "-CP"))
}

func TestValidLedger(t *testing.T) {
	tests := []struct {
		voucher string
		want    bool
	}{
		{"03072025-ABC", true},
		{"03072025-abc", false},
		{"3072025-ABC", false},
		{"03072025-ABCD", false},
		{"03072025-ABC-CP", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, voucher.ValidLedger(tt.voucher), "voucher %q", tt.voucher)
	}
}

func TestValidExpense(t *testing.T) {
	assert.True(t, voucher.ValidExpense("03072025-XYZ-CP"))
	assert.False(t, voucher.ValidExpense("03072025-XYZ"))
	assert.False(t, voucher.ValidExpense("03072025-XYZ-cp"))
}
