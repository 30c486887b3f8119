// Package voucher generates the human-readable reference codes stamped on
// ledger and expense entries: the entry date as DDMMYYYY plus three random
// uppercase letters, with a -CP suffix for expense vouchers.
package voucher

import (
	"math/rand/v2"
	"regexp"
	"time"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ExpenseSuffix marks expense-ledger vouchers (chi phí).
const ExpenseSuffix = "-CP"

var (
	ledgerPattern  = regexp.MustCompile(`^\d{8}-[A-Z]{3}$`)
	expensePattern = regexp.MustCompile(`^\d{8}-[A-Z]{3}-CP$`)
)

// Generate returns a ledger voucher id for the given date.
// The random suffix is not checked for uniqueness; collisions are possible
// and accepted.
func Generate(t time.Time) string {
	b := []byte(t.Format("02012006") + "-...")
	for i := len(b) - 3; i < len(b); i++ {
		b[i] = letters[rand.IntN(len(letters))]
	}

	return string(b)
}

// GenerateExpense returns an expense voucher id for the given date.
func GenerateExpense(t time.Time) string {
	return Generate(t) + ExpenseSuffix
}

// ValidLedger reports whether s is a well-formed ledger voucher id.
func ValidLedger(s string) bool {
	return ledgerPattern.MatchString(s)
}

// ValidExpense reports whether s is a well-formed expense voucher id.
func ValidExpense(s string) bool {
	return expensePattern.MatchString(s)
}
