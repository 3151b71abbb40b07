package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^[0-9]{10}$`)
	reOrdID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Required trims s and reports whether anything is left.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone accepts exactly ten digits.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Q normalizes a search term: trimmed, capped at 50 bytes. Empty is allowed.
func Q(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// MaxQty caps any quantity or quantity change read from a form.
const MaxQty = 10000

// Qty parses a cart quantity in 1..MaxQty. An empty field means 1.
func Qty(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxQty {
		return 0, false
	}
	return n, true
}

// Delta parses a signed quantity change clamped to ±MaxQty; anything
// unparsable is 0.
func Delta(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	if n > MaxQty {
		return MaxQty
	}
	if n < -MaxQty {
		return -MaxQty
	}
	return n
}

// ProductID parses a positive numeric product identifier.
func ProductID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// OrderID validates an order identifier reference.
func OrderID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reOrdID.MatchString(s)
}

// Price parses a decimal amount; it does not check the sign.
func Price(s string) (decimal.Decimal, bool) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return p, true
}

// Stock parses an integer stock level; it does not check the sign.
func Stock(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
