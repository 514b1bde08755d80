package payment

import (
	"errors"
	"fmt"
)

var ErrInsufficientPayment = errors.New("insufficient payment")

// Method is the closed set of payment methods the register accepts.
type Method string

const (
	Cash  Method = "cash"
	QRIS  Method = "qris"
	Debit Method = "debit"
)

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case Cash, QRIS, Debit:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// CanSettle reports whether the attempt covers the total due. Non-cash
// methods are settled externally once initiated, so they always pass.
// Amounts are whole Rupiah.
func CanSettle(m Method, tendered, totalDue int64) bool {
	if m != Cash {
		return true
	}
	return tendered >= totalDue
}

// ChangeDue requires tendered >= totalDue; check CanSettle first.
func ChangeDue(tendered, totalDue int64) int64 {
	return tendered - totalDue
}

// Shortfall requires tendered < totalDue.
func Shortfall(tendered, totalDue int64) int64 {
	return totalDue - tendered
}
