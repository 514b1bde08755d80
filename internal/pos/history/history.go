// Package history filters and orders finished sales for the analytics
// screens.
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/wicaksana/tokokasir/internal/pos/payment"
)

type Period string

const (
	Today     Period = "today"
	Yesterday Period = "yesterday"
	Week      Period = "week"
	Month     Period = "month"
	Year      Period = "year"
	Custom    Period = "custom"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Today, Yesterday, Week, Month, Year, Custom:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

type SortKey string

const (
	Newest  SortKey = "newest"
	Oldest  SortKey = "oldest"
	Highest SortKey = "highest"
	Lowest  SortKey = "lowest"
)

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case Newest, Oldest, Highest, Lowest:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type Status string

const (
	Completed Status = "completed"
	Pending   Status = "pending"
	Cancelled Status = "cancelled"
)

type Item struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	Subtotal    int64  `json:"subtotal"`
}

type Transaction struct {
	Code          string         `json:"code"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Items         []Item         `json:"items"`
	Total         int64          `json:"total"`
	PaymentMethod payment.Method `json:"payment_method"`
	Status        Status         `json:"status"`
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Select picks the transactions inside the requested period. Day
// periods compare calendar days; week/month/year keep only days
// strictly after the cutoff, so a sale exactly at the cutoff day is
// excluded. Custom without an explicit date returns the whole list.
// The source slice is never mutated.
func Select(txs []Transaction, p Period, ref time.Time, explicit *time.Time) []Transaction {
	var keep func(Transaction) bool

	switch p {
	case Today:
		keep = func(t Transaction) bool { return sameDay(t.OccurredAt, ref) }
	case Yesterday:
		y := ref.AddDate(0, 0, -1)
		keep = func(t Transaction) bool { return sameDay(t.OccurredAt, y) }
	case Week:
		cutoff := ref.AddDate(0, 0, -7)
		keep = func(t Transaction) bool { return dayStart(t.OccurredAt).After(cutoff) }
	case Month:
		cutoff := ref.AddDate(0, 0, -30)
		keep = func(t Transaction) bool { return dayStart(t.OccurredAt).After(cutoff) }
	case Year:
		cutoff := ref.AddDate(-1, 0, 0)
		keep = func(t Transaction) bool { return dayStart(t.OccurredAt).After(cutoff) }
	case Custom:
		if explicit == nil {
			out := make([]Transaction, len(txs))
			copy(out, txs)
			return out
		}
		day := *explicit
		keep = func(t Transaction) bool { return sameDay(t.OccurredAt, day) }
	default:
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}

	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortBy orders txs in place with a stable sort, so equal keys keep
// their original relative order.
func SortBy(txs []Transaction, key SortKey) {
	sort.SliceStable(txs, func(i, j int) bool {
		switch key {
		case Oldest:
			return txs[i].OccurredAt.Before(txs[j].OccurredAt)
		case Highest:
			return txs[i].Total > txs[j].Total
		case Lowest:
			return txs[i].Total < txs[j].Total
		default:
			return txs[i].OccurredAt.After(txs[j].OccurredAt)
		}
	})
}

type Summary struct {
	TotalAmount  int64 `json:"total_amount"`
	Transactions int   `json:"transactions"`
	Average      int64 `json:"average"`
}

// Summarize totals the given transactions. Average is whole Rupiah.
func Summarize(txs []Transaction) Summary {
	s := Summary{Transactions: len(txs)}
	for _, t := range txs {
		s.TotalAmount += t.Total
	}
	if s.Transactions > 0 {
		s.Average = s.TotalAmount / int64(s.Transactions)
	}
	return s
}
