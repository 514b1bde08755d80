// Package cart holds the in-progress sale for one register session.
package cart

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Product is the read-only snapshot the ledger works against. Stock is
// the ceiling on orderable quantity; Price is whole Rupiah.
type Product struct {
	ID       uint
	Name     string
	Category string
	Price    int64
	Stock    int
	Barcode  string
}

// Line is one product entry in the cart with its own quantity.
type Line struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"`
}

func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

type Totals struct {
	Items  int   `json:"total_items"`
	Amount int64 `json:"total_amount"`
}

// Ledger keeps the cart lines in insertion order, one line per product.
// It is not safe for concurrent use; the owner serializes access.
type Ledger struct {
	lines []Line
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (g *Ledger) find(productID uint) int {
	for i := range g.lines {
		if g.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddProduct inserts a new line with quantity 1, or bumps the existing
// line by one. Adding past the product's stock fails with
// ErrInsufficientStock and leaves the cart unchanged.
func (g *Ledger) AddProduct(p Product) error {
	if p.Stock == 0 {
		return fmt.Errorf("%s habis: %w", p.Name, ErrInsufficientStock)
	}

	if i := g.find(p.ID); i >= 0 {
		// the caller just read p from the DB, so its stock supersedes
		// the snapshot taken at first add
		g.lines[i].Stock = p.Stock
		return g.SetQuantity(p.ID, g.lines[i].Quantity+1)
	}

	g.lines = append(g.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		Stock:     p.Stock,
	})
	return nil
}

// SetQuantity replaces a line's quantity. Zero or less removes the
// line; more than the product's stock fails with ErrInsufficientStock.
func (g *Ledger) SetQuantity(productID uint, quantity int) error {
	if quantity <= 0 {
		g.RemoveLine(productID)
		return nil
	}

	i := g.find(productID)
	if i < 0 {
		return nil
	}
	if quantity > g.lines[i].Stock {
		return fmt.Errorf("stok %s hanya %d: %w", g.lines[i].Name, g.lines[i].Stock, ErrInsufficientStock)
	}
	g.lines[i].Quantity = quantity
	return nil
}

// RemoveLine drops the line for productID; no-op if absent.
func (g *Ledger) RemoveLine(productID uint) {
	if i := g.find(productID); i >= 0 {
		g.lines = append(g.lines[:i], g.lines[i+1:]...)
	}
}

func (g *Ledger) Clear() {
	g.lines = nil
}

func (g *Ledger) Len() int {
	return len(g.lines)
}

// Lines returns a copy of the current lines in insertion order.
func (g *Ledger) Lines() []Line {
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

// Totals recomputes item count and amount from the current lines.
func (g *Ledger) Totals() Totals {
	var t Totals
	for _, l := range g.lines {
		t.Items += l.Quantity
		t.Amount += l.Subtotal()
	}
	return t
}
