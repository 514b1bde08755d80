package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/events"
	"github.com/wicaksana/tokokasir/internal/models"
	"github.com/wicaksana/tokokasir/internal/pos/cart"
	"github.com/wicaksana/tokokasir/internal/pos/history"
	"github.com/wicaksana/tokokasir/internal/pos/payment"
	"github.com/wicaksana/tokokasir/internal/pos/stock"
)

// CheckoutHandler owns one in-memory cart ledger per signed-in
// cashier. Carts live only for the session; a finished sale is the
// only thing that reaches the database.
type CheckoutHandler struct {
	DB       *gorm.DB
	Producer *events.Producer

	mu    sync.Mutex
	carts map[uint]*cart.Ledger
}

func NewCheckoutHandler(db *gorm.DB, producer *events.Producer) *CheckoutHandler {
	return &CheckoutHandler{
		DB:       db,
		Producer: producer,
		carts:    make(map[uint]*cart.Ledger),
	}
}

func (h *CheckoutHandler) ledger(userID uint) *cart.Ledger {
	if g, ok := h.carts[userID]; ok {
		return g
	}
	g := cart.NewLedger()
	h.carts[userID] = g
	return g
}

type cartResponse struct {
	Lines  []cart.Line `json:"lines"`
	Totals cart.Totals `json:"totals"`
}

func (h *CheckoutHandler) cartResponse(g *cart.Ledger) cartResponse {
	return cartResponse{Lines: g.Lines(), Totals: g.Totals()}
}

func (h *CheckoutHandler) GetCart(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.ledger(currentUserID(c))
	return c.JSON(http.StatusOK, h.cartResponse(g))
}

func (h *CheckoutHandler) AddItem(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.ledger(currentUserID(c))
	err := g.AddProduct(cart.Product{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Stock:    product.Stock,
		Barcode:  product.Barcode,
	})
	if err != nil {
		if errors.Is(err, cart.ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.cartResponse(g))
}

func (h *CheckoutHandler) UpdateItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.ledger(currentUserID(c))
	if err := g.SetQuantity(uint(id), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.cartResponse(g))
}

func (h *CheckoutHandler) RemoveItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.ledger(currentUserID(c))
	g.RemoveLine(uint(id))
	return c.JSON(http.StatusOK, h.cartResponse(g))
}

func (h *CheckoutHandler) ClearCart(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g := h.ledger(currentUserID(c))
	g.Clear()
	return c.JSON(http.StatusOK, h.cartResponse(g))
}

type receipt struct {
	Code          string         `json:"code"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Items         []cart.Line    `json:"items"`
	TotalItems    int            `json:"total_items"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod payment.Method `json:"payment_method"`
	AmountPaid    int64          `json:"amount_paid"`
	ChangeDue     int64          `json:"change_due"`
}

func newSaleCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRX-" + strings.ToUpper(raw[:8])
}

// Pay settles the cart. Cash must cover the total; QRIS and debit are
// settled by the external terminal once initiated. On success the sale
// is persisted, stock is drained and the cart resets for the next
// customer.
func (h *CheckoutHandler) Pay(c echo.Context) error {
	var req struct {
		Method     string `json:"method"`
		AmountPaid int64  `json:"amount_paid"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	userID := currentUserID(c)
	g := h.ledger(userID)

	if g.Len() == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, cart.ErrEmptyCart.Error())
	}

	totals := g.Totals()
	if !payment.CanSettle(method, req.AmountPaid, totals.Amount) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":     payment.ErrInsufficientPayment.Error(),
			"shortfall": payment.Shortfall(req.AmountPaid, totals.Amount),
		})
	}

	var amountPaid, changeDue int64
	if method == payment.Cash {
		amountPaid = req.AmountPaid
		changeDue = payment.ChangeDue(req.AmountPaid, totals.Amount)
	}

	lines := g.Lines()
	sale := models.Sale{
		Code:          newSaleCode(),
		UserID:        userID,
		Total:         totals.Amount,
		PaymentMethod: string(method),
		AmountPaid:    amountPaid,
		ChangeDue:     changeDue,
		Status:        string(history.Completed),
		OccurredAt:    time.Now(),
	}

	var drained []models.Product
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", l.ProductID, l.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", l.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("stok %s tidak cukup: %w", l.Name, cart.ErrInsufficientStock)
			}
		}

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		for _, l := range lines {
			item := models.SaleItem{
				SaleID:      sale.ID,
				ProductID:   l.ProductID,
				ProductName: l.Name,
				Price:       l.Price,
				Quantity:    l.Quantity,
				Subtotal:    l.Subtotal(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		for _, l := range lines {
			var p models.Product
			if err := tx.First(&p, l.ProductID).Error; err != nil {
				return err
			}
			switch stock.Classify(p.Stock) {
			case stock.Empty, stock.Low:
				drained = append(drained, p)
			}
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, cart.ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, txErr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	for _, p := range drained {
		h.notifyLowStock(c, p)
	}

	g.Clear()

	publish(c, h.Producer, events.TopicSaleEvents, sale.Code, map[string]any{
		"type":           "sale_completed",
		"code":           sale.Code,
		"user_id":        userID,
		"total":          sale.Total,
		"payment_method": sale.PaymentMethod,
	})

	return c.JSON(http.StatusOK, receipt{
		Code:          sale.Code,
		OccurredAt:    sale.OccurredAt,
		Items:         lines,
		TotalItems:    totals.Items,
		TotalAmount:   totals.Amount,
		PaymentMethod: method,
		AmountPaid:    amountPaid,
		ChangeDue:     changeDue,
	})
}

func (h *CheckoutHandler) notifyLowStock(c echo.Context, p models.Product) {
	cat := stock.Classify(p.Stock)

	n := models.Notification{
		Type: "stock",
	}
	if cat == stock.Empty {
		n.Title = "Stok Habis"
		n.Message = fmt.Sprintf("%s sudah habis", p.Name)
	} else {
		n.Title = "Stok Menipis"
		n.Message = fmt.Sprintf("Stok %s tersisa %d", p.Name, p.Stock)
	}
	if err := h.DB.Create(&n).Error; err != nil {
		c.Logger().Errorf("notification create error: %v", err)
	}

	publish(c, h.Producer, events.TopicStockEvents, fmt.Sprint(p.ID), map[string]any{
		"type":       "stock_drained",
		"product_id": p.ID,
		"stock":      p.Stock,
		"category":   cat,
	})
}
