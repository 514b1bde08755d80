package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/models"
	"github.com/wicaksana/tokokasir/internal/pos/history"
	"github.com/wicaksana/tokokasir/internal/pos/payment"
	"github.com/wicaksana/tokokasir/internal/pos/stock"
)

type SalesHandler struct {
	DB *gorm.DB
}

func toHistory(s models.Sale) history.Transaction {
	items := make([]history.Item, len(s.Items))
	for i, it := range s.Items {
		items[i] = history.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		}
	}
	return history.Transaction{
		Code:          s.Code,
		OccurredAt:    s.OccurredAt,
		Items:         items,
		Total:         s.Total,
		PaymentMethod: payment.Method(s.PaymentMethod),
		Status:        history.Status(s.Status),
	}
}

func (h *SalesHandler) loadHistory() ([]history.Transaction, error) {
	var sales []models.Sale
	if err := h.DB.Preload("Items").Order("occurred_at ASC, id ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	txs := make([]history.Transaction, len(sales))
	for i, s := range sales {
		txs[i] = toHistory(s)
	}
	return txs, nil
}

// ListSales filters the sale history by period and orders it for the
// analytics screen.
func (h *SalesHandler) ListSales(c echo.Context) error {
	period := history.Today
	if s := c.QueryParam("period"); s != "" {
		p, err := history.ParsePeriod(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		period = p
	}

	sortKey := history.Newest
	if s := c.QueryParam("sort"); s != "" {
		k, err := history.ParseSortKey(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		sortKey = k
	}

	var explicit *time.Time
	if s := c.QueryParam("date"); s != "" {
		day, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		}
		explicit = &day
	}

	txs, err := h.loadHistory()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	selected := history.Select(txs, period, time.Now(), explicit)
	history.SortBy(selected, sortKey)

	return c.JSON(http.StatusOK, echo.Map{
		"transactions": selected,
		"summary":      history.Summarize(selected),
	})
}

// Dashboard returns the landing-screen stats: today's takings, stock
// health and unread notifications.
func (h *SalesHandler) Dashboard(c echo.Context) error {
	txs, err := h.loadHistory()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	today := history.Select(txs, history.Today, time.Now(), nil)

	var counts []int
	if err := h.DB.Model(&models.Product{}).Pluck("stock", &counts).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var unread int64
	if err := h.DB.Model(&models.Notification{}).Where("read = ?", false).Count(&unread).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"today":                history.Summarize(today),
		"stock":                stock.CountByCategory(counts),
		"unread_notifications": unread,
	})
}
