package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/models"
)

type NotificationHandler struct {
	DB *gorm.DB
}

func (h *NotificationHandler) List(c echo.Context) error {
	q := h.DB.Model(&models.Notification{}).Order("created_at DESC, id DESC")
	if c.QueryParam("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var items []models.Notification
	if err := q.Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res := h.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"read": id})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.DB.Model(&models.Notification{}).Where("read = ?", false).Update("read", true).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all read"})
}
