package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wicaksana/tokokasir/internal/models"
)

func seedNotifications(t *testing.T, env *testEnv) []models.Notification {
	t.Helper()

	now := time.Now()
	items := []models.Notification{
		{Title: "Stok Habis", Message: "Gula Pasir 1kg habis", Type: "out_of_stock", CreatedAt: now.Add(-2 * time.Hour)},
		{Title: "Stok Menipis", Message: "Minyak Goreng 1L tersisa 5", Type: "low_stock", CreatedAt: now.Add(-1 * time.Hour)},
		{Title: "Stok Menipis", Message: "Sabun Mandi Lifebuoy tersisa 8", Type: "low_stock", Read: true, CreatedAt: now},
	}
	for i := range items {
		require.NoError(t, env.DB.Create(&items[i]).Error)
	}
	return items
}

func TestNotification_List(t *testing.T) {
	env := newTestEnv(t)
	h := &NotificationHandler{DB: env.DB}
	seedNotifications(t, env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/notifications", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 3)
	// newest first
	assert.Equal(t, "Sabun Mandi Lifebuoy tersisa 8", items[0].Message)
	assert.Equal(t, "Gula Pasir 1kg habis", items[2].Message)
}

func TestNotification_List_UnreadOnly(t *testing.T) {
	env := newTestEnv(t)
	h := &NotificationHandler{DB: env.DB}
	seedNotifications(t, env)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/notifications?unread=true", nil)
	require.NoError(t, h.List(c))

	var items []models.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	for _, n := range items {
		assert.False(t, n.Read)
	}
}

func TestNotification_MarkRead(t *testing.T) {
	env := newTestEnv(t)
	h := &NotificationHandler{DB: env.DB}
	seeded := seedNotifications(t, env)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/notifications/1/read", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(seeded[0].ID))
	require.NoError(t, h.MarkRead(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Notification
	require.NoError(t, env.DB.First(&stored, seeded[0].ID).Error)
	assert.True(t, stored.Read)
}

func TestNotification_MarkRead_NotFound(t *testing.T) {
	env := newTestEnv(t)
	h := &NotificationHandler{DB: env.DB}
	seedNotifications(t, env)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/notifications/999/read", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")
	err := h.MarkRead(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestNotification_MarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	h := &NotificationHandler{DB: env.DB}
	seedNotifications(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	require.NoError(t, h.MarkAllRead(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var unread int64
	require.NoError(t, env.DB.Model(&models.Notification{}).Where("read = ?", false).Count(&unread).Error)
	assert.Zero(t, unread)
}
