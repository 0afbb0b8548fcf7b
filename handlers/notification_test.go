package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flynext/models"
	"flynext/services/notification"
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubNotifications struct {
	notification.NotificationService
	unread int64
	hit    bool
	marked []string
}

func (s *stubNotifications) UnreadCount(context.Context, string) (int64, bool, error) {
	return s.unread, s.hit, nil
}

func (s *stubNotifications) MarkRead(_ context.Context, _ string, ids []string) (int64, error) {
	s.marked = ids
	return int64(len(ids)), nil
}

func (s *stubNotifications) List(context.Context, string) ([]models.Notification, error) {
	return []models.Notification{{ID: "n1", UserID: "u1", Message: "hello"}}, nil
}

func notificationRouter(stub *stubNotifications) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	h := &NotificationHandler{Notifications: stub}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(utils.ContextUserID, "u1") })
	r.GET("/badge", h.BadgeHandler)
	r.POST("/read", h.ReadHandler)
	r.GET("/recieve", h.ReceiveHandler)
	return r
}

func TestBadgeHandlerReportsCacheState(t *testing.T) {
	stub := &stubNotifications{unread: 3}
	r := notificationRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/badge", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=30")
	assert.JSONEq(t, `{"unreadCount":3}`, w.Body.String())

	stub.hit = true
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/badge", nil))
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
}

func TestReadHandler(t *testing.T) {
	stub := &stubNotifications{}
	r := notificationRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/read", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/read", strings.NewReader(`{"notificationIds":[]}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"No unread notifications to mark as read"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/read", strings.NewReader(`{"notificationIds":["n1","n2"]}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Notifications marked as read","updatedCount":2}`, w.Body.String())
	assert.Equal(t, []string{"n1", "n2"}, stub.marked)
}
