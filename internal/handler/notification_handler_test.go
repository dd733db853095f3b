package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type fakeUserService struct {
	user entity.User
}

func (f *fakeUserService) GetOrCreateLocalUser(ctx context.Context) (*entity.User, error) {
	return &f.user, nil
}

type fakeInbox struct {
	gotLimit  int
	gotOffset int
	total     int64
}

func (f *fakeInbox) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	f.gotLimit = limit
	f.gotOffset = offset
	return nil, f.total, nil
}

func (f *fakeInbox) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeInbox) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeInbox) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func newTestApp(inbox NotificationInbox) *fiber.App {
	app := fiber.New()
	h := NewNotificationHandler(inbox, &fakeUserService{user: entity.User{Id: uuid.New()}}, nil, nil)
	app.Get("/notifications", h.GetNotifications)
	return app
}

type pageEnvelope struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func TestGetNotificationsZeroLimitFallsBackToDefault(t *testing.T) {
	inbox := &fakeInbox{total: 3}
	app := newTestApp(inbox)

	resp, err := app.Test(httptest.NewRequest("GET", "/notifications?limit=0", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Page != 1 {
		t.Errorf("page = %d, want 1", body.Page)
	}
	if body.Limit != defaultNotificationLimit {
		t.Errorf("limit = %d, want %d", body.Limit, defaultNotificationLimit)
	}
	if inbox.gotLimit != defaultNotificationLimit {
		t.Errorf("service limit = %d, want %d", inbox.gotLimit, defaultNotificationLimit)
	}
}

func TestGetNotificationsNegativeOffsetClamped(t *testing.T) {
	inbox := &fakeInbox{}
	app := newTestApp(inbox)

	resp, err := app.Test(httptest.NewRequest("GET", "/notifications?offset=-5", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if inbox.gotOffset != 0 {
		t.Errorf("service offset = %d, want 0", inbox.gotOffset)
	}
}

func TestGetNotificationsPageMath(t *testing.T) {
	inbox := &fakeInbox{total: 55}
	app := newTestApp(inbox)

	resp, err := app.Test(httptest.NewRequest("GET", "/notifications?limit=20&offset=40", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Page != 3 {
		t.Errorf("page = %d, want 3", body.Page)
	}
	if body.Total != 55 {
		t.Errorf("total = %d, want 55", body.Total)
	}
}
