package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/internal/notifications"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/db/models"
)

type testNotificationsService struct {
	listFn        func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error)
	markReadFn    func(ctx context.Context, homeID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, homeID uuid.UUID) (int64, error)
}

func (s *testNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &notifications.ListResult{Items: []models.Notification{}}, nil
}

func (s *testNotificationsService) MarkRead(ctx context.Context, homeID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, homeID, notificationID)
	}
	return nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, homeID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, homeID)
	}
	return 0, nil
}

func TestListNotificationsPassesQuery(t *testing.T) {
	homeID := uuid.New()
	var gotParams notifications.ListParams
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
			gotParams = params
			return &notifications.ListResult{Items: []models.Notification{{ID: uuid.New()}}, Cursor: "next"}, nil
		},
	}

	req := withHome(httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=10&unreadOnly=true&cursor=abc", nil), homeID.String())
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	if gotParams.HomeID != homeID || gotParams.Limit != 10 || !gotParams.UnreadOnly || gotParams.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", gotParams)
	}

	var envelope struct {
		Data notifications.ListResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Cursor != "next" {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	svc := &testNotificationsService{
		markReadFn: func(ctx context.Context, homeID, notificationID uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		},
	}

	notificationID := uuid.New()
	req := withHome(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", nil), uuid.NewString())
	req = addRouteParam(req, "notificationId", notificationID.String())
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusNotFound)
}

func TestMarkNotificationReadInvalidID(t *testing.T) {
	svc := &testNotificationsService{}
	req := withHome(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/nope/read", nil), uuid.NewString())
	req = addRouteParam(req, "notificationId", "nope")
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusBadRequest)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	svc := &testNotificationsService{
		markAllReadFn: func(ctx context.Context, homeID uuid.UUID) (int64, error) {
			return 4, nil
		},
	}

	req := withHome(httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil), uuid.NewString())
	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["read"] != 4 {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}
