package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/internal/cases"
	"github.com/obitflow/obitflow-backend/internal/dispatch"
	"github.com/obitflow/obitflow-backend/internal/notifications"
	"github.com/obitflow/obitflow-backend/internal/profiles"
	"github.com/obitflow/obitflow-backend/internal/signatures"
	"github.com/obitflow/obitflow-backend/internal/staff"
	"github.com/obitflow/obitflow-backend/internal/webhooks/dropboxsign"
	pkgauth "github.com/obitflow/obitflow-backend/pkg/auth"
	"github.com/obitflow/obitflow-backend/pkg/config"
	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCasesService struct{}

func (stubCasesService) GetCaseByID(ctx context.Context, homeID, caseID uuid.UUID) (*cases.Case, bool) {
	return &cases.Case{ID: caseID.String()}, true
}

func (stubCasesService) GetAllCases(ctx context.Context, params cases.ListParams) *cases.ListResult {
	return &cases.ListResult{Items: []cases.Case{}}
}

type stubStaffService struct{}

func (stubStaffService) Create(ctx context.Context, dto staff.CreateStaffDTO) (*models.StaffMember, error) {
	return &models.StaffMember{ID: uuid.New()}, nil
}

func (stubStaffService) Get(ctx context.Context, homeID, memberID uuid.UUID) (*models.StaffMember, error) {
	return &models.StaffMember{ID: memberID}, nil
}

func (stubStaffService) List(ctx context.Context, homeID uuid.UUID) ([]models.StaffMember, error) {
	return []models.StaffMember{}, nil
}

func (stubStaffService) Update(ctx context.Context, homeID, memberID uuid.UUID, dto staff.UpdateStaffDTO) error {
	return nil
}

func (stubStaffService) Delete(ctx context.Context, homeID, memberID uuid.UUID) error {
	return nil
}

func (stubStaffService) NotifiablePhones(ctx context.Context, homeID uuid.UUID) ([]string, error) {
	return nil, nil
}

type stubProfilesService struct{}

func (stubProfilesService) GetPreferences(ctx context.Context, profileID uuid.UUID) (*profiles.NotificationPreferences, error) {
	return &profiles.NotificationPreferences{}, nil
}

func (stubProfilesService) OwnerPreferences(ctx context.Context, homeID uuid.UUID) (*profiles.NotificationPreferences, error) {
	return &profiles.NotificationPreferences{}, nil
}

func (stubProfilesService) UpdatePreferences(ctx context.Context, profileID uuid.UUID, dto profiles.UpdatePreferencesDTO) error {
	return nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, homeID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, homeID uuid.UUID) (int64, error) {
	return 0, nil
}

type stubDispatchService struct{}

func (stubDispatchService) NotifyStaff(ctx context.Context, phone string, req dispatch.NotificationRequest) (string, error) {
	return "SM1", nil
}

func (stubDispatchService) NotifyPhones(ctx context.Context, phones []string, req dispatch.NotificationRequest) *dispatch.FanoutResult {
	return &dispatch.FanoutResult{}
}

func (stubDispatchService) NotifyAllStaffNewCase(ctx context.Context, homeID uuid.UUID, data dispatch.NewCaseData) (*dispatch.FanoutResult, error) {
	return &dispatch.FanoutResult{}, nil
}

func (stubDispatchService) NotifyAllStaffDocumentSigned(ctx context.Context, homeID uuid.UUID, data dispatch.DocumentSignedData) (*dispatch.FanoutResult, error) {
	return &dispatch.FanoutResult{}, nil
}

type stubSignaturesService struct{}

func (stubSignaturesService) SendSignatureLink(ctx context.Context, dto signatures.SendLinkDTO) (string, error) {
	return "SM1", nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "obitflow-auth"},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	relay, err := dropboxsign.NewService(dropboxsign.ServiceParams{
		Dispatcher: stubDispatchService{},
		Logger:     logg,
	})
	if err != nil {
		t.Fatalf("build relay: %v", err)
	}

	return NewRouter(RouterParams{
		Config:        cfg,
		Logger:        logg,
		DB:            stubPinger{},
		Redis:         stubPinger{},
		Cases:         stubCasesService{},
		Staff:         stubStaffService{},
		Profiles:      stubProfilesService{},
		Notifications: stubNotificationsService{},
		Dispatch:      stubDispatchService{},
		Signatures:    stubSignaturesService{},
		SignWebhook:   relay,
	})
}

func buildToken(t *testing.T, cfg *config.Config, homeID *uuid.UUID) string {
	t.Helper()
	claims := pkgauth.AccessTokenClaims{
		UserID: uuid.New(),
		HomeID: homeID,
		Role:   "owner",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsTokenWithoutHome(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without home claim got %d", resp.Code)
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)
	homeID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, &homeID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for authorized list got %d", resp.Code)
	}
}

func TestWebhookRouteIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())
	body := `{"event":{"event_type":"signature_request_sent"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/dropbox-sign", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public webhook got %d", resp.Code)
	}
	var ack map[string]bool
	if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if !ack["success"] {
		t.Fatalf("unexpected ack %v", ack)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if got := resp.Header().Get("X-ObitFlow-Env"); got != "test" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}
