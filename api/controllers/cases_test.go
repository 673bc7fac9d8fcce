package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/api/middleware"
	"github.com/obitflow/obitflow-backend/internal/cases"
)

type testCasesService struct {
	getFn  func(ctx context.Context, homeID, caseID uuid.UUID) (*cases.Case, bool)
	listFn func(ctx context.Context, params cases.ListParams) *cases.ListResult
}

func (s *testCasesService) GetCaseByID(ctx context.Context, homeID, caseID uuid.UUID) (*cases.Case, bool) {
	if s.getFn != nil {
		return s.getFn(ctx, homeID, caseID)
	}
	return nil, false
}

func (s *testCasesService) GetAllCases(ctx context.Context, params cases.ListParams) *cases.ListResult {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &cases.ListResult{Items: []cases.Case{}}
}

func withHome(r *http.Request, homeID string) *http.Request {
	return r.WithContext(middleware.WithHomeID(r.Context(), homeID))
}

func TestGetCaseFound(t *testing.T) {
	homeID := uuid.New()
	caseID := uuid.New()
	svc := &testCasesService{
		getFn: func(ctx context.Context, gotHome, gotCase uuid.UUID) (*cases.Case, bool) {
			if gotHome != homeID || gotCase != caseID {
				t.Fatalf("unexpected lookup home=%s case=%s", gotHome, gotCase)
			}
			return &cases.Case{ID: caseID.String(), CaseNumber: "2026-0101", DeceasedName: "Eleanor Voss"}, true
		},
	}

	req := withHome(httptest.NewRequest(http.MethodGet, "/api/v1/cases/"+caseID.String(), nil), homeID.String())
	req = addRouteParam(req, "caseId", caseID.String())
	resp := httptest.NewRecorder()
	GetCase(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	var envelope struct {
		Data cases.Case `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.CaseNumber != "2026-0101" {
		t.Fatalf("unexpected case %+v", envelope.Data)
	}
}

func TestGetCaseAbsent(t *testing.T) {
	svc := &testCasesService{}
	caseID := uuid.New()
	req := withHome(httptest.NewRequest(http.MethodGet, "/api/v1/cases/"+caseID.String(), nil), uuid.NewString())
	req = addRouteParam(req, "caseId", caseID.String())
	resp := httptest.NewRecorder()
	GetCase(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusNotFound)
}

func TestGetCaseInvalidID(t *testing.T) {
	svc := &testCasesService{}
	req := withHome(httptest.NewRequest(http.MethodGet, "/api/v1/cases/not-a-uuid", nil), uuid.NewString())
	req = addRouteParam(req, "caseId", "not-a-uuid")
	resp := httptest.NewRecorder()
	GetCase(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusBadRequest)
}

func TestGetCaseMissingHomeContext(t *testing.T) {
	svc := &testCasesService{}
	caseID := uuid.New()
	req := addRouteParam(httptest.NewRequest(http.MethodGet, "/api/v1/cases/"+caseID.String(), nil), "caseId", caseID.String())
	resp := httptest.NewRecorder()
	GetCase(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusForbidden)
}

func TestListCasesPassesQuery(t *testing.T) {
	homeID := uuid.New()
	var gotParams cases.ListParams
	svc := &testCasesService{
		listFn: func(ctx context.Context, params cases.ListParams) *cases.ListResult {
			gotParams = params
			return &cases.ListResult{
				Items:  []cases.Case{{ID: uuid.NewString(), CaseNumber: "2026-0102"}},
				Cursor: "next-page",
			}
		},
	}

	req := withHome(httptest.NewRequest(http.MethodGet, "/api/v1/cases?limit=5&cursor=abc", nil), homeID.String())
	resp := httptest.NewRecorder()
	ListCases(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	if gotParams.HomeID != homeID || gotParams.Limit != 5 || gotParams.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", gotParams)
	}

	var envelope struct {
		Data cases.ListResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Cursor != "next-page" {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
}

func TestListCasesRejectsBadLimit(t *testing.T) {
	called := false
	svc := &testCasesService{
		listFn: func(ctx context.Context, params cases.ListParams) *cases.ListResult {
			called = true
			return &cases.ListResult{}
		},
	}

	req := withHome(httptest.NewRequest(http.MethodGet, "/api/v1/cases?limit=zero", nil), uuid.NewString())
	resp := httptest.NewRecorder()
	ListCases(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusBadRequest)
	if called {
		t.Fatal("service must not run on invalid limit")
	}
}
