package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/obitflow/obitflow-backend/internal/signatures"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
)

type testSignaturesService struct {
	sendFn func(ctx context.Context, dto signatures.SendLinkDTO) (string, error)
	calls  int
}

func (s *testSignaturesService) SendSignatureLink(ctx context.Context, dto signatures.SendLinkDTO) (string, error) {
	s.calls++
	if s.sendFn != nil {
		return s.sendFn(ctx, dto)
	}
	return "SM123", nil
}

func TestSendSignatureLinkSuccess(t *testing.T) {
	var got signatures.SendLinkDTO
	svc := &testSignaturesService{
		sendFn: func(ctx context.Context, dto signatures.SendLinkDTO) (string, error) {
			got = dto
			return "SM77", nil
		},
	}

	body := `{"to":"+15550001","signerName":"Martin Voss","deceasedName":"Eleanor Voss","signatureUrl":"https://sign.example.com/r/abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signatures/send", strings.NewReader(body))
	resp := httptest.NewRecorder()
	SendSignatureLink(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusOK)
	if got.To != "+15550001" || got.SignatureURL != "https://sign.example.com/r/abc" {
		t.Fatalf("unexpected dto %+v", got)
	}

	var receipt struct {
		Success    bool   `json:"success"`
		MessageSID string `json:"messageSid"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !receipt.Success || receipt.MessageSID != "SM77" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}

func TestSendSignatureLinkMissingFields(t *testing.T) {
	bodies := map[string]string{
		"to":           `{"signerName":"Martin","deceasedName":"Eleanor","signatureUrl":"https://sign.example.com/r/abc"}`,
		"signerName":   `{"to":"+15550001","deceasedName":"Eleanor","signatureUrl":"https://sign.example.com/r/abc"}`,
		"deceasedName": `{"to":"+15550001","signerName":"Martin","signatureUrl":"https://sign.example.com/r/abc"}`,
		"signatureUrl": `{"to":"+15550001","signerName":"Martin","deceasedName":"Eleanor"}`,
	}
	for missing, body := range bodies {
		svc := &testSignaturesService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/signatures/send", strings.NewReader(body))
		resp := httptest.NewRecorder()
		SendSignatureLink(svc, testLogger())(resp, req)

		requireStatus(t, resp.Code, http.StatusBadRequest)
		if svc.calls != 0 {
			t.Fatalf("service invoked with %s missing", missing)
		}
	}
}

func TestSendSignatureLinkBadBody(t *testing.T) {
	svc := &testSignaturesService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signatures/send", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	SendSignatureLink(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusBadRequest)
	if svc.calls != 0 {
		t.Fatal("service must not be invoked on parse failure")
	}
}

func TestSendSignatureLinkProviderFailure(t *testing.T) {
	svc := &testSignaturesService{
		sendFn: func(ctx context.Context, dto signatures.SendLinkDTO) (string, error) {
			return "", pkgerrors.New(pkgerrors.CodeProviderSend, "message delivery failed")
		},
	}

	body := `{"to":"+15550001","signerName":"Martin","deceasedName":"Eleanor","signatureUrl":"https://sign.example.com/r/abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/signatures/send", strings.NewReader(body))
	resp := httptest.NewRecorder()
	SendSignatureLink(svc, testLogger())(resp, req)

	requireStatus(t, resp.Code, http.StatusInternalServerError)
	var failure struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &failure); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if failure.Error != "Failed to send signature link" || failure.Details == "" {
		t.Fatalf("unexpected failure %+v", failure)
	}
}
