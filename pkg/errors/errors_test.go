package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeProviderSend, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Errorf("MetadataFor(%s).HTTPStatus = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Wrap(CodeDependency, cause, "send sms")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
	if As(err).Code() != CodeDependency {
		t.Fatalf("unexpected code %s", As(err).Code())
	}
}

func TestAsThroughFmtWrap(t *testing.T) {
	inner := New(CodeNotFound, "case missing")
	outer := fmt.Errorf("loading detail page: %w", inner)
	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed not-found error, got %v", typed)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeInternal, errors.New("root"), "middle")
	dump := Dump(err)
	if dump.Code != CodeInternal {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", dump.Chain)
	}
}
