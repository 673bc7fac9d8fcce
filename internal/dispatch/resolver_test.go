package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
)

type fakeDirectory struct {
	phones []string
	err    error
}

func (f *fakeDirectory) NotifiablePhones(ctx context.Context, homeID uuid.UUID) ([]string, error) {
	return f.phones, f.err
}

type fakeProfiles struct {
	prefs *OwnerPreferences
	err   error
}

func (f *fakeProfiles) OwnerPreferences(ctx context.Context, homeID uuid.UUID) (*OwnerPreferences, error) {
	return f.prefs, f.err
}

func TestResolver_DeduplicatesAndDropsEmpties(t *testing.T) {
	res, err := NewRecipientResolver(
		&fakeDirectory{phones: []string{"+15550001", "+15550002", "+15550001", ""}},
		&fakeProfiles{prefs: &OwnerPreferences{SMSEnabled: true, PhoneNumber: "+15550002"}},
	)
	if err != nil {
		t.Fatalf("NewRecipientResolver: %v", err)
	}

	got, err := res.Resolve(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"+15550001", "+15550002"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolver_OwnerAddedOnlyWhenOptedIn(t *testing.T) {
	tests := []struct {
		name  string
		prefs *OwnerPreferences
		want  int
	}{
		{"opted in with phone", &OwnerPreferences{SMSEnabled: true, PhoneNumber: "+15550099"}, 2},
		{"opted out", &OwnerPreferences{SMSEnabled: false, PhoneNumber: "+15550099"}, 1},
		{"opted in without phone", &OwnerPreferences{SMSEnabled: true}, 1},
		{"nil prefs", nil, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := NewRecipientResolver(
				&fakeDirectory{phones: []string{"+15550001"}},
				&fakeProfiles{prefs: tc.prefs},
			)
			got, err := res.Resolve(context.Background(), uuid.New())
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("got %v, want %d recipients", got, tc.want)
			}
		})
	}
}

func TestResolver_DirectoryErrorPropagates(t *testing.T) {
	res, _ := NewRecipientResolver(
		&fakeDirectory{err: errors.New("connection refused")},
		&fakeProfiles{},
	)

	_, err := res.Resolve(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
