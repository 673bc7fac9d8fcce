package dispatch

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
)

// StaffDirectory yields the phone numbers of staff eligible for case alerts.
type StaffDirectory interface {
	NotifiablePhones(ctx context.Context, homeID uuid.UUID) ([]string, error)
}

// ProfileStore yields the home owner's SMS preferences.
type ProfileStore interface {
	OwnerPreferences(ctx context.Context, homeID uuid.UUID) (*OwnerPreferences, error)
}

// OwnerPreferences mirrors the profile's SMS opt-in settings.
type OwnerPreferences struct {
	SMSEnabled  bool
	PhoneNumber string
}

// ProfileStoreFunc adapts a function to the ProfileStore interface.
type ProfileStoreFunc func(ctx context.Context, homeID uuid.UUID) (*OwnerPreferences, error)

func (f ProfileStoreFunc) OwnerPreferences(ctx context.Context, homeID uuid.UUID) (*OwnerPreferences, error) {
	return f(ctx, homeID)
}

// RecipientResolver produces the final de-duplicated recipient set for a
// fan-out.
type RecipientResolver interface {
	Resolve(ctx context.Context, homeID uuid.UUID) ([]string, error)
}

type resolver struct {
	staff    StaffDirectory
	profiles ProfileStore
}

// NewRecipientResolver composes a resolver from the staff directory and the
// profile store.
func NewRecipientResolver(staff StaffDirectory, profiles ProfileStore) (RecipientResolver, error) {
	if staff == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "staff directory required")
	}
	if profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile store required")
	}
	return &resolver{staff: staff, profiles: profiles}, nil
}

// Resolve unions eligible staff phones with the owner's opted-in number,
// drops empties, and de-duplicates while preserving first-seen order.
func (r *resolver) Resolve(ctx context.Context, homeID uuid.UUID) ([]string, error) {
	if homeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "home id required")
	}

	phones, err := r.staff.NotifiablePhones(ctx, homeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve staff phones")
	}

	prefs, err := r.profiles.OwnerPreferences(ctx, homeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve owner preferences")
	}
	if prefs != nil && prefs.SMSEnabled && prefs.PhoneNumber != "" {
		phones = append(phones, prefs.PhoneNumber)
	}

	seen := make(map[string]struct{}, len(phones))
	recipients := make([]string, 0, len(phones))
	for _, phone := range phones {
		if phone == "" {
			continue
		}
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}
		recipients = append(recipients, phone)
	}
	return recipients, nil
}
