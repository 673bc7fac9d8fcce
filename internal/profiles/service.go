package profiles

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
)

// NotificationPreferences is the caller-facing view of a profile's SMS
// settings.
type NotificationPreferences struct {
	SMSEnabled  bool   `json:"smsEnabled"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdatePreferencesDTO carries the validated preference update payload.
type UpdatePreferencesDTO struct {
	SMSEnabled  bool    `json:"smsEnabled"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=20"`
}

// Service defines profile preference operations.
type Service interface {
	GetPreferences(ctx context.Context, profileID uuid.UUID) (*NotificationPreferences, error)
	OwnerPreferences(ctx context.Context, homeID uuid.UUID) (*NotificationPreferences, error)
	UpdatePreferences(ctx context.Context, profileID uuid.UUID, dto UpdatePreferencesDTO) error
}

type service struct {
	repo Repository
}

// NewService wires profile dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profiles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetPreferences(ctx context.Context, profileID uuid.UUID) (*NotificationPreferences, error) {
	if profileID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile id required")
	}

	profile, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "profile not found")
	}

	prefs := &NotificationPreferences{SMSEnabled: profile.SMSEnabled}
	if profile.PhoneNumber != nil {
		prefs.PhoneNumber = *profile.PhoneNumber
	}
	return prefs, nil
}

// OwnerPreferences resolves the home owner's preferences for dispatch. A
// missing owner profile reads as opted out rather than an error so a half
// onboarded tenant never blocks staff notifications.
func (s *service) OwnerPreferences(ctx context.Context, homeID uuid.UUID) (*NotificationPreferences, error) {
	if homeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "home id required")
	}

	profile, err := s.repo.GetByHome(ctx, homeID)
	if err != nil {
		return &NotificationPreferences{}, nil
	}

	prefs := &NotificationPreferences{SMSEnabled: profile.SMSEnabled}
	if profile.PhoneNumber != nil {
		prefs.PhoneNumber = *profile.PhoneNumber
	}
	return prefs, nil
}

func (s *service) UpdatePreferences(ctx context.Context, profileID uuid.UUID, dto UpdatePreferencesDTO) error {
	if profileID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "profile id required")
	}

	affected, err := s.repo.UpdatePreferences(ctx, profileID, dto.SMSEnabled, dto.PhoneNumber)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update preferences")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return nil
}
