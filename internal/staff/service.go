package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/enums"
	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
)

// Service defines staff directory operations.
type Service interface {
	Create(ctx context.Context, dto CreateStaffDTO) (*models.StaffMember, error)
	Get(ctx context.Context, homeID, memberID uuid.UUID) (*models.StaffMember, error)
	List(ctx context.Context, homeID uuid.UUID) ([]models.StaffMember, error)
	Update(ctx context.Context, homeID, memberID uuid.UUID, dto UpdateStaffDTO) error
	Delete(ctx context.Context, homeID, memberID uuid.UUID) error
	NotifiablePhones(ctx context.Context, homeID uuid.UUID) ([]string, error)
}

type service struct {
	repo Repository
}

// NewService wires staff directory dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "staff repository required")
	}
	return &service{repo: repo}, nil
}

// Eligible reports whether the member should receive case alert SMS: on the
// first-call rotation, not marked unavailable, and reachable by phone.
func Eligible(m models.StaffMember) bool {
	if !m.Role.ReceivesCaseAlerts() {
		return false
	}
	if m.Availability == enums.AvailabilityUnavailable {
		return false
	}
	return m.Phone != nil && *m.Phone != ""
}

func (s *service) Create(ctx context.Context, dto CreateStaffDTO) (*models.StaffMember, error) {
	if dto.HomeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "home id required")
	}
	if !dto.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown staff role")
	}
	if dto.Availability != "" && !dto.Availability.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown availability")
	}

	member := dto.ToModel()
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create staff member")
	}
	return member, nil
}

func (s *service) Get(ctx context.Context, homeID, memberID uuid.UUID) (*models.StaffMember, error) {
	if homeID == uuid.Nil || memberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "home id and member id required")
	}

	member, err := s.repo.GetByID(ctx, homeID, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "staff member not found")
	}
	return member, nil
}

func (s *service) List(ctx context.Context, homeID uuid.UUID) ([]models.StaffMember, error) {
	if homeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "home id required")
	}

	members, err := s.repo.ListByHome(ctx, homeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list staff")
	}
	return members, nil
}

func (s *service) Update(ctx context.Context, homeID, memberID uuid.UUID, dto UpdateStaffDTO) error {
	if homeID == uuid.Nil || memberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "home id and member id required")
	}
	if dto.Role != nil && !dto.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown staff role")
	}
	if dto.Availability != nil && !dto.Availability.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown availability")
	}

	changes := dto.Changes()
	if len(changes) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, homeID, memberID, changes)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update staff member")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "staff member not found")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, homeID, memberID uuid.UUID) error {
	if homeID == uuid.Nil || memberID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "home id and member id required")
	}

	affected, err := s.repo.Delete(ctx, homeID, memberID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete staff member")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "staff member not found")
	}
	return nil
}

// NotifiablePhones returns the phone numbers of every eligible member, in
// directory order, duplicates included. De-duplication happens when the
// dispatcher merges this list with the profile number.
func (s *service) NotifiablePhones(ctx context.Context, homeID uuid.UUID) ([]string, error) {
	members, err := s.List(ctx, homeID)
	if err != nil {
		return nil, err
	}

	phones := make([]string, 0, len(members))
	for _, m := range members {
		if Eligible(m) {
			phones = append(phones, *m.Phone)
		}
	}
	return phones, nil
}
