package staff

import (
	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/enums"
)

// CreateStaffDTO carries the validated payload for adding a directory entry.
type CreateStaffDTO struct {
	HomeID       uuid.UUID               `json:"-"`
	FullName     string                  `json:"fullName" validate:"required,min=1,max=120"`
	Role         enums.StaffRole         `json:"role" validate:"required"`
	Availability enums.StaffAvailability `json:"availability" validate:"omitempty"`
	Phone        string                  `json:"phone" validate:"omitempty,e164"`
}

// ToModel maps the DTO onto a new staff member row.
func (d CreateStaffDTO) ToModel() *models.StaffMember {
	availability := d.Availability
	if availability == "" {
		availability = enums.AvailabilityAvailable
	}
	m := &models.StaffMember{
		HomeID:       d.HomeID,
		FullName:     d.FullName,
		Role:         d.Role,
		Availability: availability,
	}
	if d.Phone != "" {
		phone := d.Phone
		m.Phone = &phone
	}
	return m
}

// UpdateStaffDTO carries a partial update. Nil fields are left untouched.
type UpdateStaffDTO struct {
	FullName     *string                  `json:"fullName" validate:"omitempty,min=1,max=120"`
	Role         *enums.StaffRole         `json:"role" validate:"omitempty"`
	Availability *enums.StaffAvailability `json:"availability" validate:"omitempty"`
	Phone        *string                  `json:"phone" validate:"omitempty"`
}

// Changes flattens the set fields into a column map for the repository.
func (d UpdateStaffDTO) Changes() map[string]any {
	changes := map[string]any{}
	if d.FullName != nil {
		changes["full_name"] = *d.FullName
	}
	if d.Role != nil {
		changes["role"] = *d.Role
	}
	if d.Availability != nil {
		changes["availability"] = *d.Availability
	}
	if d.Phone != nil {
		changes["phone"] = *d.Phone
	}
	return changes
}
