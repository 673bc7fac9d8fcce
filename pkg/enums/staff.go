package enums

// StaffRole identifies the job function of a staff member within a home.
type StaffRole string

const (
	StaffRoleFuneralDirector StaffRole = "funeral-director"
	StaffRoleRemovalTeam     StaffRole = "removal-team"
	StaffRoleEmbalmer        StaffRole = "embalmer"
	StaffRoleOfficeStaff     StaffRole = "office-staff"
)

var validStaffRoles = []StaffRole{
	StaffRoleFuneralDirector,
	StaffRoleRemovalTeam,
	StaffRoleEmbalmer,
	StaffRoleOfficeStaff,
}

// IsValid checks whether the given role matches the canonical enum.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ReceivesCaseAlerts reports whether the role is on the first-call rotation.
// Only directors and the removal team are paged when a new case comes in.
func (r StaffRole) ReceivesCaseAlerts() bool {
	return r == StaffRoleFuneralDirector || r == StaffRoleRemovalTeam
}

// StaffAvailability tracks whether a member can currently take a call.
type StaffAvailability string

const (
	AvailabilityAvailable   StaffAvailability = "available"
	AvailabilityOnCall      StaffAvailability = "on-call"
	AvailabilityUnavailable StaffAvailability = "unavailable"
)

var validAvailabilities = []StaffAvailability{
	AvailabilityAvailable,
	AvailabilityOnCall,
	AvailabilityUnavailable,
}

// IsValid checks whether the given availability matches the canonical enum.
func (a StaffAvailability) IsValid() bool {
	for _, candidate := range validAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}
