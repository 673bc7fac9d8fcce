package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/pkg/db/models"
	"github.com/obitflow/obitflow-backend/pkg/enums"
)

// Case is the canonical shape handed to callers. Raw rows from the hosted
// store are sparse; FromModel fills every optional field with its default so
// downstream code never has to nil-check.
type Case struct {
	ID              string         `json:"id"`
	HomeID          uuid.UUID      `json:"homeId"`
	CaseNumber      string         `json:"caseNumber"`
	DeceasedName    string         `json:"deceasedName"`
	CaseType        enums.CaseType `json:"caseType"`
	NextOfKinName   string         `json:"nextOfKinName"`
	LocationOfDeath string         `json:"locationOfDeath"`
	PhotoURL        string         `json:"photoUrl,omitempty"`
	ServiceDate     string         `json:"serviceDate,omitempty"`
	Status          string         `json:"status,omitempty"`
	DateCreated     time.Time      `json:"dateCreated"`
}

// FromModel normalizes a raw row into the canonical Case. It is pure and
// total: sparse rows never cause an error, every missing field gets its
// documented default (case number falls back to the id, missing case types
// become At-Need, a zero created_at becomes the current time).
func FromModel(m *models.Case) Case {
	c := Case{
		ID:              m.ID.String(),
		HomeID:          m.HomeID,
		CaseNumber:      deref(m.CaseNumber),
		DeceasedName:    deref(m.DeceasedName),
		CaseType:        enums.NormalizeCaseType(deref(m.CaseType)),
		NextOfKinName:   deref(m.NextOfKinName),
		LocationOfDeath: deref(m.LocationOfDeath),
		PhotoURL:        deref(m.PhotoURL),
		ServiceDate:     deref(m.ServiceDate),
		Status:          deref(m.Status),
		DateCreated:     m.CreatedAt,
	}
	if c.CaseNumber == "" {
		c.CaseNumber = c.ID
	}
	if c.DateCreated.IsZero() {
		c.DateCreated = time.Now().UTC()
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
