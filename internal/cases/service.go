package cases

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/obitflow/obitflow-backend/pkg/errors"
	"github.com/obitflow/obitflow-backend/pkg/logger"
	"github.com/obitflow/obitflow-backend/pkg/pagination"
)

// Service defines case read operations for detail and list pages.
//
// Lookups never surface storage errors: a missing row and a failing backend
// both come back as an absent result. Page-rendering callers treat the two
// identically, so the distinction is logged here and deliberately not
// returned. See GetCaseByID.
type Service interface {
	GetCaseByID(ctx context.Context, homeID, caseID uuid.UUID) (*Case, bool)
	GetAllCases(ctx context.Context, params ListParams) *ListResult
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// ListParams configures pagination for the case list.
type ListParams struct {
	HomeID uuid.UUID
	Limit  int
	Cursor string
}

// ListResult wraps returned cases and the cursor for the next page.
type ListResult struct {
	Items  []Case `json:"items"`
	Cursor string `json:"cursor"`
}

// NewService wires case repository dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cases repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetCaseByID returns the normalized case, or (nil, false) when the row does
// not exist or the store is unreachable.
func (s *service) GetCaseByID(ctx context.Context, homeID, caseID uuid.UUID) (*Case, bool) {
	if homeID == uuid.Nil || caseID == uuid.Nil {
		return nil, false
	}

	row, err := s.repo.GetByID(ctx, homeID, caseID)
	if err != nil {
		ctx = s.logg.WithCaseID(ctx, caseID.String())
		s.logg.Warn(ctx, "case lookup yielded no data: "+err.Error())
		return nil, false
	}

	normalized := FromModel(row)
	return &normalized, true
}

// GetAllCases returns the home's cases newest-created first. Storage failures
// are logged and collapse to an empty page.
func (s *service) GetAllCases(ctx context.Context, params ListParams) *ListResult {
	empty := &ListResult{Items: []Case{}}
	if params.HomeID == uuid.Nil {
		return empty
	}

	query := listCasesParams{
		HomeID: params.HomeID,
		Limit:  params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			s.logg.Warn(ctx, "invalid case list cursor: "+err.Error())
			return empty
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		s.logg.Warn(ctx, "case list yielded no data: "+err.Error())
		return empty
	}

	items := make([]Case, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}

	result := &ListResult{Items: items}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result
}
