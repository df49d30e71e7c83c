package ports

import (
	"context"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

// MapLineRepository defines persistence operations for map lines.
type MapLineRepository interface {
	Create(ctx context.Context, line *domain.MapLine) error
	// FindByID returns domain.ErrMapLineNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.MapLine, error)
	// List returns a page of lines ordered by creation time and the total count.
	List(ctx context.Context, skip, limit int) ([]*domain.MapLine, int64, error)
	// Delete returns domain.ErrMapLineNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

// CreateMapLineInput holds the two station positions of a new line.
type CreateMapLineInput struct {
	LatSt1    float64
	LonSt1    float64
	LatSt2    float64
	LonSt2    float64
	CreatedBy string
}

// ListMapLinesResult is one page of map lines.
type ListMapLinesResult struct {
	Items      []*domain.MapLine
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MapLineService defines use-case operations for map lines.
type MapLineService interface {
	CreateMapLine(ctx context.Context, input CreateMapLineInput) (*domain.MapLine, error)
	GetMapLine(ctx context.Context, id string) (*domain.MapLine, error)
	ListMapLines(ctx context.Context, page, limit int) (*ListMapLinesResult, error)
	DeleteMapLine(ctx context.Context, id string) error
}
