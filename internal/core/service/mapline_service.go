package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type MapLineService struct {
	repo   ports.MapLineRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewMapLineService(repo ports.MapLineRepository, logger zerolog.Logger) *MapLineService {
	return &MapLineService{repo: repo, logger: logger, now: time.Now}
}

// CreateMapLine validates both station positions, computes the line length
// and stores the line.
func (s *MapLineService) CreateMapLine(ctx context.Context, input ports.CreateMapLineInput) (*domain.MapLine, error) {
	start := domain.Point{Lat: input.LatSt1, Lon: input.LonSt1}
	end := domain.Point{Lat: input.LatSt2, Lon: input.LonSt2}

	if !start.Valid() || !end.Valid() {
		return nil, domain.ErrInvalidPoint
	}
	if start == end {
		return nil, domain.ErrDegenerateLine
	}

	line := &domain.MapLine{
		ID:        uuid.NewString(),
		Start:     start,
		End:       end,
		LengthKm:  domain.DistanceKm(start, end),
		CreatedBy: input.CreatedBy,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, line); err != nil {
		s.logger.Error().Err(err).Msg("failed to create map line")
		return nil, fmt.Errorf("create map line: %w", err)
	}

	s.logger.Info().
		Str("id", line.ID).
		Str("created_by", line.CreatedBy).
		Float64("length_km", line.LengthKm).
		Msg("map line created")

	return line, nil
}

func (s *MapLineService) GetMapLine(ctx context.Context, id string) (*domain.MapLine, error) {
	line, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get map line: %w", err)
	}
	return line, nil
}

// ListMapLines returns one page of lines. page starts at 1; limit defaults to
// 20 and is capped at 100.
func (s *MapLineService) ListMapLines(ctx context.Context, page, limit int) (*ports.ListMapLinesResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list map lines: %w", err)
	}
	if items == nil {
		items = []*domain.MapLine{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.ListMapLinesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *MapLineService) DeleteMapLine(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete map line: %w", err)
	}
	s.logger.Info().Str("id", id).Msg("map line deleted")
	return nil
}
