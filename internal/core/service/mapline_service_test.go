package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubMapLineRepo struct {
	byID      map[string]*domain.MapLine
	lastSkip  int
	lastLimit int
	createErr error
}

func newStubMapLineRepo() *stubMapLineRepo {
	return &stubMapLineRepo{byID: make(map[string]*domain.MapLine)}
}

func (r *stubMapLineRepo) Create(_ context.Context, l *domain.MapLine) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubMapLineRepo) FindByID(_ context.Context, id string) (*domain.MapLine, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMapLineNotFound
	}
	clone := *l
	return &clone, nil
}

// List mirrors the Mongo sort on created_at.
func (r *stubMapLineRepo) List(_ context.Context, skip, limit int) ([]*domain.MapLine, int64, error) {
	r.lastSkip, r.lastLimit = skip, limit

	all := make([]*domain.MapLine, 0, len(r.byID))
	for _, l := range r.byID {
		clone := *l
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (r *stubMapLineRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMapLineNotFound
	}
	delete(r.byID, id)
	return nil
}

func moscowTver() ports.CreateMapLineInput {
	return ports.CreateMapLineInput{
		LatSt1: 55.7766, LonSt1: 37.6556, // Leningradsky station
		LatSt2: 56.8346, LonSt2: 35.9083, // Tver
		CreatedBy: "alice",
	}
}

// ---------------------------------------------------------------------------
// CreateMapLine
// ---------------------------------------------------------------------------

func TestMapLineService_Create_Success(t *testing.T) {
	repo := newStubMapLineRepo()
	svc := NewMapLineService(repo, zerolog.Nop())

	line, err := svc.CreateMapLine(context.Background(), moscowTver())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.ID == "" {
		t.Error("ID must be assigned")
	}
	if line.CreatedBy != "alice" {
		t.Errorf("CreatedBy: want alice, got %q", line.CreatedBy)
	}
	if line.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
	// Great-circle Moscow to Tver is about 159.5 km.
	if line.LengthKm < 155 || line.LengthKm > 165 {
		t.Errorf("LengthKm out of expected range: %f", line.LengthKm)
	}
	if _, ok := repo.byID[line.ID]; !ok {
		t.Error("line not persisted")
	}
}

func TestMapLineService_Create_ZeroCoordinatesAreLegal(t *testing.T) {
	svc := NewMapLineService(newStubMapLineRepo(), zerolog.Nop())

	line, err := svc.CreateMapLine(context.Background(), ports.CreateMapLineInput{
		LatSt1: 0, LonSt1: 0, LatSt2: 0, LonSt2: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One degree of longitude on the equator.
	if math.Abs(line.LengthKm-111.195) > 0.01 {
		t.Errorf("expected ~111.195 km, got %f", line.LengthKm)
	}
}

func TestMapLineService_Create_Validation(t *testing.T) {
	cases := []struct {
		name  string
		input ports.CreateMapLineInput
		want  error
	}{
		{"lat too high", ports.CreateMapLineInput{LatSt1: 90.1, LonSt1: 0, LatSt2: 1, LonSt2: 1}, domain.ErrInvalidPoint},
		{"lat too low", ports.CreateMapLineInput{LatSt1: 0, LonSt1: 0, LatSt2: -91, LonSt2: 1}, domain.ErrInvalidPoint},
		{"lon too high", ports.CreateMapLineInput{LatSt1: 0, LonSt1: 180.5, LatSt2: 1, LonSt2: 1}, domain.ErrInvalidPoint},
		{"lon too low", ports.CreateMapLineInput{LatSt1: 0, LonSt1: 0, LatSt2: 1, LonSt2: -181}, domain.ErrInvalidPoint},
		{"degenerate", ports.CreateMapLineInput{LatSt1: 55.1, LonSt1: 37.2, LatSt2: 55.1, LonSt2: 37.2}, domain.ErrDegenerateLine},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubMapLineRepo()
			svc := NewMapLineService(repo, zerolog.Nop())

			_, err := svc.CreateMapLine(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(repo.byID) != 0 {
				t.Error("invalid line must not be stored")
			}
		})
	}
}

func TestMapLineService_Create_RepoError(t *testing.T) {
	repo := newStubMapLineRepo()
	repo.createErr = errors.New("db unavailable")
	svc := NewMapLineService(repo, zerolog.Nop())

	_, err := svc.CreateMapLine(context.Background(), moscowTver())
	if !errors.Is(err, repo.createErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get / Delete
// ---------------------------------------------------------------------------

func TestMapLineService_GetAndDelete(t *testing.T) {
	repo := newStubMapLineRepo()
	svc := NewMapLineService(repo, zerolog.Nop())

	created, err := svc.CreateMapLine(context.Background(), moscowTver())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetMapLine(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Start != created.Start || got.End != created.End {
		t.Errorf("unexpected line: %+v", got)
	}

	if err := svc.DeleteMapLine(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetMapLine(context.Background(), created.ID); !errors.Is(err, domain.ErrMapLineNotFound) {
		t.Errorf("expected ErrMapLineNotFound after delete, got %v", err)
	}
	if err := svc.DeleteMapLine(context.Background(), created.ID); !errors.Is(err, domain.ErrMapLineNotFound) {
		t.Errorf("second delete: expected ErrMapLineNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListMapLines
// ---------------------------------------------------------------------------

func seedMapLines(repo *stubMapLineRepo, n int) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		repo.byID[id] = &domain.MapLine{
			ID:        id,
			Start:     domain.Point{Lat: float64(i), Lon: 0},
			End:       domain.Point{Lat: float64(i), Lon: 1},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
}

func TestMapLineService_List_Defaults(t *testing.T) {
	repo := newStubMapLineRepo()
	seedMapLines(repo, 3)
	svc := NewMapLineService(repo, zerolog.Nop())

	res, err := svc.ListMapLines(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.Limit != defaultPageLimit {
		t.Errorf("expected page=1 limit=%d, got page=%d limit=%d", defaultPageLimit, res.Page, res.Limit)
	}
	if repo.lastSkip != 0 || repo.lastLimit != defaultPageLimit {
		t.Errorf("unexpected repo args skip=%d limit=%d", repo.lastSkip, repo.lastLimit)
	}
	if res.Total != 3 || len(res.Items) != 3 || res.TotalPages != 1 {
		t.Errorf("unexpected result: total=%d items=%d pages=%d", res.Total, len(res.Items), res.TotalPages)
	}
}

func TestMapLineService_List_CapsLimit(t *testing.T) {
	repo := newStubMapLineRepo()
	svc := NewMapLineService(repo, zerolog.Nop())

	res, err := svc.ListMapLines(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Limit != maxPageLimit || repo.lastLimit != maxPageLimit {
		t.Errorf("limit must be capped at %d, got %d", maxPageLimit, res.Limit)
	}
	if res.Items == nil {
		t.Error("empty page must be an empty slice, not nil")
	}
	if res.TotalPages != 0 {
		t.Errorf("expected 0 pages for empty collection, got %d", res.TotalPages)
	}
}

func TestMapLineService_List_SecondPage(t *testing.T) {
	repo := newStubMapLineRepo()
	seedMapLines(repo, 5)
	svc := NewMapLineService(repo, zerolog.Nop())

	res, err := svc.ListMapLines(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastSkip != 2 {
		t.Errorf("expected skip=2, got %d", repo.lastSkip)
	}
	if len(res.Items) != 2 || res.Items[0].ID != "c" || res.Items[1].ID != "d" {
		t.Errorf("unexpected page content: %+v", res.Items)
	}
	if res.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", res.TotalPages)
	}
}
