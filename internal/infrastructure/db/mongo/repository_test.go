package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

func TestRoleStore(t *testing.T) {
	mt := newMockT(t)

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.roles", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))
		store := NewRoleStore(mt.DB)

		ok, err := store.RoleExists(context.Background(), "admin")
		if err != nil || !ok {
			t.Fatalf("expected role to exist, got ok=%v err=%v", ok, err)
		}
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.roles", mtest.FirstBatch))
		store := NewRoleStore(mt.DB)

		ok, err := store.RoleExists(context.Background(), "admin")
		if err != nil || ok {
			t.Fatalf("expected role to be missing, got ok=%v err=%v", ok, err)
		}
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		store := NewRoleStore(mt.DB)

		if err := store.CreateRole(context.Background(), "Admin"); !errors.Is(err, domain.ErrRoleExists) {
			t.Fatalf("expected ErrRoleExists, got %v", err)
		}
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewRoleStore(mt.DB)

		if err := store.CreateRole(context.Background(), "Admin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMapLineRepository(t *testing.T) {
	mt := newMockT(t)

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.map_lines", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "l-1"},
			{Key: "start", Value: bson.D{{Key: "lat", Value: 55.7}, {Key: "lon", Value: 37.6}}},
			{Key: "end", Value: bson.D{{Key: "lat", Value: 56.8}, {Key: "lon", Value: 35.9}}},
			{Key: "length_km", Value: 159.5},
			{Key: "created_by", Value: "alice"},
		}))
		repo := NewMapLineRepository(mt.DB)

		l, err := repo.FindByID(context.Background(), "l-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.ID != "l-1" || l.Start.Lat != 55.7 || l.End.Lon != 35.9 || l.CreatedBy != "alice" {
			t.Errorf("unexpected line: %+v", l)
		}
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.map_lines", mtest.FirstBatch))
		repo := NewMapLineRepository(mt.DB)

		if _, err := repo.FindByID(context.Background(), "nope"); !errors.Is(err, domain.ErrMapLineNotFound) {
			t.Fatalf("expected ErrMapLineNotFound, got %v", err)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.map_lines", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
			mtest.CreateCursorResponse(0, "test.map_lines", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "a"}, {Key: "created_at", Value: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}},
				bson.D{{Key: "_id", Value: "b"}, {Key: "created_at", Value: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}},
			),
		)
		repo := NewMapLineRepository(mt.DB)

		lines, total, err := repo.List(context.Background(), 0, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		if len(lines) != 2 || lines[0].ID != "a" || lines[1].ID != "b" {
			t.Errorf("unexpected page: %+v", lines)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewMapLineRepository(mt.DB)

		if err := repo.Delete(context.Background(), "nope"); !errors.Is(err, domain.ErrMapLineNotFound) {
			t.Fatalf("expected ErrMapLineNotFound, got %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewMapLineRepository(mt.DB)

		if err := repo.Delete(context.Background(), "l-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSignInEventRepository_Insert(t *testing.T) {
	mt := newMockT(t)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewSignInEventRepository(mt.DB)

		err := repo.InsertSignInEvent(context.Background(), domain.SignInEvent{
			Username:   "alice",
			Outcome:    domain.SignInSucceeded,
			OccurredAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))
		repo := NewSignInEventRepository(mt.DB)

		err := repo.InsertSignInEvent(context.Background(), domain.SignInEvent{Username: "alice", OccurredAt: time.Now()})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMockT(t)

	mt.Run("all repositories", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)
		err := EnsureIndexes(context.Background(),
			NewCredentialStore(mt.DB),
			NewRoleStore(mt.DB),
			NewMapLineRepository(mt.DB),
			NewSignInEventRepository(mt.DB),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("stops at first failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 85, Name: "IndexOptionsConflict", Message: "conflict"}))
		err := EnsureIndexes(context.Background(), NewRoleStore(mt.DB), NewMapLineRepository(mt.DB))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}
