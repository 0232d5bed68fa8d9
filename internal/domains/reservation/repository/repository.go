package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacy/infras/otel"
	"spacy/infras/postgres"
	"spacy/internal/domains/reservation/model"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	"spacy/shared/logger"
	gRepo "spacy/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	argWindowStart   = "window_start"
	argWindowEnd     = "window_end"
	argCurrentStatus = "current_status"

	queryLockSpace = "SELECT pg_advisory_xact_lock(hashtext($1))"
)

// ErrSlotTaken is returned when a holding reservation already overlaps the requested window.
var ErrSlotTaken = errors.New("time slot already taken")

type Reservation interface {
	InsertIfAvailable(ctx context.Context, reservation model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	BookedSpaceIDs(ctx context.Context, start, end time.Time) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterOverlapping matches reservations in statuses whose interval intersects [start, end).
// An empty spaceID matches every space.
func FilterOverlapping(spaceID string, start, end time.Time, statuses []model.Status) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    statuses,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStartTime,
			ArgName:  argWindowEnd,
			Value:    end,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldEndTime,
			ArgName:  argWindowStart,
			Value:    start,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	}

	if spaceID != "" {
		filters = append([]any{gDto.Filter{
			Field:    model.FieldSpaceID,
			Value:    spaceID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}}, filters...)
	}

	return gDto.FilterGroup{Filters: filters}
}

// FilterByIDAndStatus matches one reservation only while it is still in status.
func FilterByIDAndStatus(id string, status model.Status) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				ArgName:  argCurrentStatus,
				Value:    status,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// InsertIfAvailable serializes creation per space with a transaction-scoped advisory lock,
// so the overlap check and the insert see every committed or in-flight holder.
func (r *repositoryImpl) InsertIfAvailable(ctx context.Context, reservation model.Reservation) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertIfAvailable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, queryLockSpace, reservation.SpaceID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to lock space: %w", err)
		}

		taken, err := r.ExistTx(ctx, tx, FilterOverlapping(reservation.SpaceID, reservation.StartTime, reservation.EndTime, model.HoldingStatuses))
		if err != nil {
			return err
		}

		if taken {
			return ErrSlotTaken
		}

		return r.InsertTx(ctx, tx, reservation)
	})

	if postgres.IsExclusionViolation(err) {
		return ErrSlotTaken
	}

	return err
}

// BookedSpaceIDs lists the distinct spaces holding a confirmed or checked-in reservation across [start, end).
func (r *repositoryImpl) BookedSpaceIDs(ctx context.Context, start, end time.Time) (ids []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.BookedSpaceIDs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	rows, err := r.GetAll(ctx, gDto.QueryParams{}, FilterOverlapping("", start, end, model.BookedStatuses), model.FieldSpaceID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	ids = []string{}

	for _, row := range rows {
		if _, ok := seen[row.SpaceID]; ok {
			continue
		}

		seen[row.SpaceID] = struct{}{}
		ids = append(ids, row.SpaceID)
	}

	return ids, nil
}
