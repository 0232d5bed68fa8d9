package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"spacy/infras/otel/mocks"
	"spacy/infras/postgres"
	"spacy/internal/domains/reservation/model"
	"spacy/internal/domains/reservation/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func newReservation() model.Reservation {
	start := time.Date(2030, 1, 10, 10, 0, 0, 0, time.UTC)

	return model.Reservation{
		ID:          "r-1",
		UserID:      "user-1",
		SpaceID:     "space-1",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		TotalAmount: 100,
		Status:      model.StatusPending,
	}
}

var (
	lockQuery   = regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")
	existQuery  = regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM reservations")
	insertQuery = regexp.QuoteMeta("INSERT INTO reservations")
)

func TestInsertIfAvailable(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "free slot",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(lockQuery).WithArgs("space-1").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectPrepare(existQuery).
					ExpectQuery().
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "overlapping holder",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(lockQuery).WithArgs("space-1").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectPrepare(existQuery).
					ExpectQuery().
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: repository.ErrSlotTaken,
		},
		{
			name: "exclusion constraint backstop",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(lockQuery).WithArgs("space-1").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectPrepare(existQuery).
					ExpectQuery().
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(insertQuery).WillReturnError(&pq.Error{Code: "23P01"})
				mock.ExpectRollback()
			},
			wantErr: repository.ErrSlotTaken,
		},
		{
			name: "lock failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(lockQuery).WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: errors.New("failed to lock space: connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			err := repo.InsertIfAvailable(context.Background(), newReservation())

			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, repository.ErrSlotTaken):
				assert.ErrorIs(t, err, repository.ErrSlotTaken)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookedSpaceIDs(t *testing.T) {
	repo, mock := newRepository(t)
	start := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT reservations.space_id FROM reservations")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"space_id"}).AddRow("space-1").AddRow("space-2").AddRow("space-1"))

	ids, err := repo.BookedSpaceIDs(context.Background(), start, start.Add(2*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, []string{"space-1", "space-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterOverlapping(t *testing.T) {
	start := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	filter := repository.FilterOverlapping("space-1", start, end, model.HoldingStatuses)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "reservations.space_id = :space_id")
	assert.Contains(t, where, "reservations.status IN (:status_0, :status_1, :status_2)")
	assert.Contains(t, where, "reservations.start_time < :window_end")
	assert.Contains(t, where, "reservations.end_time > :window_start")
	assert.Equal(t, end, args["window_end"])
	assert.Equal(t, start, args["window_start"])

	anySpace := repository.FilterOverlapping("", start, end, model.BookedStatuses)
	where, _ = anySpace.GetWhereClause()

	assert.NotContains(t, where, "space_id")
}

func TestFilterByIDAndStatus(t *testing.T) {
	filter := repository.FilterByIDAndStatus("r-1", model.StatusPending)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(reservations.id = :id AND reservations.status = :current_status)", where)
	assert.Equal(t, model.StatusPending, args["current_status"])
}
