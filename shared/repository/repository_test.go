package repository_test

import (
	"context"
	"regexp"
	"testing"

	"spacy/infras/otel/mocks"
	"spacy/infras/postgres"
	"spacy/shared"
	"spacy/shared/dto"
	"spacy/shared/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	OwnerID   string  `db:"owner_id"`
	OwnerName *string `db:"owner_name" table:"users" column:"name"`
}

func (widget) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = widgets.owner_id"
}

func newRepository(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[widget]("widget", "widgets", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return shared.FilterByID(id, "id", "widgets")
}

func TestNewRepository_InsertColumns(t *testing.T) {
	repo, _ := newRepository(t)

	assert.Equal(t, []string{"id", "name", "owner_id"}, repo.InsertColumns)
}

func TestGet(t *testing.T) {
	selectQuery := regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.owner_id, users.name AS owner_name FROM widgets LEFT JOIN users ON users.id = widgets.owner_id")

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(selectQuery).
			ExpectQuery().
			WithArgs("w-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "owner_name"}).AddRow("w-1", "Desk", "u-1", "Ravi"))

		got, err := repo.Get(context.Background(), byID("w-1"))

		require.NoError(t, err)
		assert.Equal(t, "Desk", got.Name)
		assert.Equal(t, "Ravi", *got.OwnerName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows yields zero value", func(t *testing.T) {
		repo, mock := newRepository(t)

		mock.ExpectPrepare(selectQuery).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "owner_name"}))

		got, err := repo.Get(context.Background(), byID("w-404"))

		require.NoError(t, err)
		assert.Equal(t, widget{}, got)
	})
}

func TestGetAll(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("ORDER BY widgets.name ASC LIMIT $2 OFFSET $3")).
		ExpectQuery().
		WithArgs("u-1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "owner_name"}).
			AddRow("w-1", "Desk", "u-1", nil).
			AddRow("w-2", "Chair", "u-1", nil))

	got, err := repo.GetAll(
		context.Background(),
		dto.QueryParams{Page: 2, Limit: 10, SortBy: "widgets.name", SortDir: dto.SortDirAsc},
		shared.FilterByID("u-1", "owner_id", "widgets"),
	)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Nil(t, got[0].OwnerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(widgets.id) FROM widgets LEFT JOIN users")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestInsert(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name, owner_id) VALUES ($1, $2, $3)")).
		WithArgs("w-1", "Desk", "u-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), widget{ID: "w-1", Name: "Desk", OwnerID: "u-1"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCount(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE widgets SET name = $1, owner_id = $2  WHERE (widgets.id = $3)")).
		WithArgs("Standing desk", "u-2", "w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateCount(context.Background(), map[string]any{"owner_id": "u-2", "name": "Standing desk"}, byID("w-1"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RequiresFilter(t *testing.T) {
	repo, _ := newRepository(t)

	err := repo.Update(context.Background(), map[string]any{"name": "x"}, dto.FilterGroup{})

	assert.EqualError(t, err, "required filter")
}

func TestDelete(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM widgets  WHERE (widgets.id = $1)")).
		WithArgs("w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), byID("w-1")))
	assert.EqualError(t, repo.Delete(context.Background(), dto.FilterGroup{}), "required filter")
}

func TestExist(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM widgets  WHERE (widgets.id = $1) )")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exist(context.Background(), byID("w-1"))

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetAll_IgnoresUnknownSortColumn(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`LEFT JOIN users ON users\.id = widgets\.owner_id\s+LIMIT \$1`).
		ExpectQuery().
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "owner_name"}))

	got, err := repo.GetAll(
		context.Background(),
		dto.QueryParams{Limit: 5, SortBy: "name; DROP TABLE widgets", SortDir: dto.SortDirAsc},
		dto.FilterGroup{},
	)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExist_RequiresFilter(t *testing.T) {
	repo, _ := newRepository(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})

	assert.ErrorIs(t, err, repository.ErrRequiredFilter)
}
