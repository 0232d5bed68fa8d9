package health_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"spacy/infras/postgres"
	"spacy/internal/handlers/health"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redismock/v9"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(db sqlmock.Sqlmock, cache redismock.ClientMock)
		wantCode  int
		wantBody  string
	}{
		{
			name: "all reachable",
			setupMock: func(db sqlmock.Sqlmock, cache redismock.ClientMock) {
				db.ExpectPing()
				db.ExpectPing()
				cache.ExpectPing().SetVal("PONG")
			},
			wantCode: http.StatusOK,
			wantBody: `{"message":"OK"}`,
		},
		{
			name: "database down",
			setupMock: func(db sqlmock.Sqlmock, _ redismock.ClientMock) {
				db.ExpectPing().WillReturnError(errors.New("connection refused"))
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"message":"SERVER UNHEALTHY"}`,
		},
		{
			name: "cache down",
			setupMock: func(db sqlmock.Sqlmock, cache redismock.ClientMock) {
				db.ExpectPing()
				db.ExpectPing()
				cache.ExpectPing().SetErr(errors.New("connection refused"))
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"message":"SERVER UNHEALTHY"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)

			t.Cleanup(func() { db.Close() })

			conn := sqlx.NewDb(db, "postgres")
			client, cacheMock := redismock.NewClientMock()

			tt.setupMock(dbMock, cacheMock)

			handler := health.New(&postgres.Connection{Read: conn, Write: conn}, client)

			router := chi.NewRouter()
			handler.Router(router)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}
