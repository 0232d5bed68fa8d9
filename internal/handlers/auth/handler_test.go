package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spacy/infras/otel/mocks"
	"spacy/internal/domains/auth/model/dto"
	serviceMocks "spacy/internal/domains/auth/service/mocks"
	"spacy/internal/handlers/auth"
	"spacy/permissions"
	"spacy/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) (http.Handler, *serviceMocks.MockAuth) {
	t.Helper()

	svc := serviceMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		setupMock func(svc *serviceMocks.MockAuth)
		wantCode  int
		wantBody  string
	}{
		{
			name:   "register",
			method: http.MethodPost,
			path:   "/auth/register",
			body:   `{"name":"Asha","email":"asha@example.com","password":"password1"}`,
			setupMock: func(svc *serviceMocks.MockAuth) {
				svc.EXPECT().
					Register(gomock.Any(), dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password1"}).
					Return(dto.UserResponse{ID: "u-1", Email: "asha@example.com", Role: permissions.RoleConsumer}, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"id":"u-1"`,
		},
		{
			name:      "register rejects short password",
			method:    http.MethodPost,
			path:      "/auth/register",
			body:      `{"name":"Asha","email":"asha@example.com","password":"short"}`,
			setupMock: func(*serviceMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "login rejects malformed json",
			method:    http.MethodPost,
			path:      "/auth/login",
			body:      `{"email":`,
			setupMock: func(*serviceMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "login with bad credentials",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"asha@example.com","password":"nope"}`,
			setupMock: func(svc *serviceMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.BadRequestFromString("invalid email or password"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `"error":"invalid email or password"`,
		},
		{
			name:   "refresh with revoked token",
			method: http.MethodPost,
			path:   "/auth/refresh-token",
			body:   `{"refresh_token":"old"}`,
			setupMock: func(svc *serviceMocks.MockAuth) {
				svc.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "old"}).
					Return(dto.TokenResponse{}, failure.Unauthorized("invalid refresh token"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "me surfaces internal errors",
			method: http.MethodGet,
			path:   "/auth/me",
			setupMock: func(svc *serviceMocks.MockAuth) {
				svc.EXPECT().Me(gomock.Any()).Return(dto.UserResponse{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, svc := newServer(t)
			tt.setupMock(svc)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}
