package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"spacy/config"
	"spacy/infras/jwt"
	jwtMocks "spacy/infras/jwt/mocks"
	"spacy/infras/otel/mocks"
	"spacy/permissions"
	"spacy/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const apiKey = "internal-key"

func newRouter(t *testing.T) (http.Handler, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	m := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	echoActor := func(w http.ResponseWriter, r *http.Request) {
		actor := permissions.ActorFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": actor.UserID, "role": actor.Role.String()})
	}

	router := chi.NewRouter()
	router.Use(m.APIKey, m.Auth, m.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Route("/spaces", func(r chi.Router) {
			r.Get("/", echoActor)
			r.Post("/", echoActor)
		})
		r.Get("/reservations/today", echoActor)
		r.Post("/payments/refund", echoActor)
	})

	return router, jwtService
}

func token(jwtService *jwtMocks.MockJWT, raw string, claims *jwt.Claims, err error) {
	jwtService.EXPECT().ValidateToken(gomock.Any(), raw, jwt.AccessToken).Return(claims, err)
}

func claims(userID string, role permissions.Role) *jwt.Claims {
	return &jwt.Claims{UserID: userID, Email: userID + "@example.com", Role: role.String(), Type: jwt.AccessToken}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(jwtService *jwtMocks.MockJWT)
		wantCode  int
		wantBody  string
	}{
		{
			name:      "public route needs no token",
			method:    http.MethodGet,
			path:      "/v1/spaces",
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "missing token",
			method:    http.MethodGet,
			path:      "/v1/reservations/today",
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
			wantBody:  "Missing authorization header",
		},
		{
			name:      "malformed header",
			method:    http.MethodGet,
			path:      "/v1/reservations/today",
			headers:   map[string]string{"Authorization": "Token abc"},
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
			wantBody:  "Invalid authorization header format",
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/reservations/today",
			headers: map[string]string{"Authorization": "Bearer old"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				token(jwtService, "old", nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "Token has expired",
		},
		{
			name:    "unknown role claim",
			method:  http.MethodGet,
			path:    "/v1/reservations/today",
			headers: map[string]string{"Authorization": "Bearer t"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				token(jwtService, "t", &jwt.Claims{UserID: "u-1", Email: "u@example.com", Role: "admin"}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "Invalid token claims",
		},
		{
			name:    "consumer rejected on staff route",
			method:  http.MethodGet,
			path:    "/v1/reservations/today",
			headers: map[string]string{"Authorization": "Bearer t"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				token(jwtService, "t", claims("c-1", permissions.RoleConsumer), nil)
			},
			wantCode: http.StatusForbidden,
			wantBody: "You don't have the required permissions",
		},
		{
			name:    "staff allowed on staff route",
			method:  http.MethodGet,
			path:    "/v1/reservations/today",
			headers: map[string]string{"Authorization": "Bearer t"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				token(jwtService, "t", claims("s-1", permissions.RoleStaff), nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"role":"staff"`,
		},
		{
			name:    "consumer cannot create space",
			method:  http.MethodPost,
			path:    "/v1/spaces",
			headers: map[string]string{"Authorization": "Bearer t"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				token(jwtService, "t", claims("c-1", permissions.RoleConsumer), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "brand owner refunds",
			method:  http.MethodPost,
			path:    "/v1/payments/refund",
			headers: map[string]string{"Authorization": "Bearer t"},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				token(jwtService, "t", claims("o-1", permissions.RoleBrandOwner), nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"user_id":"o-1"`,
		},
		{
			name:      "api key bypasses auth",
			method:    http.MethodGet,
			path:      "/v1/reservations/today",
			headers:   map[string]string{"X-API-Key": apiKey},
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "wrong api key",
			method:    http.MethodGet,
			path:      "/v1/reservations/today",
			headers:   map[string]string{"X-API-Key": "guess"},
			setupMock: func(*jwtMocks.MockJWT) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newRouter(t)
			tt.setupMock(jwtService)

			req := httptest.NewRequestWithContext(context.Background(), tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
