package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spacy/config"
	"spacy/infras/otel/mocks"
	cacheMocks "spacy/shared/cache/mocks"
	"spacy/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		setupMock     func(cache *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:      "disabled passes through",
			setupMock: func(*cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusOK,
		},
		{
			name:    "under the limit",
			enabled: true,
			setupMock: func(cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7", 30*time.Second).Return(int64(2), nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:    "over the limit",
			enabled: true,
			setupMock: func(cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7", 30*time.Second).Return(int64(4), nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:    "cache failure lets the request through",
			enabled: true,
			setupMock: func(cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("down"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(cache)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 30

			limiter := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache).RateLimit()
			handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/v1/spaces", nil)
			request.RemoteAddr = "10.0.0.7:51234"
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRemaining, recorder.Header().Get("X-RateLimit-Remaining"))
		})
	}
}
