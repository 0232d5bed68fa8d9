package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"spacy/shared"
	"spacy/shared/constant"
	"spacy/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client address in fixed windows. The counter
// lives in redis so every replica shares it. Cache failures let traffic through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter
	window := time.Duration(limits.WindowSeconds) * time.Second

	return func(next http.Handler) http.Handler {
		if !limits.Enable || limits.MaxRequests <= 0 || window <= 0 {
			return next
		}

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			client := clientAddress(request)

			count, err := a.cache.Increment(request.Context(), shared.BuildCacheKey(cacheKeyRateLimit, client), window)
			if err != nil {
				log.Warn().Err(err).Str("client", client).Msg("rate limiter unavailable")
				next.ServeHTTP(writer, request)

				return
			}

			header := writer.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limits.MaxRequests)-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			if count > int64(limits.MaxRequests) {
				response.WithRequestLimitExceeded(writer)

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// clientAddress expects chi's RealIP to have rewritten RemoteAddr already.
func clientAddress(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
