package auth

import (
	"net/http"

	"spacy/infras/otel"
	"spacy/internal/domains/auth/model/dto"
	"spacy/internal/domains/auth/service"
	"spacy/shared/constant"
	"spacy/shared/validator"
	"spacy/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/register", handler.Register)
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/refresh-token", handler.RefreshToken)
		routerGroup.Get("/me", handler.Me)
	})
}

// Register creates an account. Role defaults to consumer.
// @Summary Register
// @Description Create an account as consumer, brand_owner or staff.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "invalid register request")

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "failed to register user")

		return
	}

	scope.SetAttribute(constant.OtelUserIDAttributeKey, res.ID)
	response.WithCreated(w, res)
}

// Login exchanges credentials for a token pair.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "invalid login request")

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "failed to login")

		return
	}

	scope.SetAttribute(constant.OtelUserIDAttributeKey, res.User.ID)
	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken rotates a token pair.
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, err, "invalid refresh request")

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		handler.fail(w, scope, err, "failed to refresh token")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Me returns the caller's profile.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	res, err := handler.service.Me(ctx)
	if err != nil {
		handler.fail(w, scope, err, "failed to get current user")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Warn().Err(err).Msg(msg)

	response.WithError(w, err)
}
