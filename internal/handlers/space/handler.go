package space

import (
	"net/http"

	"spacy/infras/otel"
	"spacy/internal/domains/space/model/dto"
	"spacy/internal/domains/space/service"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	"spacy/shared/failure"
	"spacy/shared/validator"
	"spacy/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Space
	otel    otel.Otel
}

func New(service service.Space, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/spaces", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSpaces)
		routerGroup.Post("/", handler.CreateSpace)
		routerGroup.Get("/search", handler.SearchSpaces)
		routerGroup.Get("/my/spaces", handler.GetMySpaces)
		routerGroup.Get("/{id}", handler.GetSpace)
		routerGroup.Put("/{id}", handler.UpdateSpace)
		routerGroup.Delete("/{id}", handler.DeleteSpace)
		routerGroup.Post("/{id}/pricing", handler.AddPricingRule)
		routerGroup.Patch("/{id}/availability", handler.ToggleAvailability)
		routerGroup.Post("/{id}/images", handler.UploadImage)
	})
}

// GetSpaces lists active spaces.
// @Summary List spaces
// @Description List active spaces with pagination.
// @Tags Space
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort field"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {object} dto.GetSpacesResponse
// @Failure 500 {object} response.Error
// @Router /v1/spaces [get]
func (handler *Handler) GetSpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpaces")
	defer scope.End()

	queryParams := gDto.ParseQueryParams(r)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get spaces")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SearchSpaces finds active spaces matching the filters.
// @Summary Search spaces
// @Description Filter by location, capacity, price and amenities. With start_time and end_time only spaces free in that window are returned.
// @Tags Space
// @Produce json
// @Param location query string false "Address contains"
// @Param capacity query int false "Minimum capacity"
// @Param max_price query number false "Maximum hourly rate"
// @Param amenities query string false "Comma separated amenities"
// @Param date query string false "Day of the window, YYYY-MM-DD"
// @Param start_time query string false "Window start"
// @Param end_time query string false "Window end"
// @Success 200 {object} dto.GetSpacesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/search [get]
func (handler *Handler) SearchSpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchSpaces")
	defer scope.End()

	queryParams := gDto.ParseQueryParams(r)

	req := dto.SearchRequest{}
	req.FromRequest(r)

	res, err := handler.service.Search(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search spaces")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMySpaces lists the caller's spaces.
// @Summary List own spaces
// @Tags Space
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetSpacesResponse
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/my/spaces [get]
// @Security BearerAuth
func (handler *Handler) GetMySpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMySpaces")
	defer scope.End()

	queryParams := gDto.ParseQueryParams(r)

	res, err := handler.service.GetByOwner(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own spaces")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSpace returns one space.
// @Summary Get a space
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} dto.SpaceResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [get]
func (handler *Handler) GetSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpace")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get space")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateSpace creates a space owned by the caller.
// @Summary Create a space
// @Tags Space
// @Accept json
// @Produce json
// @Param request body dto.CreateSpaceRequest true "Create Space Request"
// @Success 201 {object} dto.SpaceResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces [post]
// @Security BearerAuth
func (handler *Handler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSpace")
	defer scope.End()

	req := dto.CreateSpaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create space")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Space created " + res.ID)

	response.WithCreated(w, res)
}

// UpdateSpace updates the caller's space.
// @Summary Update a space
// @Tags Space
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body dto.UpdateSpaceRequest true "Update Space Request"
// @Success 200 {object} dto.SpaceResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSpace")
	defer scope.End()

	req := dto.UpdateSpaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update space")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteSpace deletes the caller's space and its images.
// @Summary Delete a space
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSpace")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete space")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Space deleted successfully")
}

// AddPricingRule appends a pricing rule.
// @Summary Add a pricing rule
// @Tags Space
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body dto.AddPricingRuleRequest true "Pricing Rule"
// @Success 200 {object} dto.SpaceResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/spaces/{id}/pricing [post]
// @Security BearerAuth
func (handler *Handler) AddPricingRule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPricingRule")
	defer scope.End()

	req := dto.AddPricingRuleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddPricingRule(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add pricing rule")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ToggleAvailability switches whether the space can be booked.
// @Summary Set availability
// @Tags Space
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body dto.ToggleAvailabilityRequest true "Availability"
// @Success 200 {object} dto.SpaceResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/spaces/{id}/availability [patch]
// @Security BearerAuth
func (handler *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleAvailability")
	defer scope.End()

	req := dto.ToggleAvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ToggleAvailability(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadImage stores an image and appends it to the space.
// @Summary Upload a space image
// @Tags Space
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Space ID"
// @Param file formData file true "Image (jpeg, png or webp, max 5 MB)"
// @Success 200 {object} dto.SpaceResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/spaces/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddImage(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload space image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
