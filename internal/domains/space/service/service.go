package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"spacy/config"
	"spacy/infras/otel"
	"spacy/infras/s3"
	reservationRepo "spacy/internal/domains/reservation/repository"
	"spacy/internal/domains/space/model"
	"spacy/internal/domains/space/model/dto"
	"spacy/internal/domains/space/repository"
	"spacy/permissions"
	"spacy/shared"
	"spacy/shared/cache"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	"spacy/shared/failure"
	"spacy/shared/timezone"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetSpace    = "space:get"
	cacheGetAllSpace = "space:get_all"
	cacheCountSpace  = "space:count"

	imageDirectory = "spaces"
	sortNewest     = model.TableName + "." + model.FieldCreatedAt

	queryMaxPrice = "CAST(spaces.pricing_rules->0->>'rate' AS NUMERIC) <= :max_price"
)

type Space interface {
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetSpacesResponse, error)
	Get(ctx context.Context, id string) (dto.SpaceResponse, error)
	GetByOwner(ctx context.Context, params gDto.QueryParams) (dto.GetSpacesResponse, error)
	Search(ctx context.Context, params gDto.QueryParams, req dto.SearchRequest) (dto.GetSpacesResponse, error)
	Create(ctx context.Context, req dto.CreateSpaceRequest) (dto.SpaceResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateSpaceRequest) (dto.SpaceResponse, error)
	Delete(ctx context.Context, id string) error
	AddPricingRule(ctx context.Context, id string, req dto.AddPricingRuleRequest) (dto.SpaceResponse, error)
	ToggleAvailability(ctx context.Context, id string, req dto.ToggleAvailabilityRequest) (dto.SpaceResponse, error)
	AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.SpaceResponse, error)
}

type serviceImpl struct {
	repo            repository.Space
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
	s3              s3.S3
}

func New(
	repo repository.Space,
	reservationRepo reservationRepo.Reservation,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Space {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
		s3:              s3,
	}
}

func filterActive() gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldIsActive,
		Value:    true,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}
}

func newest(params gDto.QueryParams) gDto.QueryParams {
	params.SortBy = sortNewest
	params.SortDir = gDto.SortDirDesc

	return params
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params = newest(params)
	filter := gDto.FilterGroup{Filters: []any{filterActive()}}
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSpace, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for spaces")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	spaces, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get spaces")

		return res, fmt.Errorf("failed to get spaces: %w", err)
	}

	res.FromModels(spaces, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save spaces to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSpace, params, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return total, fmt.Errorf("failed to count spaces: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if uuid.Validate(id) != nil {
		return res, failure.NotFound("Invalid space ID") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetSpace, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for space")

		return res, nil
	}

	space, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(space)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space to cache")
		}
	}()

	return res, nil
}

// getModel loads a space without the cache, failing NotFound for malformed or unknown ids.
func (s *serviceImpl) getModel(ctx context.Context, id string) (space model.Space, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".getModel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if uuid.Validate(id) != nil {
		return space, failure.NotFound("Invalid space ID") // nolint:wrapcheck
	}

	space, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound("Space not found") // nolint:wrapcheck
	}

	return space, nil
}

func (s *serviceImpl) getOwned(ctx context.Context, id, deniedMessage string) (model.Space, error) {
	space, err := s.getModel(ctx, id)
	if err != nil {
		return space, err
	}

	if !permissions.CanManage(permissions.ActorFromContext(ctx), space.OwnerID) {
		return space, failure.Unauthorized(deniedMessage) // nolint:wrapcheck
	}

	return space, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, params gDto.QueryParams) (res dto.GetSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByOwner")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor := permissions.ActorFromContext(ctx)
	params = newest(params)
	filter := shared.FilterByID(actor.UserID, model.FieldOwnerID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count owner spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	spaces, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner spaces")

		return res, fmt.Errorf("failed to get spaces: %w", err)
	}

	res.FromModels(spaces, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Search(ctx context.Context, params gDto.QueryParams, req dto.SearchRequest) (res dto.GetSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filters := []any{filterActive()}

	if req.Location != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldAddress,
			Value:    req.Location,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if req.MinCapacity != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldCapacity,
			Value:    *req.MinCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if req.MaxPrice != nil {
		filters = append(filters, gDto.Filter{
			Value:    queryMaxPrice,
			Operator: gDto.FilterPlainQuery,
			Args:     map[string]any{"max_price": *req.MaxPrice},
		})
	}

	if len(req.Amenities) > 0 {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldAmenities,
			Value:    pq.StringArray(req.Amenities),
			Operator: gDto.FilterOperatorContains,
			Table:    model.TableName,
		})
	}

	if req.HasWindow() {
		rawStart, rawEnd := req.WindowBounds()

		start, startErr := timezone.ParseInstant(rawStart)
		end, endErr := timezone.ParseInstant(rawEnd)

		if startErr != nil || endErr != nil {
			return res, failure.BadRequestFromString("Invalid date format") // nolint:wrapcheck
		}

		if !start.Before(end) {
			return res, failure.BadRequestFromString("End time must be after start time") // nolint:wrapcheck
		}

		booked, err := s.reservationRepo.BookedSpaceIDs(ctx, start, end)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booked spaces")

			return res, fmt.Errorf("failed to get booked spaces: %w", err)
		}

		filters = append(filters, gDto.Filter{
			Field:    model.FieldID,
			ArgName:  "booked_space_id",
			Value:    booked,
			Operator: gDto.FilterOperatorNotIn,
			Table:    model.TableName,
		})
	}

	params = newest(params)
	filter := gDto.FilterGroup{Filters: filters}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count searched spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	spaces, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search spaces")

		return res, fmt.Errorf("failed to search spaces: %w", err)
	}

	res.FromModels(spaces, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSpaceRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor := permissions.ActorFromContext(ctx)
	space := req.ToModel(actor.UserID)

	if err = s.repo.Insert(ctx, space); err != nil {
		log.Error().Err(err).Msg("failed to create space")

		return res, fmt.Errorf("failed to create space: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(space)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateSpaceRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	space, err := s.getOwned(ctx, id, "You can only update your own spaces")
	if err != nil {
		return res, err
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != space.Name {
		req.Name = name
		req.Slug = slug.Make(name)
	}

	return s.apply(ctx, space, req)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	space, err := s.getOwned(ctx, id, "You can only delete your own spaces")
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete space")

		return fmt.Errorf("failed to delete space: %w", err)
	}

	s.invalidate(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range space.Images {
			objectKey := s.s3.GetObjectKeyFromURL(url)
			if objectKey == constant.Empty {
				continue
			}

			if err := s.s3.DeleteFile(c, objectKey); err != nil {
				log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete space image")
			}
		}
	}()

	return nil
}

func (s *serviceImpl) AddPricingRule(ctx context.Context, id string, req dto.AddPricingRuleRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddPricingRule")
	defer scope.End()
	defer scope.TraceIfError(&err)

	space, err := s.getOwned(ctx, id, "You can only update your own spaces")
	if err != nil {
		return res, err
	}

	rules := append(model.PricingRules{}, space.PricingRules...)
	rules = append(rules, req.ToModel())

	return s.apply(ctx, space, dto.UpdateSpaceRequest{PricingRules: rules})
}

func (s *serviceImpl) ToggleAvailability(ctx context.Context, id string, req dto.ToggleAvailabilityRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleAvailability")
	defer scope.End()
	defer scope.TraceIfError(&err)

	space, err := s.getOwned(ctx, id, "You can only update your own spaces")
	if err != nil {
		return res, err
	}

	return s.apply(ctx, space, dto.UpdateSpaceRequest{IsActive: req.IsActive})
}

func (s *serviceImpl) AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	space, err := s.getOwned(ctx, id, "You can only update your own spaces")
	if err != nil {
		return res, err
	}

	data, err := io.ReadAll(req.ImageFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to read image")

		return res, fmt.Errorf("failed to read image: %w", err)
	}

	contentType := req.Image.Header.Get(constant.RequestHeaderContentType)
	fileName := uuid.NewString() + path.Ext(req.Image.Filename)

	url, err := s.s3.UploadFileBytes(ctx, path.Join(imageDirectory, space.ID), fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload space image")

		return res, fmt.Errorf("failed to upload space image: %w", err)
	}

	images := append(pq.StringArray{}, space.Images...)
	images = append(images, url)

	return s.apply(ctx, space, dto.UpdateSpaceRequest{Images: images})
}

// apply writes req over space and returns the merged record.
func (s *serviceImpl) apply(ctx context.Context, space model.Space, req dto.UpdateSpaceRequest) (res dto.SpaceResponse, err error) {
	actor := permissions.ActorFromContext(ctx)
	updatedFields := shared.TransformFields(req, actor.UserID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(space.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update space")

		return res, fmt.Errorf("failed to update space: %w", err)
	}

	s.invalidate(ctx, space.ID)

	updated, err := s.getModel(ctx, space.ID)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpace, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete space cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpace)
		shared.InvalidateCaches(c, s.cache, cacheCountSpace)
	}()
}
