package dto

import (
	"mime/multipart"
	"net/http"
	"strings"

	"spacy/internal/domains/space/model"
	"spacy/shared"
	gDto "spacy/shared/dto"
	gModel "spacy/shared/model"
	"spacy/shared/timezone"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
)

const (
	RequestParamLocation    = "location"
	RequestParamMinCapacity = "minCapacity"
	RequestParamMaxPrice    = "maxPrice"
	RequestParamAmenities   = "amenities"
	RequestParamDate        = "date"
	RequestParamStartTime   = "startTime"
	RequestParamEndTime     = "endTime"
)

type PricingRuleRequest struct {
	Type string  `json:"type" validate:"required,max=50"`
	Rate float64 `json:"rate" validate:"required,gt=0"`
}

func (p PricingRuleRequest) ToModel() model.PricingRule {
	return model.PricingRule{Type: p.Type, Rate: p.Rate}
}

type CreateSpaceRequest struct {
	Name         string               `json:"name"          validate:"required,max=150"`
	Description  string               `json:"description"   validate:"omitempty,max=2000"`
	Address      string               `json:"address"       validate:"required,max=255"`
	Capacity     int                  `json:"capacity"      validate:"required,min=1"`
	Amenities    []string             `json:"amenities"     validate:"omitempty,dive,required,max=50"`
	PricingRules []PricingRuleRequest `json:"pricing_rules" validate:"omitempty,dive"`
	Images       []string             `json:"images"        validate:"omitempty,dive,url"`
}

func (c *CreateSpaceRequest) ToModel(ownerID string) model.Space {
	rules := make(model.PricingRules, len(c.PricingRules))
	for i, rule := range c.PricingRules {
		rules[i] = rule.ToModel()
	}

	now := timezone.Now()

	return model.Space{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(c.Name),
		Slug:         slug.Make(c.Name),
		Description:  c.Description,
		Address:      c.Address,
		Capacity:     c.Capacity,
		Amenities:    pq.StringArray(nonNil(c.Amenities)),
		PricingRules: rules,
		Images:       pq.StringArray(nonNil(c.Images)),
		IsActive:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}
}

// UpdateSpaceRequest carries a partial update. Zero fields are left untouched.
type UpdateSpaceRequest struct {
	Name         string             `db:"name"          json:"name"          validate:"omitempty,max=150"`
	Slug         string             `db:"slug"          json:"-"`
	Description  string             `db:"description"   json:"description"   validate:"omitempty,max=2000"`
	Address      string             `db:"address"       json:"address"       validate:"omitempty,max=255"`
	Capacity     int                `db:"capacity"      json:"capacity"      validate:"omitempty,min=1"`
	Amenities    pq.StringArray     `db:"amenities"     json:"amenities"     validate:"omitempty,dive,required,max=50"`
	PricingRules model.PricingRules `db:"pricing_rules" json:"pricing_rules" validate:"omitempty,dive"`
	Images       pq.StringArray     `db:"images"        json:"images"        validate:"omitempty,dive,url"`
	IsActive     *bool              `db:"is_active"     json:"is_active"`
}

// IsEmpty reports whether no field was supplied.
func (u *UpdateSpaceRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.Address == "" && u.Capacity == 0 &&
		u.Amenities == nil && u.PricingRules == nil && u.Images == nil && u.IsActive == nil
}

type AddPricingRuleRequest struct {
	PricingRuleRequest
}

type ToggleAvailabilityRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

// SearchRequest holds the public search filters. Nil or empty fields are not applied.
type SearchRequest struct {
	Location    string
	MinCapacity *int
	MaxPrice    *float64
	Amenities   []string
	Date        string
	StartTime   string
	EndTime     string
}

func (s *SearchRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	s.Location = strings.TrimSpace(query.Get(RequestParamLocation))
	s.MinCapacity = shared.ConvertStringToInt(query.Get(RequestParamMinCapacity))
	s.MaxPrice = shared.ConvertStringToFloat(query.Get(RequestParamMaxPrice))
	s.Amenities = shared.SplitCSV(query.Get(RequestParamAmenities))
	s.Date = strings.TrimSpace(query.Get(RequestParamDate))
	s.StartTime = strings.TrimSpace(query.Get(RequestParamStartTime))
	s.EndTime = strings.TrimSpace(query.Get(RequestParamEndTime))
}

// HasWindow reports whether a booking window was requested.
func (s *SearchRequest) HasWindow() bool {
	return s.StartTime != "" && s.EndTime != ""
}

// WindowBounds resolves the requested window. With a date, start and end are clock times on that day.
func (s *SearchRequest) WindowBounds() (start, end string) {
	if s.Date == "" {
		return s.StartTime, s.EndTime
	}

	return s.Date + "T" + s.StartTime, s.Date + "T" + s.EndTime
}

type OwnerResponse struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type SpaceResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Description  string              `json:"description"`
	Address      string              `json:"address"`
	Capacity     int                 `json:"capacity"`
	Amenities    []string            `json:"amenities"`
	PricingRules []model.PricingRule `json:"pricing_rules"`
	Images       []string            `json:"images"`
	IsActive     bool                `json:"is_active"`
	Owner        OwnerResponse       `json:"owner"`
	gDto.Metadata
}

func (r *SpaceResponse) FromModel(space model.Space) {
	r.ID = space.ID
	r.Name = space.Name
	r.Slug = space.Slug
	r.Description = space.Description
	r.Address = space.Address
	r.Capacity = space.Capacity
	r.Amenities = nonNil(space.Amenities)
	r.PricingRules = space.PricingRules
	r.Images = nonNil(space.Images)
	r.IsActive = space.IsActive
	r.Owner = OwnerResponse{
		ID:    space.OwnerID,
		Name:  space.OwnerName,
		Email: space.OwnerEmail,
	}
	r.Metadata.FromModel(space.Metadata)

	if r.PricingRules == nil {
		r.PricingRules = []model.PricingRule{}
	}
}

type GetSpacesResponse struct {
	Spaces    []SpaceResponse `json:"spaces"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetSpacesResponse) FromModels(models []model.Space, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Spaces = make([]SpaceResponse, len(models))
	for i, mod := range models {
		r.Spaces[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
