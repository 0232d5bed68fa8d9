package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"spacy/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "spaces"
	EntityName = "space"

	FieldID           = "id"
	FieldOwnerID      = "owner_id"
	FieldName         = "name"
	FieldSlug         = "slug"
	FieldDescription  = "description"
	FieldAddress      = "address"
	FieldCapacity     = "capacity"
	FieldAmenities    = "amenities"
	FieldPricingRules = "pricing_rules"
	FieldImages       = "images"
	FieldIsActive     = "is_active"
	FieldCreatedAt    = "created_at"

	// DefaultHourlyRate applies when a space has no usable pricing rule.
	DefaultHourlyRate = 100
)

var errPricingRulesType = errors.New("unsupported pricing_rules type")

type PricingRule struct {
	Type string  `json:"type"`
	Rate float64 `json:"rate"`
}

// PricingRules is stored as a jsonb array. The first rule is the effective hourly rate.
type PricingRules []PricingRule

func (p PricingRules) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pricing rules: %w", err)
	}

	return raw, nil
}

func (p *PricingRules) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*p = PricingRules{}

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("%w: %T", errPricingRulesType, src)
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return fmt.Errorf("failed to unmarshal pricing rules: %w", err)
	}

	return nil
}

// HourlyRate returns the first rule's rate, falling back to DefaultHourlyRate when it is missing or zero.
func (p PricingRules) HourlyRate() float64 {
	if len(p) == 0 || p[0].Rate == 0 {
		return DefaultHourlyRate
	}

	return p[0].Rate
}

type Space struct {
	ID           string         `db:"id"`
	OwnerID      string         `db:"owner_id"`
	Name         string         `db:"name"`
	Slug         string         `db:"slug"`
	Description  string         `db:"description"`
	Address      string         `db:"address"`
	Capacity     int            `db:"capacity"`
	Amenities    pq.StringArray `db:"amenities"`
	PricingRules PricingRules   `db:"pricing_rules"`
	Images       pq.StringArray `db:"images"`
	IsActive     bool           `db:"is_active"`
	OwnerName    *string        `db:"owner_name"  table:"users" column:"name"`
	OwnerEmail   *string        `db:"owner_email" table:"users" column:"email"`
	model.Metadata
}

func (Space) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = spaces.owner_id"
}
