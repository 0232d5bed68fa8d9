package permissions

import (
	"context"
	"encoding/json"
	"fmt"

	"spacy/shared/constant"
)

type Role string

const (
	RoleConsumer   Role = "consumer"
	RoleBrandOwner Role = "brand_owner"
	RoleStaff      Role = "staff"
)

var roles = []Role{RoleConsumer, RoleBrandOwner, RoleStaff}

func (r Role) Valid() bool {
	switch r {
	case RoleConsumer, RoleBrandOwner, RoleStaff:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole rejects anything outside the closed role set.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q, expected one of %v", value, roles)
	}

	return role, nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to decode role: %w", err)
	}

	role, err := ParseRole(value)
	if err != nil {
		return err
	}

	*r = role

	return nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}

// ActorFromContext reads the identity placed on ctx by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{
		UserID: userID,
		Role:   Role(role),
	}
}

// WithActor returns ctx carrying actor the same way the auth middleware does.
func WithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, actor.UserID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, string(actor.Role))
}

// CanManage is the ownership predicate: the actor may act on a resource owned by ownerID.
func CanManage(actor Actor, ownerID string) bool {
	return actor.UserID != "" && ownerID != "" && actor.UserID == ownerID
}
