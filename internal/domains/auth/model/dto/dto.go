package dto

import (
	"strings"

	"spacy/infras/jwt"
	userModel "spacy/internal/domains/user/model"
	userDto "spacy/internal/domains/user/model/dto"
	"spacy/permissions"
	gModel "spacy/shared/model"
	"spacy/shared/timezone"

	"github.com/google/uuid"
)

// UserResponse is the profile returned by register and me.
type UserResponse = userDto.UserResponse

type RegisterRequest struct {
	Name     string           `json:"name"     validate:"required,max=100"`
	Email    string           `json:"email"    validate:"required,email"`
	Password string           `json:"password" validate:"required,min=8,max=72"`
	Role     permissions.Role `json:"role"     validate:"omitempty,oneof=consumer brand_owner staff"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	role := r.Role
	if role == "" {
		role = permissions.RoleConsumer
	}

	now := timezone.Now()

	return userModel.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	t.AccessToken = tokenPair.AccessToken
	t.RefreshToken = tokenPair.RefreshToken
	t.TokenType = tokenPair.TokenType
	t.ExpiresIn = tokenPair.ExpiresIn
}

type LoginResponse struct {
	TokenResponse
	User userDto.UserResponse `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
