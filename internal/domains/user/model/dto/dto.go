package dto

import (
	"spacy/internal/domains/user/model"
	"spacy/permissions"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	"spacy/shared/timezone"
)

type UserResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      permissions.Role `json:"role"`
	Active    bool             `json:"active"`
	LastLogin *string          `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Role = user.Role
	r.Active = user.Active

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(user.Metadata)
}
