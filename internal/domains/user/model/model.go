package model

import (
	"time"

	"spacy/permissions"
	"spacy/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type User struct {
	ID        string           `db:"id"`
	Name      string           `db:"name"`
	Email     string           `db:"email"`
	Password  string           `db:"password"`
	Role      permissions.Role `db:"role"`
	Active    bool             `db:"active"`
	LastLogin *time.Time       `db:"last_login"`
	model.Metadata
}
