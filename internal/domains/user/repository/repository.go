package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"strings"
	"time"

	"spacy/infras/otel"
	"spacy/infras/postgres"
	"spacy/internal/domains/user/model"
	"spacy/shared"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	gRepo "spacy/shared/repository"
)

type User interface {
	Insert(ctx context.Context, user model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	// GetByEmail matches case-insensitively. A miss yields a zero User.
	GetByEmail(ctx context.Context, email string) (model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	user.Email = NormalizeEmail(user.Email)

	return repo.Repository.Insert(ctx, user) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.User, error) {
	return repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return repo.Get(ctx, byEmail(email)) //nolint:wrapcheck
}

func (repo *repositoryImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	return repo.Exist(ctx, byEmail(email)) //nolint:wrapcheck
}

func (repo *repositoryImpl) RecordLogin(ctx context.Context, id string, at time.Time) error {
	fields := map[string]any{
		model.FieldLastLogin:     at,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: id,
	}

	return repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func byEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    NormalizeEmail(email),
				Table:    model.TableName,
			},
		},
	}
}
