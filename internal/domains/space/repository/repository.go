package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"spacy/infras/otel"
	"spacy/infras/postgres"
	"spacy/internal/domains/space/model"
	gDto "spacy/shared/dto"
	gRepo "spacy/shared/repository"
)

type Space interface {
	Insert(ctx context.Context, model model.Space) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Space, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Space, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Space]
}

func New(db *postgres.Connection, otel otel.Otel) Space {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Space](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
