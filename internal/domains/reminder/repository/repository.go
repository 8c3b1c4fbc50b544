package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"concierge/infras/otel"
	"concierge/infras/postgres"
	"concierge/internal/domains/reminder/model"
	gDto "concierge/shared/dto"
	gRepo "concierge/shared/repository"
	"context"
)

type Reminder interface {
	Insert(ctx context.Context, model model.Reminder) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reminder, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reminder, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteByBooking(ctx context.Context, bookingID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reminder]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reminder {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reminder](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) DeleteByBooking(ctx context.Context, bookingID string) error {
	return repo.Delete(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
}
