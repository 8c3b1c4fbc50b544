package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"concierge/infras/otel"
	"concierge/infras/postgres"
	"concierge/internal/domains/catalog/model"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/logger"
	gRepo "concierge/shared/repository"
	"context"
	"fmt"
	"time"
)

// Catalog bundles the hotel service offering, its recurring schedules and the
// guest service requests raised against them.
type Catalog interface {
	GetServices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.HotelService, error)
	GetService(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.HotelService, error)
	GetActiveSchedules(ctx context.Context) ([]model.ServiceSchedule, error)
	MarkReminderSent(ctx context.Context, bookingID, scheduleID string, day time.Time) (inserted bool, err error)
	InsertRequest(ctx context.Context, request model.ServiceRequest) error
	GetRequest(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceRequest, error)
	UpdateRequest(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	services  gRepo.Repository[model.HotelService]
	schedules gRepo.Repository[model.ServiceSchedule]
	requests  gRepo.Repository[model.ServiceRequest]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Catalog {
	return &repositoryImpl{
		services:  gRepo.NewRepository[model.HotelService](model.ServiceEntityName, model.ServiceTableName, model.ServiceFieldID, db, otel),
		schedules: gRepo.NewRepository[model.ServiceSchedule](model.ScheduleEntityName, model.ScheduleTableName, model.ScheduleFieldID, db, otel),
		requests:  gRepo.NewRepository[model.ServiceRequest](model.RequestEntityName, model.RequestTableName, model.RequestFieldID, db, otel),
		db:        db,
		otel:      otel,
	}
}

func (repo *repositoryImpl) GetServices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.HotelService, error) {
	return repo.services.GetAll(ctx, params, filter, columns...)
}

func (repo *repositoryImpl) GetService(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.HotelService, error) {
	return repo.services.Get(ctx, filter, columns...)
}

func (repo *repositoryImpl) GetActiveSchedules(ctx context.Context) ([]model.ServiceSchedule, error) {
	return repo.schedules.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.ScheduleFieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.ScheduleTableName,
			},
		},
	})
}

// MarkReminderSent records the (booking, schedule, day) dedup marker. The
// unique constraint makes concurrent ticks race-safe: exactly one caller
// observes inserted=true for a given day.
func (repo *repositoryImpl) MarkReminderSent(ctx context.Context, bookingID, scheduleID string, day time.Time) (inserted bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".catalog.MarkReminderSent")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`INSERT INTO %s (id, booking_id, schedule_id, sent_date, created_at, modified_at)
		VALUES (gen_random_uuid(), $1, $2, DATE($3), NOW(), NOW())
		ON CONFLICT (booking_id, schedule_id, sent_date) DO NOTHING`, model.ReminderSentTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, bookingID, scheduleID, day)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to insert data (%s): %w", model.ReminderSentEntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.ReminderSentEntityName, err)
	}

	return affected > 0, nil
}

func (repo *repositoryImpl) InsertRequest(ctx context.Context, request model.ServiceRequest) error {
	return repo.requests.Insert(ctx, request)
}

func (repo *repositoryImpl) GetRequest(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceRequest, error) {
	return repo.requests.Get(ctx, filter, columns...)
}

func (repo *repositoryImpl) UpdateRequest(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return repo.requests.Update(ctx, req, filter)
}
