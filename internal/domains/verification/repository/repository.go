package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"concierge/infras/otel"
	"concierge/infras/postgres"
	bookingModel "concierge/internal/domains/booking/model"
	"concierge/internal/domains/verification/model"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/logger"
	gRepo "concierge/shared/repository"
	"context"
	"fmt"
)

type VerifiedID interface {
	Insert(ctx context.Context, model model.VerifiedID) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.VerifiedID, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	SaveWithBookingUpdate(ctx context.Context, verifiedID model.VerifiedID, bookingFields map[string]any, bookingID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.VerifiedID]
	bookings gRepo.Repository[bookingModel.Booking]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) VerifiedID {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.VerifiedID](model.EntityName, model.TableName, model.FieldID, db, otel),
		bookings:   gRepo.NewRepository[bookingModel.Booking](bookingModel.EntityName, bookingModel.TableName, bookingModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SaveWithBookingUpdate stores the extracted ID and advances the booking in
// one transaction, so a crash can never leave an extracted ID without the
// matching booking state or vice versa.
func (repo *repositoryImpl) SaveWithBookingUpdate(ctx context.Context, verifiedID model.VerifiedID, bookingFields map[string]any, bookingID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".verified_id.SaveWithBookingUpdate")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.ErrorWithStack(rollbackErr)
			}
		}
	}()

	if err = repo.InsertTx(ctx, tx, verifiedID); err != nil {
		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	bookingFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	}

	if err = repo.bookings.UpdateTx(ctx, tx, bookingFields, bookingFilter); err != nil {
		return fmt.Errorf("failed to update booking for verification: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
