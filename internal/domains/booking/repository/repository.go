package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"concierge/infras/otel"
	"concierge/infras/postgres"
	"concierge/internal/domains/booking/model"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/logger"
	gRepo "concierge/shared/repository"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const selectWithGuest = `SELECT bookings.id, bookings.user_id, bookings.room_type, bookings.check_in_date,
	bookings.check_in_time, bookings.check_out_date, bookings.check_out_time, bookings.guest_count,
	bookings.status, bookings.total_price, bookings.paid_status, bookings.verification_status,
	bookings.selected_id_type, bookings.room_number, bookings.checkin_status, bookings.notes,
	bookings.created_at, bookings.modified_at, users.name AS guest_name, users.phone AS guest_phone
	FROM bookings JOIN users ON users.id = bookings.user_id`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetWithGuest(ctx context.Context, id string) (model.BookingWithGuest, error)
	GetAllWithGuest(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithGuest, error)
	GetActiveByPhone(ctx context.Context, phone string) (model.BookingWithGuest, error)
	GetCheckedIn(ctx context.Context) ([]model.BookingWithGuest, error)
	CountOverlapping(ctx context.Context, roomType string, checkIn, checkOut time.Time, excludeID string) (int, error)
	SumRevenueForDay(ctx context.Context, day time.Time) (float64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetWithGuest(ctx context.Context, id string) (booking model.BookingWithGuest, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetWithGuest")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := selectWithGuest + " WHERE bookings.id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingWithGuest{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return booking, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

// GetAllWithGuest lists bookings joined with guest identity. Filters use the
// bookings/users table names directly.
func (repo *repositoryImpl) GetAllWithGuest(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (bookings []model.BookingWithGuest, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAllWithGuest")
	defer scope.End()
	defer scope.TraceIfError(err)

	where, args := repo.BuildWhereClause(ctx, filter)

	var ordering, pagination string

	if params.Page > 0 && params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = (params.Page - 1) * params.Limit

		pagination = "LIMIT :limit OFFSET :offset"
	}

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s.%s %s", model.TableName, params.SortBy, params.SortDir)
	}

	query := fmt.Sprintf("%s %s %s %s", selectWithGuest, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &bookings, args); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

// GetActiveByPhone returns the newest confirmed booking for the guest phone.
// At most one confirmed booking exists per guest; ordering is a safety net.
func (repo *repositoryImpl) GetActiveByPhone(ctx context.Context, phone string) (booking model.BookingWithGuest, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetActiveByPhone")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := selectWithGuest + " WHERE users.phone = $1 AND bookings.status = $2 ORDER BY bookings.created_at DESC LIMIT 1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &booking, query, phone, model.StatusConfirmed)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingWithGuest{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return booking, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

func (repo *repositoryImpl) GetCheckedIn(ctx context.Context) (bookings []model.BookingWithGuest, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetCheckedIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := selectWithGuest + " WHERE bookings.status = $1 AND bookings.checkin_status = $2"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.SelectContext(ctx, &bookings, query, model.StatusConfirmed, model.CheckinStatusCheckedIn)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

// CountOverlapping counts confirmed bookings of the room type whose stay
// overlaps [checkIn, checkOut). excludeID skips the booking being modified.
func (repo *repositoryImpl) CountOverlapping(ctx context.Context, roomType string, checkIn, checkOut time.Time, excludeID string) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT COUNT(id) FROM bookings
		WHERE room_type = $1 AND status = $2 AND check_in_date < $3 AND check_out_date > $4 AND id != $5`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &count, query, roomType, model.StatusConfirmed, checkOut, checkIn, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

func (repo *repositoryImpl) SumRevenueForDay(ctx context.Context, day time.Time) (total float64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SumRevenueForDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT COALESCE(SUM(total_price), 0) FROM bookings
		WHERE paid_status = $1 AND status = $2 AND DATE(created_at) = DATE($3)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &total, query, model.PaidStatusPaid, model.StatusConfirmed, day)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to sum revenue (%s): %w", model.EntityName, err)
	}

	return total, nil
}
