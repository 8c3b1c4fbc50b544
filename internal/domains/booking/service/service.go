package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"concierge/config"
	"concierge/infras/kafka"
	"concierge/infras/otel"
	"concierge/infras/whatsapp"
	"concierge/internal/domains/booking/model"
	"concierge/internal/domains/booking/model/dto"
	"concierge/internal/domains/booking/repository"
	reminderModel "concierge/internal/domains/reminder/model"
	reminderRepo "concierge/internal/domains/reminder/repository"
	roomModel "concierge/internal/domains/room/model"
	roomRepo "concierge/internal/domains/room/repository"
	userModel "concierge/internal/domains/user/model"
	userRepo "concierge/internal/domains/user/repository"
	"concierge/internal/scheduler"
	"concierge/shared"
	"concierge/shared/cache"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/failure"
	gModel "concierge/shared/model"
	"concierge/shared/timezone"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	defaultCheckInTime = "14:00"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) error
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	ActiveByPhone(ctx context.Context, phone string) (model.BookingWithGuest, error)
	CompleteCheckIn(ctx context.Context, id string) (model.BookingWithGuest, error)
	ResolvePayment(ctx context.Context, id string) (dto.BookingResponse, error)
	RearmReminders(ctx context.Context) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	userRepo     userRepo.User
	reminderRepo reminderRepo.Reminder
	scheduler    scheduler.Scheduler
	gateway      whatsapp.Client
	events       kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepository roomRepo.Room,
	userRepository userRepo.User,
	reminderRepository reminderRepo.Reminder,
	sched scheduler.Scheduler,
	gateway whatsapp.Client,
	events kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepository,
		userRepo:     userRepository,
		reminderRepo: reminderRepository,
		scheduler:    sched,
		gateway:      gateway,
		events:       events,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomByType(ctx, req.RoomType)
	if err != nil {
		return res, err
	}

	active, err := s.repo.GetActiveByPhone(ctx, req.Phone)
	if err != nil {
		log.Error().Err(err).Msg("failed to check active booking")

		return res, fmt.Errorf("failed to check active booking: %w", err)
	}

	if active.ID != constant.Empty {
		return res, failure.Conflict("guest already has an active booking") //nolint:wrapcheck
	}

	user, err := s.ensureUser(ctx, req.Name, req.Phone)
	if err != nil {
		return res, err
	}

	booking, err := req.ToModel(user.ID, room.Price)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) //nolint:wrapcheck
	}

	if booking.CheckInTime == constant.Empty {
		booking.CheckInTime = defaultCheckInTime
	}

	if err = s.checkCapacity(ctx, room, booking.CheckInDate, booking.CheckOutDate, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.armCheckInReminders(ctx, booking, user.Name, user.Phone)
	s.publishEvent(ctx, dto.EventBookingCreated, booking, user.Phone)
	s.invalidateCaches(ctx, booking.ID)

	s.notify(ctx, user.Phone, fmt.Sprintf(
		"Your booking is confirmed! 🏨\n\nRoom: %s\nCheck-in: %s\nCheck-out: %s\nGuests: %d\nTotal: $%.2f\n\nWe look forward to welcoming you, %s!",
		booking.RoomType,
		timezone.Format(booking.CheckInDate, constant.DateOnlyFormat),
		timezone.Format(booking.CheckOutDate, constant.DateOnlyFormat),
		booking.GuestCount,
		booking.TotalPrice,
		user.Name,
	))

	res.FromModel(booking)
	res.GuestName = user.Name
	res.GuestPhone = user.Phone

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	existing, err := s.repo.GetWithGuest(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if existing.Status != model.StatusConfirmed {
		return failure.Conflict("only confirmed bookings can be modified") //nolint:wrapcheck
	}

	updated, err := s.applyUpdate(existing.Booking, req)
	if err != nil {
		return err
	}

	room, err := s.roomByType(ctx, updated.RoomType)
	if err != nil {
		return err
	}

	if err = s.checkCapacity(ctx, room, updated.CheckInDate, updated.CheckOutDate, updated.ID); err != nil {
		return err
	}

	updated.TotalPrice = updated.TotalFor(room.Price)

	fields := shared.TransformFields(req)
	fields[model.FieldTotalPrice] = updated.TotalPrice

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	// Stale reminders must go before the new ones are armed.
	s.disarmReminders(ctx, id)
	s.armCheckInReminders(ctx, updated, existing.GuestName, existing.GuestPhone)
	s.publishEvent(ctx, dto.EventBookingModified, updated, existing.GuestPhone)
	s.invalidateCaches(ctx, id)

	s.notify(ctx, existing.GuestPhone, fmt.Sprintf(
		"Your booking has been updated. ✅\n\nRoom: %s\nCheck-in: %s\nCheck-out: %s\nGuests: %d\nNew total: $%.2f",
		updated.RoomType,
		timezone.Format(updated.CheckInDate, constant.DateOnlyFormat),
		timezone.Format(updated.CheckOutDate, constant.DateOnlyFormat),
		updated.GuestCount,
		updated.TotalPrice,
	))

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	existing, err := s.repo.GetWithGuest(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if existing.ID == constant.Empty {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err = existing.Booking.Cancel(); err != nil {
		log.Warn().Err(err).Str("bookingID", id).Msg("cancel not allowed")

		if existing.Booking.State() == model.StateCheckedIn {
			return failure.Conflict("Your stay has already started. Please contact the front desk to check out.") //nolint:wrapcheck
		}

		return failure.Conflict("This booking is already cancelled.") //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.disarmReminders(ctx, id)
	s.publishEvent(ctx, dto.EventBookingCancelled, existing.Booking, existing.GuestPhone)
	s.invalidateCaches(ctx, id)

	s.notify(ctx, existing.GuestPhone, "Your booking has been cancelled. We hope to see you another time! 👋")

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.GetWithGuest(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModelWithGuest(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllWithGuest(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// CheckAvailability reports how many rooms of the type remain for the range.
// Remaining capacity is never stored; it is the room count minus overlapping
// confirmed bookings at read time.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomByType(ctx, req.RoomType)
	if err != nil {
		return res, err
	}

	checkIn, err := timezone.Parse(req.CheckInDate, constant.DateOnlyFormat)
	if err != nil {
		return res, failure.BadRequestFromString("invalid check-in date") //nolint:wrapcheck
	}

	checkOut, err := timezone.Parse(req.CheckOutDate, constant.DateOnlyFormat)
	if err != nil {
		return res, failure.BadRequestFromString("invalid check-out date") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check-out must be after check-in") //nolint:wrapcheck
	}

	overlap, err := s.repo.CountOverlapping(ctx, req.RoomType, checkIn, checkOut, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to count overlapping bookings")

		return res, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	available := room.Availability - overlap
	if available < 0 {
		available = 0
	}

	probe := model.Booking{CheckInDate: checkIn, CheckOutDate: checkOut}

	res = dto.AvailabilityResponse{
		RoomType:       room.Type,
		Available:      available,
		PricePerNight:  room.Price,
		Nights:         probe.Nights(),
		EstimatedTotal: probe.TotalFor(room.Price),
	}

	return res, nil
}

func (s *serviceImpl) ActiveByPhone(ctx context.Context, phone string) (booking model.BookingWithGuest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ActiveByPhone")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err = s.repo.GetActiveByPhone(ctx, phone)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active booking")

		return booking, fmt.Errorf("failed to get active booking: %w", err)
	}

	return booking, nil
}

// CompleteCheckIn assigns a room and marks the stay started. The state guard
// rejects bookings that are not verified yet.
func (s *serviceImpl) CompleteCheckIn(ctx context.Context, id string) (booking model.BookingWithGuest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CompleteCheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err = s.repo.GetWithGuest(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	roomNumber := fmt.Sprintf("%d", rand.Intn(500)+100) //nolint:gosec

	if err = booking.Booking.CompleteCheckIn(roomNumber); err != nil {
		log.Warn().Err(err).Str("bookingID", id).Msg("check-in not allowed")

		switch booking.Booking.State() {
		case model.StateCheckedIn:
			return booking, failure.Conflict("You are already checked in. Enjoy your stay! 🛎️") //nolint:wrapcheck
		case model.StateCancelled:
			return booking, failure.Conflict("This booking has been cancelled, so check-in is not available.") //nolint:wrapcheck
		default:
			return booking, failure.Conflict("Please verify your ID first. Type *checkin* and we'll walk you through it.") //nolint:wrapcheck
		}
	}

	fields := map[string]any{
		model.FieldPaidStatus:    booking.PaidStatus,
		model.FieldCheckinStatus: booking.CheckinStatus,
		model.FieldRoomNumber:    booking.RoomNumber,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to complete check-in")

		return booking, fmt.Errorf("failed to complete check-in: %w", err)
	}

	s.publishEvent(ctx, dto.EventBookingCheckedIn, booking.Booking, booking.GuestPhone)
	s.invalidateCaches(ctx, id)

	return booking, nil
}

// ResolvePayment is the payment-link landing. The charge went through, so the
// booking is marked paid, the stay starts and the guest hears about the room
// assignment over chat right away.
func (s *serviceImpl) ResolvePayment(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ResolvePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.CompleteCheckIn(ctx, id)
	if err != nil {
		return res, err
	}

	s.notify(ctx, booking.GuestPhone, fmt.Sprintf(
		"Payment received! 🎉 Welcome, %s.\n\nYour room number is *%s*. Your key is waiting at the front desk.\n\nType *services* any time for room service and more.",
		booking.GuestName,
		booking.RoomNumber,
	))

	res.FromModelWithGuest(booking)

	return res, nil
}

func (s *serviceImpl) roomByType(ctx context.Context, roomType string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldType,
				Value:    roomType,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.BadRequestFromString(fmt.Sprintf("unknown room type: %s", roomType)) //nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) ensureUser(ctx context.Context, name, phone string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldPhone,
				Value:    phone,
				Operator: gDto.FilterOperatorEq,
				Table:    userModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID != constant.Empty {
		return user, nil
	}

	now := timezone.Now()
	user = userModel.User{
		ID:    uuid.New().String(),
		Name:  name,
		Phone: phone,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	if err = s.userRepo.Upsert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to upsert user")

		return user, fmt.Errorf("failed to upsert user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) checkCapacity(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time, excludeID string) error {
	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check-out must be after check-in") //nolint:wrapcheck
	}

	overlap, err := s.repo.CountOverlapping(ctx, room.Type, checkIn, checkOut, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count overlapping bookings")

		return fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	if overlap >= room.Availability {
		return failure.Conflict(fmt.Sprintf("no %s rooms available for the selected dates", room.Type)) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) applyUpdate(booking model.Booking, req dto.UpdateBookingRequest) (model.Booking, error) {
	if req.RoomType != constant.Empty {
		booking.RoomType = req.RoomType
	}

	if req.CheckInDate != constant.Empty {
		checkIn, err := timezone.Parse(req.CheckInDate, constant.DateOnlyFormat)
		if err != nil {
			return booking, failure.BadRequestFromString("invalid check-in date") //nolint:wrapcheck
		}

		booking.CheckInDate = checkIn
	}

	if req.CheckOutDate != constant.Empty {
		checkOut, err := timezone.Parse(req.CheckOutDate, constant.DateOnlyFormat)
		if err != nil {
			return booking, failure.BadRequestFromString("invalid check-out date") //nolint:wrapcheck
		}

		booking.CheckOutDate = checkOut
	}

	if req.CheckInTime != constant.Empty {
		booking.CheckInTime = req.CheckInTime
	}

	if req.CheckOutTime != constant.Empty {
		booking.CheckOutTime = req.CheckOutTime
	}

	if req.GuestCount > 0 {
		booking.GuestCount = req.GuestCount
	}

	if req.Notes != constant.Empty {
		booking.Notes = req.Notes
	}

	return booking, nil
}

// RearmReminders reloads persisted pre-arrival reminders whose fire time is
// still ahead and schedules them again. Called once at startup so in-process
// timers survive restarts.
func (s *serviceImpl) RearmReminders(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RearmReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	rows, err := s.reminderRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    reminderModel.FieldReminderTime,
				Value:    timezone.Now(),
				Operator: gDto.FilterOperatorGreater,
				Table:    reminderModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load pending reminders")

		return fmt.Errorf("failed to load pending reminders: %w", err)
	}

	rearmed := 0

	for _, row := range rows {
		booking, getErr := s.repo.GetWithGuest(ctx, row.BookingID)
		if getErr != nil {
			log.Error().Err(getErr).Str("bookingID", row.BookingID).Msg("failed to get booking for reminder")

			continue
		}

		if booking.ID == constant.Empty || booking.Status != model.StatusConfirmed {
			continue
		}

		s.scheduleReminder(row.BookingID, row.ReminderType, row.ReminderTime, booking.GuestName, booking.GuestPhone)

		rearmed++
	}

	log.Info().Int("count", rearmed).Msg("pre-arrival reminders re-armed")

	return nil
}

// armCheckInReminders persists and schedules the 24hr and 1hr pre-arrival
// reminders. Times already in the past are skipped.
func (s *serviceImpl) armCheckInReminders(ctx context.Context, booking model.Booking, guestName, guestPhone string) {
	checkInAt := s.checkInInstant(booking)
	now := timezone.Now()

	reminders := []struct {
		reminderType string
		fireAt       time.Time
	}{
		{reminderType: reminderModel.Type24Hr, fireAt: checkInAt.Add(-24 * time.Hour)},
		{reminderType: reminderModel.Type1Hr, fireAt: checkInAt.Add(-1 * time.Hour)},
	}

	for _, reminder := range reminders {
		if !reminder.fireAt.After(now) {
			continue
		}

		row := reminderModel.Reminder{
			ID:           uuid.New().String(),
			BookingID:    booking.ID,
			ReminderTime: reminder.fireAt,
			ReminderType: reminder.reminderType,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
			},
		}

		if err := s.reminderRepo.Insert(ctx, row); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to persist reminder")

			continue
		}

		s.scheduleReminder(booking.ID, reminder.reminderType, reminder.fireAt, guestName, guestPhone)
	}
}

func (s *serviceImpl) scheduleReminder(bookingID, reminderType string, fireAt time.Time, guestName, guestPhone string) {
	message := reminderMessage(reminderType, guestName)

	s.scheduler.Schedule(bookingID+":"+reminderType, fireAt, func(taskCtx context.Context) {
		if err := s.gateway.SendText(taskCtx, guestPhone, message); err != nil {
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to send check-in reminder")
		}
	})
}

func reminderMessage(reminderType, guestName string) string {
	if reminderType == reminderModel.Type1Hr {
		return fmt.Sprintf("Hi %s! Your check-in is in one hour. Have a safe trip! 🚗", guestName)
	}

	return fmt.Sprintf("Hi %s! Just a reminder that your check-in at our hotel is tomorrow. See you soon! 🛎️", guestName)
}

func (s *serviceImpl) disarmReminders(ctx context.Context, bookingID string) {
	s.scheduler.CancelByPrefix(bookingID + ":")

	if err := s.reminderRepo.DeleteByBooking(ctx, bookingID); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to delete reminders")
	}
}

func (s *serviceImpl) checkInInstant(booking model.Booking) time.Time {
	checkInTime := booking.CheckInTime
	if checkInTime == constant.Empty {
		checkInTime = defaultCheckInTime
	}

	parsed, err := time.Parse(constant.TimeOnlyFormat, checkInTime)
	if err != nil {
		parsed, _ = time.Parse(constant.TimeOnlyFormat, defaultCheckInTime)
	}

	date := booking.CheckInDate

	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, timezone.GetLocation())
}

// publishEvent emits the lifecycle event asynchronously. A broker outage must
// never fail the guest-facing operation.
func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking, guestPhone string) {
	go func() {
		c := context.WithoutCancel(ctx)

		payload := dto.BookingEvent{
			Event:      event,
			BookingID:  booking.ID,
			GuestPhone: guestPhone,
			RoomType:   booking.RoomType,
			Status:     booking.Status,
			TotalPrice: booking.TotalPrice,
			OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topic, kafka.Message{Key: booking.ID, Value: payload}); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// notify sends a courtesy message; failures are logged, never propagated.
func (s *serviceImpl) notify(ctx context.Context, phone, message string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.gateway.SendText(c, phone, message); err != nil {
			log.Error().Err(err).Str("phone", phone).Msg("failed to send notification")
		}
	}()
}
