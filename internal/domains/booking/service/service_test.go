package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"concierge/config"
	kafkaInfra "concierge/infras/kafka"
	kafkaMocks "concierge/infras/kafka/mocks"
	"concierge/infras/otel/mocks"
	whatsappMocks "concierge/infras/whatsapp/mocks"
	bookingMocks "concierge/internal/domains/booking/mocks"
	"concierge/internal/domains/booking/model"
	"concierge/internal/domains/booking/model/dto"
	"concierge/internal/domains/booking/service"
	reminderMocks "concierge/internal/domains/reminder/mocks"
	reminderModel "concierge/internal/domains/reminder/model"
	roomMocks "concierge/internal/domains/room/mocks"
	roomModel "concierge/internal/domains/room/model"
	userMocks "concierge/internal/domains/user/mocks"
	userModel "concierge/internal/domains/user/model"
	schedulerMocks "concierge/internal/scheduler/mocks"
	cacheMocks "concierge/shared/cache/mocks"
	"concierge/shared/failure"
	"concierge/shared/timezone"
)

type bookingServiceFixture struct {
	repo      *bookingMocks.MockBooking
	rooms     *roomMocks.MockRoom
	users     *userMocks.MockUser
	reminders *reminderMocks.MockReminder
	scheduler *schedulerMocks.MockScheduler
	gateway   *whatsappMocks.MockClient
	events    *kafkaMocks.MockClient
	cache     *cacheMocks.MockRedisCache
	svc       service.Booking
}

func newBookingServiceFixture(ctrl *gomock.Controller) *bookingServiceFixture {
	f := &bookingServiceFixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		users:     userMocks.NewMockUser(ctrl),
		reminders: reminderMocks.NewMockReminder(ctrl),
		scheduler: schedulerMocks.NewMockScheduler(ctrl),
		gateway:   whatsappMocks.NewMockClient(ctrl),
		events:    kafkaMocks.NewMockClient(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Kafka.Topic = "bookings"
	cfg.Cache.TTL = 60

	f.svc = service.New(
		f.repo,
		f.rooms,
		f.users,
		f.reminders,
		f.scheduler,
		f.gateway,
		f.events,
		cfg,
		f.cache,
		mocks.NewOtel(),
	)

	return f
}

// expectAsyncSideEffects covers the fire-and-forget goroutines (event publish,
// cache invalidation, courtesy message) and returns a wait that blocks until
// all three ran, so expectations are satisfied before the controller finishes.
func (f *bookingServiceFixture) expectAsyncSideEffects(t *testing.T, withNotify bool) func() {
	t.Helper()

	var wg sync.WaitGroup

	wg.Add(2)

	f.events.EXPECT().
		SendMessages(gomock.Any(), "bookings", gomock.Any()).
		DoAndReturn(func(ctx context.Context, topic string, messages ...kafkaInfra.Message) error {
			wg.Done()

			return nil
		})

	f.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, key string) error {
			wg.Done()

			return nil
		})

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	if withNotify {
		wg.Add(1)

		f.gateway.EXPECT().
			SendText(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, to, body string) error {
				wg.Done()

				return nil
			})
	}

	return func() {
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("async side effects did not complete")
		}
	}
}

func deluxeRoom() roomModel.Room {
	return roomModel.Room{
		ID:           "room-1",
		Type:         "deluxe",
		Price:        100,
		Availability: 3,
	}
}

func TestBookingService_Create(t *testing.T) {
	futureIn := timezone.Now().AddDate(0, 1, 0)
	futureOut := futureIn.AddDate(0, 0, 2)

	req := dto.CreateBookingRequest{
		Name:         "Asha",
		Phone:        "628123456789",
		RoomType:     "deluxe",
		CheckInDate:  timezone.Format(futureIn, "2006-01-02"),
		CheckOutDate: timezone.Format(futureOut, "2006-01-02"),
		GuestCount:   2,
	}

	existingUser := userModel.User{
		ID:    "user-1",
		Name:  "Asha",
		Phone: "628123456789",
	}

	t.Run("two nights at the nightly rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().GetActiveByPhone(gomock.Any(), req.Phone).Return(model.BookingWithGuest{}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUser, nil)
		f.repo.EXPECT().
			CountOverlapping(gomock.Any(), "deluxe", gomock.Any(), gomock.Any(), "").
			Return(0, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		// Both pre-arrival reminders are in the future, so both get persisted
		// and armed.
		f.reminders.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		wait := f.expectAsyncSideEffects(t, true)

		res, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, float64(200), res.TotalPrice)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.Equal(t, model.PaidStatusUnpaid, res.PaidStatus)
		assert.Equal(t, "Asha", res.GuestName)

		wait()
	})

	t.Run("new guest is created on first booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().GetActiveByPhone(gomock.Any(), req.Phone).Return(model.BookingWithGuest{}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
		f.users.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			CountOverlapping(gomock.Any(), "deluxe", gomock.Any(), gomock.Any(), "").
			Return(0, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.reminders.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		wait := f.expectAsyncSideEffects(t, true)

		_, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)

		wait()
	})

	t.Run("second active booking is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().
			GetActiveByPhone(gomock.Any(), req.Phone).
			Return(model.BookingWithGuest{Booking: model.Booking{ID: "bk-existing"}}, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("full room type is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().GetActiveByPhone(gomock.Any(), req.Phone).Return(model.BookingWithGuest{}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUser, nil)
		f.repo.EXPECT().
			CountOverlapping(gomock.Any(), "deluxe", gomock.Any(), gomock.Any(), "").
			Return(3, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("unknown room type is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("check-out before check-in is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		reversed := req
		reversed.CheckInDate = timezone.Format(futureOut, "2006-01-02")
		reversed.CheckOutDate = timezone.Format(futureIn, "2006-01-02")

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().GetActiveByPhone(gomock.Any(), reversed.Phone).Return(model.BookingWithGuest{}, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingUser, nil)

		_, err := f.svc.Create(context.Background(), reversed)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	futureIn := timezone.Now().AddDate(0, 1, 0)
	futureOut := futureIn.AddDate(0, 0, 2)

	existing := model.BookingWithGuest{
		Booking: model.Booking{
			ID:                 "bk-1",
			UserID:             "user-1",
			RoomType:           "deluxe",
			CheckInDate:        futureIn,
			CheckOutDate:       futureOut,
			GuestCount:         2,
			Status:             model.StatusConfirmed,
			PaidStatus:         model.PaidStatusUnpaid,
			VerificationStatus: model.VerificationNone,
			CheckinStatus:      model.CheckinStatusNotCheckedIn,
			TotalPrice:         200,
		},
		GuestName:  "Asha",
		GuestPhone: "628123456789",
	}

	t.Run("extending the stay reprices and re-arms reminders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		req := dto.UpdateBookingRequest{
			CheckOutDate: timezone.Format(futureIn.AddDate(0, 0, 4), "2006-01-02"),
		}

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(existing, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().
			CountOverlapping(gomock.Any(), "deluxe", gomock.Any(), gomock.Any(), "bk-1").
			Return(0, nil)

		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, float64(400), fields[model.FieldTotalPrice])

				return nil
			})

		f.scheduler.EXPECT().CancelByPrefix("bk-1:")
		f.reminders.EXPECT().DeleteByBooking(gomock.Any(), "bk-1").Return(nil)
		f.reminders.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		wait := f.expectAsyncSideEffects(t, true)

		err := f.svc.Update(context.Background(), "bk-1", req)

		assert.NoError(t, err)

		wait()
	})

	t.Run("empty update is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		err := f.svc.Update(context.Background(), "bk-1", dto.UpdateBookingRequest{})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "missing").Return(model.BookingWithGuest{}, nil)

		err := f.svc.Update(context.Background(), "missing", dto.UpdateBookingRequest{GuestCount: 3})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("cancelled booking cannot be modified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		cancelled := existing
		cancelled.Status = model.StatusCancelled

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(cancelled, nil)

		err := f.svc.Update(context.Background(), "bk-1", dto.UpdateBookingRequest{GuestCount: 3})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	existing := model.BookingWithGuest{
		Booking: model.Booking{
			ID:                 "bk-1",
			Status:             model.StatusConfirmed,
			PaidStatus:         model.PaidStatusUnpaid,
			VerificationStatus: model.VerificationNone,
			CheckinStatus:      model.CheckinStatusNotCheckedIn,
		},
		GuestPhone: "628123456789",
	}

	t.Run("confirmed booking cancels and reminders are disarmed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(existing, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})
		f.scheduler.EXPECT().CancelByPrefix("bk-1:")
		f.reminders.EXPECT().DeleteByBooking(gomock.Any(), "bk-1").Return(nil)

		wait := f.expectAsyncSideEffects(t, true)

		err := f.svc.Cancel(context.Background(), "bk-1")

		assert.NoError(t, err)

		wait()
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "missing").Return(model.BookingWithGuest{}, nil)

		err := f.svc.Cancel(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("checked-in booking cannot cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		checkedIn := existing
		checkedIn.CheckinStatus = model.CheckinStatusCheckedIn

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(checkedIn, nil)

		err := f.svc.Cancel(context.Background(), "bk-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "front desk")
		assert.NotContains(t, err.Error(), "transition")
	})
}

func TestBookingService_CheckAvailability(t *testing.T) {
	t.Run("remaining capacity is count minus overlap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().
			CountOverlapping(gomock.Any(), "deluxe", gomock.Any(), gomock.Any(), "").
			Return(1, nil)

		res, err := f.svc.CheckAvailability(context.Background(), dto.AvailabilityRequest{
			RoomType:     "deluxe",
			CheckInDate:  "2030-01-10",
			CheckOutDate: "2030-01-13",
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Available)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, float64(100), res.PricePerNight)
		assert.Equal(t, float64(300), res.EstimatedTotal)
	})

	t.Run("overbooked range clamps to zero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)
		f.repo.EXPECT().
			CountOverlapping(gomock.Any(), "deluxe", gomock.Any(), gomock.Any(), "").
			Return(7, nil)

		res, err := f.svc.CheckAvailability(context.Background(), dto.AvailabilityRequest{
			RoomType:     "deluxe",
			CheckInDate:  "2030-01-10",
			CheckOutDate: "2030-01-11",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Available)
	})

	t.Run("same-day range is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxeRoom(), nil)

		_, err := f.svc.CheckAvailability(context.Background(), dto.AvailabilityRequest{
			RoomType:     "deluxe",
			CheckInDate:  "2030-01-10",
			CheckOutDate: "2030-01-10",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_CompleteCheckIn(t *testing.T) {
	verified := model.BookingWithGuest{
		Booking: model.Booking{
			ID:                 "bk-1",
			Status:             model.StatusConfirmed,
			PaidStatus:         model.PaidStatusUnpaid,
			VerificationStatus: model.VerificationVerified,
			SelectedIDType:     model.IDTypePassport,
			CheckinStatus:      model.CheckinStatusNotCheckedIn,
		},
		GuestPhone: "628123456789",
	}

	t.Run("verified booking checks in with a room assignment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(verified, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, model.PaidStatusPaid, fields[model.FieldPaidStatus])
				assert.Equal(t, model.CheckinStatusCheckedIn, fields[model.FieldCheckinStatus])
				assert.NotEmpty(t, fields[model.FieldRoomNumber])

				return nil
			})

		wait := f.expectAsyncSideEffects(t, false)

		booking, err := f.svc.CompleteCheckIn(context.Background(), "bk-1")

		assert.NoError(t, err)
		assert.Equal(t, model.CheckinStatusCheckedIn, booking.CheckinStatus)
		assert.NotEmpty(t, booking.RoomNumber)

		wait()
	})

	t.Run("unverified booking is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		unverified := verified
		unverified.VerificationStatus = model.VerificationNone

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(unverified, nil)

		_, err := f.svc.CompleteCheckIn(context.Background(), "bk-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "verify your ID")
		assert.NotContains(t, err.Error(), "transition")
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "missing").Return(model.BookingWithGuest{}, nil)

		_, err := f.svc.CompleteCheckIn(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_ResolvePayment(t *testing.T) {
	awaitingPayment := model.BookingWithGuest{
		Booking: model.Booking{
			ID:                 "bk-1",
			Status:             model.StatusConfirmed,
			PaidStatus:         model.PaidStatusUnpaid,
			VerificationStatus: model.VerificationVerified,
			CheckinStatus:      model.CheckinStatusNotCheckedIn,
		},
		GuestName:  "Asha",
		GuestPhone: "628123456789",
	}

	t.Run("settled payment completes the check-in and tells the guest the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(awaitingPayment, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, model.PaidStatusPaid, fields[model.FieldPaidStatus])
				assert.Equal(t, model.CheckinStatusCheckedIn, fields[model.FieldCheckinStatus])

				return nil
			})

		var wg sync.WaitGroup
		wg.Add(3)

		f.events.EXPECT().
			SendMessages(gomock.Any(), "bookings", gomock.Any()).
			DoAndReturn(func(ctx context.Context, topic string, messages ...kafkaInfra.Message) error {
				wg.Done()

				return nil
			})
		f.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, key string) error {
				wg.Done()

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.gateway.EXPECT().
			SendText(gomock.Any(), "628123456789", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, body string) error {
				assert.Contains(t, body, "Payment received")
				assert.Contains(t, body, "room number")
				wg.Done()

				return nil
			})

		res, err := f.svc.ResolvePayment(context.Background(), "bk-1")

		assert.NoError(t, err)
		assert.Equal(t, model.PaidStatusPaid, res.PaidStatus)
		assert.Equal(t, model.CheckinStatusCheckedIn, res.CheckinStatus)
		assert.NotEmpty(t, res.RoomNumber)
		assert.Equal(t, "Asha", res.GuestName)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("async side effects did not complete")
		}
	})

	t.Run("already checked-in booking reads as a friendly conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		checkedIn := awaitingPayment
		checkedIn.PaidStatus = model.PaidStatusPaid
		checkedIn.CheckinStatus = model.CheckinStatusCheckedIn

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(checkedIn, nil)

		_, err := f.svc.ResolvePayment(context.Background(), "bk-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "already checked in")
		assert.NotContains(t, err.Error(), "transition")
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		var wg sync.WaitGroup
		wg.Add(1)

		f.cache.EXPECT().
			Get(gomock.Any(), "booking:get:bk-1", gomock.Any()).
			Return(errors.New("cache: nil"))

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(model.BookingWithGuest{
			Booking: model.Booking{
				ID:     "bk-1",
				Status: model.StatusConfirmed,
			},
			GuestName: "Asha",
		}, nil)

		f.cache.EXPECT().
			Save(gomock.Any(), "booking:get:bk-1", gomock.Any(), 60).
			DoAndReturn(func(ctx context.Context, key string, value any, ttl int) error {
				wg.Done()

				return nil
			})

		res, err := f.svc.Get(context.Background(), "bk-1")

		assert.NoError(t, err)
		assert.Equal(t, "bk-1", res.ID)
		assert.Equal(t, "Asha", res.GuestName)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("cache write did not complete")
		}
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.cache.EXPECT().
			Get(gomock.Any(), "booking:get:missing", gomock.Any()).
			Return(errors.New("cache: nil"))

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "missing").Return(model.BookingWithGuest{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_RearmReminders(t *testing.T) {
	fireAt := timezone.Now().Add(2 * time.Hour)

	confirmed := model.BookingWithGuest{
		Booking: model.Booking{
			ID:     "bk-1",
			Status: model.StatusConfirmed,
		},
		GuestName:  "Asha",
		GuestPhone: "628123456789",
	}

	t.Run("future reminders for confirmed bookings are rescheduled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.reminders.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]reminderModel.Reminder{
				{BookingID: "bk-1", ReminderType: reminderModel.Type24Hr, ReminderTime: fireAt},
				{BookingID: "bk-1", ReminderType: reminderModel.Type1Hr, ReminderTime: fireAt},
				{BookingID: "bk-2", ReminderType: reminderModel.Type24Hr, ReminderTime: fireAt},
			}, nil)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(confirmed, nil).Times(2)

		cancelled := confirmed
		cancelled.ID = "bk-2"
		cancelled.Status = model.StatusCancelled
		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-2").Return(cancelled, nil)

		f.scheduler.EXPECT().Schedule("bk-1:"+reminderModel.Type24Hr, fireAt, gomock.Any())
		f.scheduler.EXPECT().Schedule("bk-1:"+reminderModel.Type1Hr, fireAt, gomock.Any())

		err := f.svc.RearmReminders(context.Background())

		assert.NoError(t, err)
	})

	t.Run("booking lookup failure skips only that row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.reminders.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]reminderModel.Reminder{
				{BookingID: "bk-broken", ReminderType: reminderModel.Type24Hr, ReminderTime: fireAt},
				{BookingID: "bk-1", ReminderType: reminderModel.Type1Hr, ReminderTime: fireAt},
			}, nil)

		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-broken").Return(model.BookingWithGuest{}, errors.New("connection reset"))
		f.repo.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(confirmed, nil)

		f.scheduler.EXPECT().Schedule("bk-1:"+reminderModel.Type1Hr, fireAt, gomock.Any())

		err := f.svc.RearmReminders(context.Background())

		assert.NoError(t, err)
	})

	t.Run("reminder load failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newBookingServiceFixture(ctrl)

		f.reminders.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset"))

		err := f.svc.RearmReminders(context.Background())

		assert.Error(t, err)
	})
}
