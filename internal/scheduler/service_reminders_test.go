package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "concierge/infras/otel/mocks"
	waMocks "concierge/infras/whatsapp/mocks"
	bookingMocks "concierge/internal/domains/booking/mocks"
	bookingModel "concierge/internal/domains/booking/model"
	catalogMocks "concierge/internal/domains/catalog/mocks"
	catalogModel "concierge/internal/domains/catalog/model"
	"concierge/internal/scheduler"
)

// allDayWindow is open at any wall-clock time, closedWindow at none. The loop
// reads the real clock, so tests only use windows that cannot flip mid-run.
func allDayWindow(id, name string) catalogModel.ServiceSchedule {
	return catalogModel.ServiceSchedule{
		ID:              id,
		ServiceName:     name,
		StartTime:       "00:00",
		EndTime:         "23:59",
		MessageTemplate: "Hi {guest_name}, {service_name} is open from {start_time} to {end_time}!",
		Active:          true,
	}
}

func closedWindow(id, name string) catalogModel.ServiceSchedule {
	return catalogModel.ServiceSchedule{
		ID:              id,
		ServiceName:     name,
		StartTime:       "23:59",
		EndTime:         "00:00",
		MessageTemplate: "closed",
		Active:          true,
	}
}

func checkedInGuest(bookingID, name, phone string) bookingModel.BookingWithGuest {
	return bookingModel.BookingWithGuest{
		Booking: bookingModel.Booking{
			ID:            bookingID,
			CheckinStatus: bookingModel.CheckinStatusCheckedIn,
		},
		GuestName:  name,
		GuestPhone: phone,
	}
}

type reminderFixture struct {
	bookings *bookingMocks.MockBooking
	catalog  *catalogMocks.MockCatalog
	gateway  *waMocks.MockClient
	loop     *scheduler.ServiceReminderLoop
}

func newReminderFixture(ctrl *gomock.Controller) *reminderFixture {
	f := &reminderFixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		catalog:  catalogMocks.NewMockCatalog(ctrl),
		gateway:  waMocks.NewMockClient(ctrl),
	}

	f.loop = scheduler.NewServiceReminderLoop(f.bookings, f.catalog, f.gateway, otelMocks.NewOtel())

	return f
}

func TestServiceReminderLoop_Tick(t *testing.T) {
	t.Run("open windows reach every checked-in guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReminderFixture(ctrl)

		f.catalog.EXPECT().
			GetActiveSchedules(gomock.Any()).
			Return([]catalogModel.ServiceSchedule{
				allDayWindow("sch-1", "Breakfast"),
				closedWindow("sch-2", "Night spa"),
			}, nil)
		f.bookings.EXPECT().
			GetCheckedIn(gomock.Any()).
			Return([]bookingModel.BookingWithGuest{
				checkedInGuest("bk-1", "Asha", "628111"),
				checkedInGuest("bk-2", "Budi", "628222"),
			}, nil)

		f.catalog.EXPECT().
			MarkReminderSent(gomock.Any(), "bk-1", "sch-1", gomock.Any()).
			Return(true, nil)
		f.catalog.EXPECT().
			MarkReminderSent(gomock.Any(), "bk-2", "sch-1", gomock.Any()).
			Return(true, nil)

		f.gateway.EXPECT().
			SendText(gomock.Any(), "628111", "Hi Asha, Breakfast is open from 00:00 to 23:59!").
			Return(nil)
		f.gateway.EXPECT().
			SendText(gomock.Any(), "628222", "Hi Budi, Breakfast is open from 00:00 to 23:59!").
			Return(nil)

		f.loop.Tick(context.Background())
	})

	t.Run("an existing marker suppresses the send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReminderFixture(ctrl)

		f.catalog.EXPECT().
			GetActiveSchedules(gomock.Any()).
			Return([]catalogModel.ServiceSchedule{allDayWindow("sch-1", "Breakfast")}, nil)
		f.bookings.EXPECT().
			GetCheckedIn(gomock.Any()).
			Return([]bookingModel.BookingWithGuest{checkedInGuest("bk-1", "Asha", "628111")}, nil)
		f.catalog.EXPECT().
			MarkReminderSent(gomock.Any(), "bk-1", "sch-1", gomock.Any()).
			Return(false, nil)

		f.loop.Tick(context.Background())
	})

	t.Run("a marker failure skips that guest but not the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReminderFixture(ctrl)

		f.catalog.EXPECT().
			GetActiveSchedules(gomock.Any()).
			Return([]catalogModel.ServiceSchedule{allDayWindow("sch-1", "Breakfast")}, nil)
		f.bookings.EXPECT().
			GetCheckedIn(gomock.Any()).
			Return([]bookingModel.BookingWithGuest{
				checkedInGuest("bk-1", "Asha", "628111"),
				checkedInGuest("bk-2", "Budi", "628222"),
			}, nil)
		f.catalog.EXPECT().
			MarkReminderSent(gomock.Any(), "bk-1", "sch-1", gomock.Any()).
			Return(false, errors.New("deadlock detected"))
		f.catalog.EXPECT().
			MarkReminderSent(gomock.Any(), "bk-2", "sch-1", gomock.Any()).
			Return(true, nil)
		f.gateway.EXPECT().
			SendText(gomock.Any(), "628222", gomock.Any()).
			Return(nil)

		f.loop.Tick(context.Background())
	})

	t.Run("no open window means no booking lookup at all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReminderFixture(ctrl)

		f.catalog.EXPECT().
			GetActiveSchedules(gomock.Any()).
			Return([]catalogModel.ServiceSchedule{closedWindow("sch-2", "Night spa")}, nil)

		f.loop.Tick(context.Background())
	})

	t.Run("a schedule query failure is a silent no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newReminderFixture(ctrl)

		f.catalog.EXPECT().
			GetActiveSchedules(gomock.Any()).
			Return(nil, errors.New("connection refused"))

		f.loop.Tick(context.Background())
	})
}

func TestRenderScheduleMessage(t *testing.T) {
	schedule := catalogModel.ServiceSchedule{
		ServiceName:     "Spa",
		StartTime:       "10:00",
		EndTime:         "20:00",
		MessageTemplate: "{guest_name}: {service_name} runs {start_time}-{end_time}. {service_name} awaits!",
	}

	message := scheduler.RenderScheduleMessage(schedule, "Asha")

	assert.Equal(t, "Asha: Spa runs 10:00-20:00. Spa awaits!", message)
}
