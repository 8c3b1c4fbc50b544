package scheduler

import (
	"concierge/infras/otel"
	"concierge/infras/whatsapp"
	bookingRepo "concierge/internal/domains/booking/repository"
	catalogModel "concierge/internal/domains/catalog/model"
	catalogRepo "concierge/internal/domains/catalog/repository"
	"concierge/shared/constant"
	"concierge/shared/timezone"
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const tickInterval = time.Minute

// ServiceReminderLoop pushes schedule-window reminders (breakfast hours, spa
// hours, ...) to every checked-in guest. Delivery is deduplicated per
// (booking, schedule, day) through a database marker, so overlapping ticks
// and restarts cannot double-send.
type ServiceReminderLoop struct {
	bookings bookingRepo.Booking
	catalog  catalogRepo.Catalog
	gateway  whatsapp.Client
	otel     otel.Otel
}

func NewServiceReminderLoop(bookings bookingRepo.Booking, catalog catalogRepo.Catalog, gateway whatsapp.Client, otl otel.Otel) *ServiceReminderLoop {
	return &ServiceReminderLoop{
		bookings: bookings,
		catalog:  catalog,
		gateway:  gateway,
		otel:     otl,
	}
}

// Run blocks until ctx is done, ticking once per minute.
func (l *ServiceReminderLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	log.Info().Msg("service reminder loop started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("service reminder loop stopped")

			return
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick runs a single pass. Exported so a pass is testable without the timer.
func (l *ServiceReminderLoop) Tick(ctx context.Context) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".ServiceReminderTick")
	defer scope.End()

	now := timezone.Now()

	schedules, err := l.catalog.GetActiveSchedules(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load active service schedules")

		return
	}

	active := make([]catalogModel.ServiceSchedule, 0, len(schedules))

	for _, schedule := range schedules {
		if schedule.InWindow(now) {
			active = append(active, schedule)
		}
	}

	if len(active) == 0 {
		return
	}

	bookings, err := l.bookings.GetCheckedIn(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load checked-in bookings")

		return
	}

	for _, booking := range bookings {
		for _, schedule := range active {
			inserted, err := l.catalog.MarkReminderSent(ctx, booking.ID, schedule.ID, now)
			if err != nil {
				log.Error().Err(err).Str("bookingID", booking.ID).Str("scheduleID", schedule.ID).Msg("failed to mark service reminder")

				continue
			}

			if !inserted {
				continue
			}

			message := RenderScheduleMessage(schedule, booking.GuestName)
			if err := l.gateway.SendText(ctx, booking.GuestPhone, message); err != nil {
				log.Error().Err(err).Str("bookingID", booking.ID).Str("scheduleID", schedule.ID).Msg("failed to send service reminder")
			}
		}
	}
}

// RenderScheduleMessage fills the schedule template placeholders.
func RenderScheduleMessage(schedule catalogModel.ServiceSchedule, guestName string) string {
	message := schedule.MessageTemplate
	message = strings.ReplaceAll(message, "{guest_name}", guestName)
	message = strings.ReplaceAll(message, "{service_name}", schedule.ServiceName)
	message = strings.ReplaceAll(message, "{start_time}", schedule.StartTime)
	message = strings.ReplaceAll(message, "{end_time}", schedule.EndTime)

	return message
}
