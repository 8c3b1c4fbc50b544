package di

import (
	bookingService "concierge/internal/domains/booking/service"
	"concierge/internal/scheduler"
	"concierge/transport/http"
)

// App bundles everything main has to start: the HTTP transport and the
// recurring service-reminder loop sharing the same dependency graph.
type App struct {
	HTTP      *http.HTTP
	Reminders *scheduler.ServiceReminderLoop
	Scheduler scheduler.Scheduler
	Bookings  bookingService.Booking
}
