package conversation

//go:generate go run go.uber.org/mock/mockgen -source=./admin.go -destination=./mocks/admin_mock.go -package=mocks

import (
	"concierge/config"
	"concierge/infras/otel"
	"concierge/infras/whatsapp"
	bookingModel "concierge/internal/domains/booking/model"
	bookingRepo "concierge/internal/domains/booking/repository"
	catalogModel "concierge/internal/domains/catalog/model"
	catalogRepo "concierge/internal/domains/catalog/repository"
	roomRepo "concierge/internal/domains/room/repository"
	"concierge/shared"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/failure"
	"concierge/shared/timezone"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const adminListLimit = 10

// AdminRouter serves the staff phone number. Every turn is either a report
// pulled from the booking data or a decision on a pending service request.
type AdminRouter interface {
	Handle(ctx context.Context, from string, cmd Command) error
}

type adminRouter struct {
	bookings bookingRepo.Booking
	rooms    roomRepo.Room
	catalog  catalogRepo.Catalog
	gateway  whatsapp.Client
	cfg      *config.Config
	otel     otel.Otel
}

func NewAdminRouter(
	bookings bookingRepo.Booking,
	rooms roomRepo.Room,
	catalog catalogRepo.Catalog,
	gateway whatsapp.Client,
	cfg *config.Config,
	otl otel.Otel,
) AdminRouter {
	return &adminRouter{
		bookings: bookings,
		rooms:    rooms,
		catalog:  catalog,
		gateway:  gateway,
		cfg:      cfg,
		otel:     otl,
	}
}

func (r *adminRouter) Handle(ctx context.Context, from string, cmd Command) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelConversationScope, constant.OtelConversationScope+".admin.Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.dispatch(ctx, from, cmd)
	if err == nil {
		return nil
	}

	log.Error().Err(err).Str("from", from).Msg("admin conversation turn failed")

	reply := msgApology
	if failure.GetCode(err) != http.StatusInternalServerError {
		reply = err.Error()
	}

	if sendErr := r.gateway.SendText(ctx, from, reply); sendErr != nil {
		log.Error().Err(sendErr).Str("from", from).Msg("failed to send admin apology")
	}

	return err
}

func (r *adminRouter) dispatch(ctx context.Context, from string, cmd Command) error {
	switch cmd.Kind {
	case KindAdminServiceDecision:
		return r.decideServiceRequest(ctx, from, cmd)
	case KindSelection:
		return r.handleSelection(ctx, from, cmd.Selection)
	case KindText, KindUnknown, KindImage, KindIDTypeSelection, KindServiceRequest:
		return r.sendMenu(ctx, from)
	default:
		return r.sendMenu(ctx, from)
	}
}

func (r *adminRouter) sendMenu(ctx context.Context, from string) error {
	sections := []whatsapp.Section{
		{
			Title: "Overview",
			Rows: []whatsapp.Row{
				{ID: AdminDashboardSummary, Title: "Dashboard", Description: "Today at a glance"},
				{ID: AdminUrgentActions, Title: "Urgent actions", Description: "What needs attention now"},
			},
		},
		{
			Title: "Bookings",
			Rows: []whatsapp.Row{
				{ID: AdminViewAllBookings, Title: "All bookings", Description: "Latest bookings with guest details"},
				{ID: AdminTodayCheckins, Title: "Today's check-ins"},
				{ID: AdminTodayCheckouts, Title: "Today's check-outs"},
				{ID: AdminPendingVerifications, Title: "Pending verifications"},
				{ID: AdminUnpaidBookings, Title: "Unpaid bookings"},
			},
		},
		{
			Title: "Reports",
			Rows: []whatsapp.Row{
				{ID: AdminRoomStatus, Title: "Room status", Description: "Occupancy per room type"},
				{ID: AdminDailyRevenue, Title: "Daily revenue"},
				{ID: AdminOccupancyReport, Title: "Occupancy report"},
				{ID: AdminFeedbackSummary, Title: "Feedback summary"},
			},
		},
	}

	return r.gateway.SendList(ctx, from, "🏨 *Front desk console*\n\nWhat would you like to see?", "Open", sections)
}

//nolint:cyclop // flat dispatch over the closed admin menu
func (r *adminRouter) handleSelection(ctx context.Context, from, selection string) error {
	switch selection {
	case AdminDashboardSummary:
		return r.sendDashboard(ctx, from)
	case AdminUrgentActions:
		return r.sendUrgentActions(ctx, from)
	case AdminViewAllBookings:
		return r.sendBookingList(ctx, from, "📒 *Latest bookings*", gDto.FilterGroup{})
	case AdminTodayCheckins:
		return r.sendBookingList(ctx, from, "🛬 *Today's check-ins*", gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				confirmedFilter(),
				todayFilter("check_in_date"),
			},
		})
	case AdminTodayCheckouts:
		return r.sendBookingList(ctx, from, "🛫 *Today's check-outs*", gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				confirmedFilter(),
				todayFilter("check_out_date"),
			},
		})
	case AdminPendingVerifications:
		return r.sendBookingList(ctx, from, "🪪 *Pending verifications*", gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				confirmedFilter(),
				gDto.Filter{
					Field:    bookingModel.FieldVerificationStatus,
					Value:    bookingModel.VerificationPending,
					Operator: gDto.FilterOperatorEq,
					Table:    bookingModel.TableName,
				},
			},
		})
	case AdminUnpaidBookings:
		return r.sendBookingList(ctx, from, "💳 *Unpaid bookings*", gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				confirmedFilter(),
				gDto.Filter{
					Field:    bookingModel.FieldPaidStatus,
					Value:    bookingModel.PaidStatusUnpaid,
					Operator: gDto.FilterOperatorEq,
					Table:    bookingModel.TableName,
				},
			},
		})
	case AdminRoomStatus, AdminOccupancyReport:
		return r.sendOccupancy(ctx, from)
	case AdminDailyRevenue:
		return r.sendDailyRevenue(ctx, from)
	case AdminFeedbackSummary:
		return r.gateway.SendText(ctx, from, "💬 *Feedback summary*\n\nNo feedback recorded yet.")
	default:
		return r.sendMenu(ctx, from)
	}
}

func (r *adminRouter) sendDashboard(ctx context.Context, from string) error {
	confirmed, err := r.bookings.Count(ctx, gDto.FilterGroup{Filters: []any{confirmedFilter()}})
	if err != nil {
		return err
	}

	checkedIn, err := r.bookings.GetCheckedIn(ctx)
	if err != nil {
		return err
	}

	arrivals, err := r.bookings.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{confirmedFilter(), todayFilter("check_in_date")},
	})
	if err != nil {
		return err
	}

	departures, err := r.bookings.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{confirmedFilter(), todayFilter("check_out_date")},
	})
	if err != nil {
		return err
	}

	revenue, err := r.bookings.SumRevenueForDay(ctx, timezone.Now())
	if err != nil {
		return err
	}

	body := fmt.Sprintf(
		"📊 *Dashboard — %s*\n\nActive bookings: %d\nGuests in-house: %d\nArrivals today: %d\nDepartures today: %d\nRevenue today: $%.2f",
		timezone.Format(timezone.Now(), constant.DateOnlyFormat),
		confirmed,
		len(checkedIn),
		arrivals,
		departures,
		revenue,
	)

	return r.gateway.SendText(ctx, from, body)
}

// sendUrgentActions surfaces the queues that block guests: identities waiting
// for review and verified stays that have not paid.
func (r *adminRouter) sendUrgentActions(ctx context.Context, from string) error {
	pendingIDs, err := r.bookings.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			confirmedFilter(),
			gDto.Filter{
				Field:    bookingModel.FieldVerificationStatus,
				Value:    bookingModel.VerificationPending,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		return err
	}

	unpaid, err := r.bookings.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			confirmedFilter(),
			gDto.Filter{
				Field:    bookingModel.FieldVerificationStatus,
				Value:    bookingModel.VerificationVerified,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldPaidStatus,
				Value:    bookingModel.PaidStatusUnpaid,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		return err
	}

	if pendingIDs == 0 && unpaid == 0 {
		return r.gateway.SendText(ctx, from, "✅ Nothing urgent right now. All queues are clear.")
	}

	body := fmt.Sprintf(
		"⚠️ *Urgent actions*\n\nIDs awaiting guest confirmation: %d\nVerified but unpaid stays: %d",
		pendingIDs,
		unpaid,
	)

	return r.gateway.SendText(ctx, from, body)
}

func (r *adminRouter) sendBookingList(ctx context.Context, from, title string, filter gDto.FilterGroup) error {
	params := gDto.QueryParams{
		Page:    1,
		Limit:   adminListLimit,
		SortBy:  "created_at",
		SortDir: "DESC",
	}

	bookings, err := r.bookings.GetAllWithGuest(ctx, params, filter)
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		return r.gateway.SendText(ctx, from, title+"\n\nNothing to show.")
	}

	lines := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		line := fmt.Sprintf(
			"• %s (%s)\n  %s, %s → %s, $%.2f, %s/%s",
			booking.GuestName,
			booking.GuestPhone,
			booking.RoomType,
			timezone.Format(booking.CheckInDate, constant.DateOnlyFormat),
			timezone.Format(booking.CheckOutDate, constant.DateOnlyFormat),
			booking.TotalPrice,
			booking.PaidStatus,
			booking.CheckinStatus,
		)

		lines = append(lines, line)
	}

	return r.gateway.SendText(ctx, from, title+"\n\n"+strings.Join(lines, "\n"))
}

// sendOccupancy reports, per room type, how many rooms a stay overlapping
// today occupies against the physical count.
func (r *adminRouter) sendOccupancy(ctx context.Context, from string) error {
	rooms, err := r.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())
	tomorrow := today.AddDate(0, 0, 1)

	var totalRooms, totalOccupied int

	lines := make([]string, 0, len(rooms))

	for _, room := range rooms {
		occupied, countErr := r.bookings.CountOverlapping(ctx, room.Type, today, tomorrow, constant.Empty)
		if countErr != nil {
			return countErr
		}

		if occupied > room.Availability {
			occupied = room.Availability
		}

		totalRooms += room.Availability
		totalOccupied += occupied

		lines = append(lines, fmt.Sprintf("• %s: %d/%d occupied", room.Type, occupied, room.Availability))
	}

	var rate float64
	if totalRooms > 0 {
		rate = float64(totalOccupied) / float64(totalRooms) * 100
	}

	body := fmt.Sprintf("🛏️ *Occupancy — %s*\n\n%s\n\nOverall: %d/%d (%.0f%%)",
		timezone.Format(now, constant.DateOnlyFormat),
		strings.Join(lines, "\n"),
		totalOccupied,
		totalRooms,
		rate,
	)

	return r.gateway.SendText(ctx, from, body)
}

func (r *adminRouter) sendDailyRevenue(ctx context.Context, from string) error {
	now := timezone.Now()

	revenue, err := r.bookings.SumRevenueForDay(ctx, now)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("💰 *Revenue — %s*\n\nPaid bookings created today: $%.2f", timezone.Format(now, constant.DateOnlyFormat), revenue)

	return r.gateway.SendText(ctx, from, body)
}

// decideServiceRequest applies the admin's confirm/decline to the pending
// request and tells the guest with category-specific wording.
func (r *adminRouter) decideServiceRequest(ctx context.Context, from string, cmd Command) error {
	request, err := r.catalog.GetRequest(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "request_service_id",
				Field:    "service_id",
				Value:    cmd.ServiceID,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.RequestTableName,
			},
			gDto.Filter{
				Field:    catalogModel.RequestFieldBookingID,
				Value:    cmd.BookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.RequestTableName,
			},
			gDto.Filter{
				Field:    catalogModel.RequestFieldStatus,
				Value:    catalogModel.RequestStatusPending,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.RequestTableName,
			},
		},
	})
	if err != nil {
		return err
	}

	if request.ID == constant.Empty {
		return failure.NotFound("no pending request found, it may have been handled already") //nolint:wrapcheck
	}

	status := catalogModel.RequestStatusDeclined
	if cmd.Approve {
		status = catalogModel.RequestStatusConfirmed
	}

	now := timezone.Now()
	fields := map[string]any{
		catalogModel.RequestFieldStatus: status,
		"completed_at":                  now,
		constant.FieldModifiedAt:        now,
	}

	if err = r.catalog.UpdateRequest(ctx, fields, shared.FilterByID(request.ID, catalogModel.RequestFieldID, catalogModel.RequestTableName)); err != nil {
		return err
	}

	service, err := r.catalog.GetService(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    catalogModel.ServiceFieldID,
				Value:    cmd.ServiceID,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.ServiceTableName,
			},
		},
	})
	if err != nil {
		return err
	}

	booking, err := r.bookings.GetWithGuest(ctx, cmd.BookingID)
	if err != nil {
		return err
	}

	if booking.ID != constant.Empty {
		guestMessage := serviceDecisionMessage(service.Category, cmd.Approve)
		if sendErr := r.gateway.SendText(ctx, booking.GuestPhone, guestMessage); sendErr != nil {
			log.Error().Err(sendErr).Str("bookingID", booking.ID).Msg("failed to notify guest of service decision")
		}
	}

	ack := fmt.Sprintf("Request for *%s* (room %s) marked as %s. ✅", service.Name, booking.RoomNumber, status)

	return r.gateway.SendText(ctx, from, ack)
}

func confirmedFilter() gDto.Filter {
	return gDto.Filter{
		Field:    bookingModel.FieldStatus,
		Value:    bookingModel.StatusConfirmed,
		Operator: gDto.FilterOperatorEq,
		Table:    bookingModel.TableName,
	}
}

// todayFilter matches rows whose date column falls on the hotel-local today.
func todayFilter(column string) gDto.Filter {
	return gDto.Filter{
		Value:    fmt.Sprintf("DATE(%s.%s) = '%s'", bookingModel.TableName, column, timezone.Format(timezone.Now(), constant.DateOnlyFormat)),
		Operator: gDto.FilterPlainQuery,
	}
}
