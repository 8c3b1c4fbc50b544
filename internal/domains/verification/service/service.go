package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"concierge/config"
	"concierge/infras/ocr"
	"concierge/infras/otel"
	"concierge/infras/s3"
	"concierge/infras/whatsapp"
	bookingModel "concierge/internal/domains/booking/model"
	bookingRepo "concierge/internal/domains/booking/repository"
	"concierge/internal/domains/verification/model"
	"concierge/internal/domains/verification/repository"
	"concierge/internal/scheduler"
	"concierge/shared"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/failure"
	gModel "concierge/shared/model"
	"concierge/shared/timezone"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	expiryKeySuffix = ":verify_expiry"
	archiveDir      = "verified-ids"

	fileRetryDelay = 500 * time.Millisecond
)

type Verification interface {
	BeginCheckIn(ctx context.Context, bookingID string) error
	StartIDCollection(ctx context.Context, bookingID, idType string) error
	ProcessIDImage(ctx context.Context, booking bookingModel.BookingWithGuest, mediaID string) (ocr.ExtractedID, error)
	ConfirmIdentity(ctx context.Context, bookingID string) error
	RejectIdentity(ctx context.Context, bookingID string) error
	ExpireVerification(ctx context.Context, bookingID string) error
}

type serviceImpl struct {
	repo        repository.VerifiedID
	bookingRepo bookingRepo.Booking
	gateway     whatsapp.Client
	verifier    ocr.Verifier
	archive     s3.S3
	scheduler   scheduler.Scheduler
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.VerifiedID,
	bookings bookingRepo.Booking,
	gateway whatsapp.Client,
	verifier ocr.Verifier,
	archive s3.S3,
	sched scheduler.Scheduler,
	cfg *config.Config,
	otl otel.Otel,
) Verification {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookings,
		gateway:     gateway,
		verifier:    verifier,
		archive:     archive,
		scheduler:   sched,
		cfg:         cfg,
		otel:        otl,
	}
}

func (s *serviceImpl) getBooking(ctx context.Context, bookingID string) (bookingModel.BookingWithGuest, error) {
	booking, err := s.bookingRepo.GetWithGuest(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) updateBooking(ctx context.Context, booking bookingModel.Booking) error {
	fields := map[string]any{
		bookingModel.FieldVerificationStatus: booking.VerificationStatus,
		bookingModel.FieldSelectedIDType:     booking.SelectedIDType,
		constant.FieldModifiedAt:             timezone.Now(),
	}

	if err := s.bookingRepo.Update(ctx, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking verification state")

		return fmt.Errorf("failed to update booking verification state: %w", err)
	}

	return nil
}

// BeginCheckIn moves a confirmed booking into the verification flow.
func (s *serviceImpl) BeginCheckIn(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".verification.BeginCheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err = booking.Booking.BeginCheckIn(); err != nil {
		log.Warn().Err(err).Str("bookingID", bookingID).Msg("check-in cannot start")

		return checkInStartBlocked(booking.Booking.State())
	}

	return s.updateBooking(ctx, booking.Booking)
}

// StartIDCollection records the selected document type and opens the upload
// window. The expiry timer fires after the configured number of minutes and
// re-checks state before resetting anything.
func (s *serviceImpl) StartIDCollection(ctx context.Context, bookingID, idType string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".verification.StartIDCollection")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err = booking.Booking.SelectIDType(idType); err != nil {
		log.Warn().Err(err).Str("bookingID", bookingID).Msg("id type selection rejected")

		if !bookingModel.ValidIDType(idType) {
			return failure.Conflict("Please pick one of the listed document types.") //nolint:wrapcheck
		}

		return failure.Conflict("Please type *checkin* first and we'll walk you through verification.") //nolint:wrapcheck
	}

	if err = s.updateBooking(ctx, booking.Booking); err != nil {
		return err
	}

	expiry := time.Duration(s.cfg.Verification.ExpiryMinutes) * time.Minute

	s.scheduler.Schedule(bookingID+expiryKeySuffix, timezone.Now().Add(expiry), func(taskCtx context.Context) {
		if expireErr := s.ExpireVerification(taskCtx, bookingID); expireErr != nil {
			log.Error().Err(expireErr).Str("bookingID", bookingID).Msg("verification expiry failed")
		}
	})

	return nil
}

// ProcessIDImage downloads the uploaded document, runs it through the
// verification collaborator and stores the extracted fields together with the
// booking state advance in one transaction. The temp file is removed on every
// path.
func (s *serviceImpl) ProcessIDImage(ctx context.Context, booking bookingModel.BookingWithGuest, mediaID string) (result ocr.ExtractedID, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".verification.ProcessIDImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if booking.Booking.State() != bookingModel.StateAwaitingImage {
		return result, failure.Conflict("no ID upload expected for this booking") //nolint:wrapcheck
	}

	tempPath, err := s.gateway.DownloadMedia(ctx, mediaID)
	if err != nil {
		log.Error().Err(err).Str("mediaID", mediaID).Msg("failed to download ID image")

		return result, fmt.Errorf("failed to download ID image: %w", err)
	}

	defer func() {
		if removeErr := os.Remove(tempPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			log.Error().Err(removeErr).Str("path", tempPath).Msg("failed to remove temp ID image")
		}
	}()

	if err = s.waitReadable(tempPath); err != nil {
		return result, err
	}

	timeout := time.Duration(s.cfg.Verification.OCRTimeoutSecs) * time.Second

	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err = s.verifier.Verify(verifyCtx, tempPath, booking.SelectedIDType, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("ID verification failed")

		return result, fmt.Errorf("ID verification failed: %w", err)
	}

	// An unverified read keeps the upload window (and its expiry timer) open
	// so the guest can try again with a better photo.
	if !result.Verified {
		log.Warn().Str("bookingID", booking.ID).Msg("collaborator could not verify the document")

		return result, failure.BadRequestFromString("We couldn't verify that document. 📷 Please send a clearer, well-lit photo of your ID.") //nolint:wrapcheck
	}

	// The guest beat the clock; the expiry timer must not fire anymore.
	s.scheduler.Cancel(booking.ID + expiryKeySuffix)

	if err = booking.Booking.AwaitConfirmation(); err != nil {
		log.Warn().Err(err).Str("bookingID", booking.ID).Msg("confirmation step rejected")

		return result, failure.Conflict("We weren't expecting a document for this booking right now. Type *checkin* to start over.") //nolint:wrapcheck
	}

	now := timezone.Now()
	verifiedID := model.VerifiedID{
		ID:                 uuid.New().String(),
		BookingID:          booking.ID,
		IDType:             booking.SelectedIDType,
		IDNumber:           result.IDNumber,
		Name:               result.Name,
		DOB:                result.DOB,
		VerificationStatus: model.StatusPending,
		OCRText:            result.RawText,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	bookingFields := map[string]any{
		bookingModel.FieldVerificationStatus: booking.VerificationStatus,
		constant.FieldModifiedAt:             now,
	}

	if err = s.repo.SaveWithBookingUpdate(ctx, verifiedID, bookingFields, booking.ID); err != nil {
		return result, err
	}

	s.archiveImage(ctx, booking.ID, tempPath)

	return result, nil
}

// ConfirmIdentity is the guest approving the extracted details.
func (s *serviceImpl) ConfirmIdentity(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".verification.ConfirmIdentity")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err = booking.Booking.ApproveIdentity(); err != nil {
		log.Warn().Err(err).Str("bookingID", bookingID).Msg("identity approval rejected")

		return failure.Conflict("There are no ID details waiting for your confirmation. Type *checkin* if you'd like to verify now.") //nolint:wrapcheck
	}

	if err = s.updateBooking(ctx, booking.Booking); err != nil {
		return err
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldStatus:        model.StatusVerified,
		"verified_at":            now,
		constant.FieldModifiedAt: now,
	}

	if err = s.repo.Update(ctx, fields, s.pendingFilter(bookingID)); err != nil {
		log.Error().Err(err).Msg("failed to mark verified id")

		return fmt.Errorf("failed to mark verified id: %w", err)
	}

	return nil
}

// RejectIdentity reopens the upload window after the guest flags a misread.
func (s *serviceImpl) RejectIdentity(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".verification.RejectIdentity")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err = booking.Booking.RejectIdentity(); err != nil {
		log.Warn().Err(err).Str("bookingID", bookingID).Msg("identity rejection rejected")

		return failure.Conflict("There is nothing to retry right now. Type *checkin* to start verification again.") //nolint:wrapcheck
	}

	if err = s.updateBooking(ctx, booking.Booking); err != nil {
		return err
	}

	fields := map[string]any{
		model.FieldStatus:        model.StatusRejected,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, s.pendingFilter(bookingID)); err != nil {
		log.Error().Err(err).Msg("failed to mark rejected id")

		return fmt.Errorf("failed to mark rejected id: %w", err)
	}

	expiry := time.Duration(s.cfg.Verification.ExpiryMinutes) * time.Minute

	s.scheduler.Schedule(bookingID+expiryKeySuffix, timezone.Now().Add(expiry), func(taskCtx context.Context) {
		if expireErr := s.ExpireVerification(taskCtx, bookingID); expireErr != nil {
			log.Error().Err(expireErr).Str("bookingID", bookingID).Msg("verification expiry failed")
		}
	})

	return nil
}

// ExpireVerification is the timer callback. It re-reads the booking and only
// resets the window when the guest truly never delivered an image; any state
// that progressed past the upload step wins over the timer.
func (s *serviceImpl) ExpireVerification(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".verification.ExpireVerification")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err = booking.Booking.ExpireVerification(); err != nil {
		log.Info().Str("bookingID", bookingID).Str("state", string(booking.Booking.State())).Msg("verification progressed before expiry, timer is a no-op")

		return nil
	}

	if err = s.updateBooking(ctx, booking.Booking); err != nil {
		return err
	}

	message := "Your ID verification session has expired. ⏰\nPlease type *checkin* to start again when you are ready."
	if sendErr := s.gateway.SendText(ctx, booking.GuestPhone, message); sendErr != nil {
		log.Error().Err(sendErr).Str("bookingID", bookingID).Msg("failed to send expiry notice")
	}

	return nil
}

// waitReadable polls until the downloaded file is present and non-empty,
// bounded by the configured retry count.
func (s *serviceImpl) waitReadable(path string) error {
	retries := s.cfg.Verification.FileRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error

	for attempt := range retries {
		info, err := os.Stat(path)
		if err == nil && info.Size() > 0 {
			return nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("file %s is empty", path)
		}

		if attempt < retries-1 {
			time.Sleep(fileRetryDelay)
		}
	}

	return fmt.Errorf("ID image is not readable: %w", lastErr)
}

// archiveImage stores a copy of the verified document in object storage.
// Best effort: archival failures are logged, the verification stands.
func (s *serviceImpl) archiveImage(ctx context.Context, bookingID, tempPath string) {
	contentType := "image/jpeg"
	if filepath.Ext(tempPath) == ".png" {
		contentType = "image/png"
	}

	fileName := fmt.Sprintf("%s%s", bookingID, filepath.Ext(tempPath))

	if _, err := s.archive.UploadFromPath(ctx, archiveDir, fileName, contentType, tempPath); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to archive ID image")
	}
}

// checkInStartBlocked turns a begin-check-in guard rejection into copy the
// guest can act on. The transition detail stays in the logs.
func checkInStartBlocked(state bookingModel.State) error {
	switch state {
	case bookingModel.StateCheckedIn:
		return failure.Conflict("You are already checked in. Enjoy your stay! 🛎️") //nolint:wrapcheck
	case bookingModel.StateCancelled:
		return failure.Conflict("This booking has been cancelled, so check-in is not available.") //nolint:wrapcheck
	case bookingModel.StateAwaitingPayment:
		return failure.Conflict("Your ID is already verified. Please settle the payment link we sent to finish checking in.") //nolint:wrapcheck
	default:
		return failure.Conflict("Your check-in is already in progress. Please continue where you left off.") //nolint:wrapcheck
	}
}

func (s *serviceImpl) pendingFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "pending_status",
				Field:    model.FieldStatus,
				Value:    model.StatusPending,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
