package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"concierge/config"
	"concierge/infras/ocr"
	ocrMocks "concierge/infras/ocr/mocks"
	"concierge/infras/otel/mocks"
	s3Mocks "concierge/infras/s3/mocks"
	whatsappMocks "concierge/infras/whatsapp/mocks"
	bookingMocks "concierge/internal/domains/booking/mocks"
	bookingModel "concierge/internal/domains/booking/model"
	"concierge/internal/domains/verification/service"
	verificationMocks "concierge/internal/domains/verification/mocks"
	schedulerMocks "concierge/internal/scheduler/mocks"
	"concierge/shared/failure"
)

type verificationFixture struct {
	repo      *verificationMocks.MockVerifiedID
	bookings  *bookingMocks.MockBooking
	gateway   *whatsappMocks.MockClient
	verifier  *ocrMocks.MockVerifier
	archive   *s3Mocks.MockS3
	scheduler *schedulerMocks.MockScheduler
	svc       service.Verification
}

func newVerificationFixture(ctrl *gomock.Controller) *verificationFixture {
	f := &verificationFixture{
		repo:      verificationMocks.NewMockVerifiedID(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		gateway:   whatsappMocks.NewMockClient(ctrl),
		verifier:  ocrMocks.NewMockVerifier(ctrl),
		archive:   s3Mocks.NewMockS3(ctrl),
		scheduler: schedulerMocks.NewMockScheduler(ctrl),
	}

	cfg := &config.Config{}
	cfg.Verification.ExpiryMinutes = 5
	cfg.Verification.OCRTimeoutSecs = 5
	cfg.Verification.FileRetries = 1

	f.svc = service.New(
		f.repo,
		f.bookings,
		f.gateway,
		f.verifier,
		f.archive,
		f.scheduler,
		cfg,
		mocks.NewOtel(),
	)

	return f
}

func bookingInState(mutate func(b *bookingModel.Booking)) bookingModel.BookingWithGuest {
	booking := bookingModel.BookingWithGuest{
		Booking: bookingModel.Booking{
			ID:                 "bk-1",
			Status:             bookingModel.StatusConfirmed,
			PaidStatus:         bookingModel.PaidStatusUnpaid,
			VerificationStatus: bookingModel.VerificationNone,
			CheckinStatus:      bookingModel.CheckinStatusNotCheckedIn,
		},
		GuestName:  "Asha",
		GuestPhone: "628123456789",
	}

	if mutate != nil {
		mutate(&booking.Booking)
	}

	return booking
}

func TestVerificationService_BeginCheckIn(t *testing.T) {
	t.Run("confirmed booking enters verification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(bookingInState(nil), nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, bookingModel.VerificationPending, fields[bookingModel.FieldVerificationStatus])

				return nil
			})

		assert.NoError(t, f.svc.BeginCheckIn(context.Background(), "bk-1"))
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "missing").Return(bookingModel.BookingWithGuest{}, nil)

		err := f.svc.BeginCheckIn(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("checked-in booking cannot restart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		checkedIn := bookingInState(func(b *bookingModel.Booking) {
			b.CheckinStatus = bookingModel.CheckinStatusCheckedIn
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(checkedIn, nil)

		err := f.svc.BeginCheckIn(context.Background(), "bk-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Contains(t, err.Error(), "already checked in")
		assert.NotContains(t, err.Error(), "transition")
	})
}

func TestVerificationService_StartIDCollection(t *testing.T) {
	t.Run("selecting a type opens the upload window and arms the expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		pending := bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationPending
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(pending, nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, bookingModel.IDTypePassport, fields[bookingModel.FieldSelectedIDType])

				return nil
			})
		f.scheduler.EXPECT().Schedule("bk-1:verify_expiry", gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.StartIDCollection(context.Background(), "bk-1", bookingModel.IDTypePassport))
	})

	t.Run("unknown id type is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		pending := bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationPending
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(pending, nil)

		err := f.svc.StartIDCollection(context.Background(), "bk-1", "library_card")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestVerificationService_ProcessIDImage(t *testing.T) {
	awaitingImage := func() bookingModel.BookingWithGuest {
		return bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationPending
			b.SelectedIDType = bookingModel.IDTypePassport
		})
	}

	writeTempImage := func(t *testing.T) string {
		t.Helper()

		path := filepath.Join(t.TempDir(), "id-upload.jpg")
		assert.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

		return path
	}

	t.Run("successful read stores the id and removes the temp file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)
		tempPath := writeTempImage(t)

		extracted := ocr.ExtractedID{
			IDType:   bookingModel.IDTypePassport,
			IDNumber: "A1234567",
			Name:     "Asha",
			DOB:      "1990-04-01",
			RawText:  "PASSPORT A1234567",
			Verified: true,
		}

		f.gateway.EXPECT().DownloadMedia(gomock.Any(), "media-1").Return(tempPath, nil)
		f.verifier.EXPECT().
			Verify(gomock.Any(), tempPath, bookingModel.IDTypePassport, "bk-1").
			Return(extracted, nil)
		f.scheduler.EXPECT().Cancel("bk-1:verify_expiry")
		f.repo.EXPECT().
			SaveWithBookingUpdate(gomock.Any(), gomock.Any(), gomock.Any(), "bk-1").
			Return(nil)
		f.archive.EXPECT().
			UploadFromPath(gomock.Any(), "verified-ids", "bk-1.jpg", "image/jpeg", tempPath).
			Return("s3://bucket/verified-ids/bk-1.jpg", nil)

		result, err := f.svc.ProcessIDImage(context.Background(), awaitingImage(), "media-1")

		assert.NoError(t, err)
		assert.Equal(t, "A1234567", result.IDNumber)

		_, statErr := os.Stat(tempPath)
		assert.True(t, os.IsNotExist(statErr), "temp file must be removed")
	})

	t.Run("unverified read keeps the upload window open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)
		tempPath := writeTempImage(t)

		unverified := ocr.ExtractedID{
			IDType:   bookingModel.IDTypePassport,
			RawText:  "unreadable glare",
			Verified: false,
		}

		f.gateway.EXPECT().DownloadMedia(gomock.Any(), "media-1").Return(tempPath, nil)
		f.verifier.EXPECT().
			Verify(gomock.Any(), tempPath, bookingModel.IDTypePassport, "bk-1").
			Return(unverified, nil)

		// No expiry cancel, no save, no archive: the booking stays in the
		// upload step so the guest can retry.
		_, err := f.svc.ProcessIDImage(context.Background(), awaitingImage(), "media-1")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Contains(t, err.Error(), "clearer")

		_, statErr := os.Stat(tempPath)
		assert.True(t, os.IsNotExist(statErr), "temp file must be removed")
	})

	t.Run("temp file is removed when the read fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)
		tempPath := writeTempImage(t)

		f.gateway.EXPECT().DownloadMedia(gomock.Any(), "media-1").Return(tempPath, nil)
		f.verifier.EXPECT().
			Verify(gomock.Any(), tempPath, bookingModel.IDTypePassport, "bk-1").
			Return(ocr.ExtractedID{}, errors.New("ocr unavailable"))

		_, err := f.svc.ProcessIDImage(context.Background(), awaitingImage(), "media-1")

		assert.Error(t, err)

		_, statErr := os.Stat(tempPath)
		assert.True(t, os.IsNotExist(statErr), "temp file must be removed")
	})

	t.Run("unreadable download is rejected without calling the verifier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)
		missingPath := filepath.Join(t.TempDir(), "never-written.jpg")

		f.gateway.EXPECT().DownloadMedia(gomock.Any(), "media-1").Return(missingPath, nil)

		_, err := f.svc.ProcessIDImage(context.Background(), awaitingImage(), "media-1")

		assert.Error(t, err)
	})

	t.Run("booking outside the upload window is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		_, err := f.svc.ProcessIDImage(context.Background(), bookingInState(nil), "media-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestVerificationService_ConfirmIdentity(t *testing.T) {
	t.Run("approval verifies the booking and the stored id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		awaiting := bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationAwaitingConfirmation
			b.SelectedIDType = bookingModel.IDTypePassport
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(awaiting, nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, bookingModel.VerificationVerified, fields[bookingModel.FieldVerificationStatus])

				return nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.ConfirmIdentity(context.Background(), "bk-1"))
	})

	t.Run("approval without a pending confirmation is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(bookingInState(nil), nil)

		err := f.svc.ConfirmIdentity(context.Background(), "bk-1")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.NotContains(t, err.Error(), "transition")
	})
}

func TestVerificationService_RejectIdentity(t *testing.T) {
	t.Run("rejection reopens the upload window and re-arms the expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		awaiting := bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationAwaitingConfirmation
			b.SelectedIDType = bookingModel.IDTypePassport
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(awaiting, nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, bookingModel.VerificationPending, fields[bookingModel.FieldVerificationStatus])

				return nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.scheduler.EXPECT().Schedule("bk-1:verify_expiry", gomock.Any(), gomock.Any())

		assert.NoError(t, f.svc.RejectIdentity(context.Background(), "bk-1"))
	})
}

func TestVerificationService_ExpireVerification(t *testing.T) {
	t.Run("lapsed upload window resets and notifies the guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		awaitingImage := bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationPending
			b.SelectedIDType = bookingModel.IDTypePassport
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(awaitingImage, nil)
		f.bookings.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
				assert.Equal(t, bookingModel.VerificationExpired, fields[bookingModel.FieldVerificationStatus])

				return nil
			})
		f.gateway.EXPECT().SendText(gomock.Any(), "628123456789", gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.ExpireVerification(context.Background(), "bk-1"))
	})

	t.Run("verification that progressed wins over the timer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newVerificationFixture(ctrl)

		progressed := bookingInState(func(b *bookingModel.Booking) {
			b.VerificationStatus = bookingModel.VerificationAwaitingConfirmation
			b.SelectedIDType = bookingModel.IDTypePassport
		})

		f.bookings.EXPECT().GetWithGuest(gomock.Any(), "bk-1").Return(progressed, nil)

		assert.NoError(t, f.svc.ExpireVerification(context.Background(), "bk-1"))
	})
}
