package model

import (
	"errors"
	"fmt"
)

// State is the booking lifecycle position, derived from the persisted status
// columns. Transitions go through the guard methods below; an invalid
// transition is an error, never a silent write.
type State string

const (
	StateConfirmed                 State = "confirmed"
	StateAwaitingIDType            State = "awaiting_id_type"
	StateAwaitingImage             State = "awaiting_image"
	StateAwaitingGuestConfirmation State = "awaiting_guest_confirmation"
	StateAwaitingPayment           State = "awaiting_payment"
	StateCheckedIn                 State = "checked_in"
	StateCancelled                 State = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid booking state transition")

func (b *Booking) State() State {
	switch {
	case b.Status == StatusCancelled:
		return StateCancelled
	case b.CheckinStatus == CheckinStatusCheckedIn:
		return StateCheckedIn
	case b.VerificationStatus == VerificationPending && b.SelectedIDType == "":
		return StateAwaitingIDType
	case b.VerificationStatus == VerificationPending:
		return StateAwaitingImage
	case b.VerificationStatus == VerificationAwaitingConfirmation:
		return StateAwaitingGuestConfirmation
	case b.VerificationStatus == VerificationVerified && b.PaidStatus != PaidStatusPaid:
		return StateAwaitingPayment
	default:
		return StateConfirmed
	}
}

func (b *Booking) transitionError(action string) error {
	return fmt.Errorf("%w: cannot %s from state %s", ErrInvalidTransition, action, b.State())
}

// BeginCheckIn starts the ID verification flow for a confirmed booking.
func (b *Booking) BeginCheckIn() error {
	if b.State() != StateConfirmed {
		return b.transitionError("begin check-in")
	}

	b.VerificationStatus = VerificationPending
	b.SelectedIDType = ""

	return nil
}

// SelectIDType records the document type the guest will upload.
func (b *Booking) SelectIDType(idType string) error {
	if !ValidIDType(idType) {
		return fmt.Errorf("%w: unknown id type %q", ErrInvalidTransition, idType)
	}

	state := b.State()
	if state != StateAwaitingIDType && state != StateAwaitingImage {
		return b.transitionError("select id type")
	}

	b.SelectedIDType = idType

	return nil
}

// AwaitConfirmation moves to the guest yes/no step after a successful OCR read.
func (b *Booking) AwaitConfirmation() error {
	if b.State() != StateAwaitingImage {
		return b.transitionError("await confirmation")
	}

	b.VerificationStatus = VerificationAwaitingConfirmation

	return nil
}

// ApproveIdentity is the guest confirming the extracted details are correct.
func (b *Booking) ApproveIdentity() error {
	if b.State() != StateAwaitingGuestConfirmation {
		return b.transitionError("approve identity")
	}

	b.VerificationStatus = VerificationVerified

	return nil
}

// RejectIdentity returns to the upload step for another attempt.
func (b *Booking) RejectIdentity() error {
	if b.State() != StateAwaitingGuestConfirmation {
		return b.transitionError("reject identity")
	}

	b.VerificationStatus = VerificationPending

	return nil
}

// ExpireVerification resets an upload window the guest let lapse. Only legal
// while an image is still awaited; a verification that progressed in the
// meantime wins over the timer.
func (b *Booking) ExpireVerification() error {
	state := b.State()
	if state != StateAwaitingImage && state != StateAwaitingIDType {
		return b.transitionError("expire verification")
	}

	b.VerificationStatus = VerificationExpired
	b.SelectedIDType = ""

	return nil
}

// CompleteCheckIn finalizes the stay start for a verified booking.
func (b *Booking) CompleteCheckIn(roomNumber string) error {
	state := b.State()
	if b.VerificationStatus != VerificationVerified || state == StateCheckedIn || state == StateCancelled {
		return b.transitionError("complete check-in")
	}

	b.PaidStatus = PaidStatusPaid
	b.CheckinStatus = CheckinStatusCheckedIn
	b.RoomNumber = roomNumber

	return nil
}

// Cancel terminates any pre-check-in booking.
func (b *Booking) Cancel() error {
	state := b.State()
	if state == StateCheckedIn || state == StateCancelled {
		return b.transitionError("cancel")
	}

	b.Status = StatusCancelled

	return nil
}
