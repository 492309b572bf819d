package reservation

import (
	"context"

	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// CreateReservation opens an empty reservation shell on the engine.
func (s *DefaultService) CreateReservation(ctx context.Context) (*models.Reservation, error) {
	res, err := s.Engine.CreateReservation(ctx)
	if err != nil {
		return nil, fromEngine(err, "failed to create reservation")
	}
	res.State = models.ReservationOpen
	return res, nil
}

// AttachAvailability attaches a priced, option-complete item to a
// reservation and immediately re-fetches the question tree, since
// attachment can introduce new item- and participant-level questions.
//
// Attachment is not idempotent at the engine level (attaching twice can
// duplicate participants), so a transport failure here is never retried:
// the error is surfaced and the caller must re-check state via
// AlreadyAttached before attempting again.
func (s *DefaultService) AttachAvailability(ctx context.Context, reservationID, itemID string) (*AttachOutcome, error) {
	logger := utils.GetLogger()

	// Verify the attachment precondition locally so an unassembled item is
	// rejected before the engine mutates anything.
	detail, err := s.Engine.GetAvailabilityDetail(ctx, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to fetch availability detail")
	}
	if !detail.OptionList.Complete {
		return nil, newFlowError(CodeInvalidSelection, "availability options are not complete; assemble the item before attaching")
	}
	pricing, err := s.Engine.PriceAvailability(ctx, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to price availability")
	}
	if !pricing.Valid {
		return nil, newFlowError(CodeInvalidSelection, "availability has no valid price; assemble the item before attaching")
	}

	result, err := s.Engine.AttachAvailability(ctx, reservationID, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to attach availability to reservation")
	}

	summary, err := s.Engine.GetReservationQuestions(ctx, reservationID)
	if err != nil {
		return nil, fromEngine(err, "attachment succeeded but question re-fetch failed")
	}

	logger.Info("attached availability to reservation",
		zap.String("reservationID", reservationID),
		zap.String("itemID", itemID),
		zap.Bool("canCommit", summary.CanCommit))

	res := result.Reservation
	res.ID = reservationID
	res.State = models.ReservationAttached
	res.CanCommit = summary.CanCommit
	res.Summary = *summary
	return &AttachOutcome{CanCommit: summary.CanCommit, Reservation: res}, nil
}

// AlreadyAttached reports whether the item is present on the reservation.
// It is the recovery path after a timed-out attachment: the engine state is
// consulted instead of blindly retrying a non-idempotent mutation.
func (s *DefaultService) AlreadyAttached(ctx context.Context, reservationID, itemID string) (bool, error) {
	summary, err := s.Engine.GetReservationQuestions(ctx, reservationID)
	if err != nil {
		return false, fromEngine(err, "failed to fetch reservation questions")
	}
	return summary.HasItem(itemID), nil
}
