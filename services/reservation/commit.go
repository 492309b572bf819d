package reservation

import (
	"context"

	"tourbook/models"
	"tourbook/services/engine"
	"tourbook/utils"

	"go.uber.org/zap"
)

// GetQuestions fetches the current three-level question tree. This is the
// only read in the flow and is always safe to retry or poll.
func (s *DefaultService) GetQuestions(ctx context.Context, reservationID string) (*models.Reservation, error) {
	summary, err := s.Engine.GetReservationQuestions(ctx, reservationID)
	if err != nil {
		return nil, fromEngine(err, "failed to fetch reservation questions")
	}

	res := &models.Reservation{
		ID:        reservationID,
		CanCommit: summary.CanCommit,
		Summary:   *summary,
	}
	if summary.CanCommit {
		res.State = models.ReservationReady
	} else {
		res.State = models.ReservationAnswering
	}
	return res, nil
}

// SubmitAnswers runs one answer round: fetch the current tree, infer
// answers from the guest records, merge them with the caller's explicit
// answers, and submit. When the engine still reports canCommit=false the
// tree is re-fetched before returning, because accepted answers can reveal
// new questions. The caller presents those and submits again.
//
// Requires TermsAccepted; its absence fails locally before any engine call.
// Resubmitting an identical round is safe: same answers against the same
// questions are idempotent on the engine side.
func (s *DefaultService) SubmitAnswers(ctx context.Context, reservationID string, input SubmitInput) (*SubmitOutcome, error) {
	logger := utils.GetLogger()

	if !input.TermsAccepted {
		return nil, newFlowError(CodeMissingConsent, "terms must be accepted before submitting answers")
	}

	summary, err := s.Engine.GetReservationQuestions(ctx, reservationID)
	if err != nil {
		return nil, fromEngine(err, "failed to fetch reservation questions")
	}

	// Readiness short-circuit: nothing left to answer.
	if summary.CanCommit && len(input.AvailabilityAnswers) == 0 && len(input.QuestionAnswers) == 0 {
		return &SubmitOutcome{
			CanCommit:   true,
			Reservation: readyReservation(reservationID, *summary),
			LeadPerson:  leadPersonName(input.Guests),
		}, nil
	}

	contact := ContactOverrides{Email: input.CustomerEmail, Phone: input.CustomerPhone}
	inferred := InferTreeAnswers(*summary, input.Guests, contact)
	answers := MergeAnswers(inferred, input.AvailabilityAnswers, input.QuestionAnswers)

	submission := engineSubmission(leadPersonName(input.Guests), answers)
	result, err := s.Engine.AnswerReservationQuestions(ctx, reservationID, submission)
	if err != nil {
		// The merge succeeded and the engine may have recorded part of the
		// round; the caller must re-fetch before deciding anything.
		return nil, &FlowError{Code: CodePartialProgress, Message: "answer submission failed; re-fetch reservation state before continuing", Err: err}
	}

	logger.Info("submitted reservation answers",
		zap.String("reservationID", reservationID),
		zap.Int("answerCount", len(answers)),
		zap.Bool("canCommit", result.CanCommit))

	res := result.Reservation
	res.ID = reservationID
	res.CanCommit = result.CanCommit

	if result.CanCommit {
		res.State = models.ReservationReady
		res.Summary = *summary
		return &SubmitOutcome{CanCommit: true, Reservation: res, LeadPerson: submission.LeadPassengerName}, nil
	}

	// Not ready: re-read the tree so newly revealed questions reach the
	// caller for the next round. A failed re-fetch here is diagnostic only;
	// the submission itself landed.
	refreshed, err := s.Engine.GetReservationQuestions(ctx, reservationID)
	if err != nil {
		logger.Warn("question re-fetch after submission failed",
			zap.String("reservationID", reservationID), zap.Error(err))
		refreshed = summary
	}
	res.State = models.ReservationAnswering
	res.Summary = *refreshed
	return &SubmitOutcome{CanCommit: false, Reservation: res, LeadPerson: submission.LeadPassengerName}, nil
}

// Commit finalizes a reservation. The engine's canCommit flag is
// authoritative and is re-read here. Commit is never attempted while it is
// false, regardless of what the caller last saw.
func (s *DefaultService) Commit(ctx context.Context, reservationID string) (*models.Reservation, error) {
	summary, err := s.Engine.GetReservationQuestions(ctx, reservationID)
	if err != nil {
		return nil, fromEngine(err, "failed to fetch reservation questions")
	}
	if !summary.CanCommit {
		return nil, newFlowError(CodeInvalidSelection, "reservation is not ready to commit; required questions remain unanswered")
	}

	res, err := s.Engine.CommitReservation(ctx, reservationID)
	if err != nil {
		return nil, fromEngine(err, "failed to commit reservation")
	}
	res.ID = reservationID
	res.State = models.ReservationCommitted
	res.Summary = *summary

	utils.GetLogger().Info("committed reservation", zap.String("reservationID", reservationID))
	return res, nil
}

func readyReservation(reservationID string, summary models.QuestionSummary) models.Reservation {
	return models.Reservation{
		ID:        reservationID,
		State:     models.ReservationReady,
		CanCommit: true,
		Summary:   summary,
	}
}

func leadPersonName(guests []models.GuestRecord) string {
	if len(guests) == 0 {
		return ""
	}
	return guests[0].FullName()
}

func engineSubmission(lead string, answers []models.Answer) engine.Submission {
	return engine.Submission{LeadPassengerName: lead, AnswerList: answers}
}
