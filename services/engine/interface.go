package engine

import (
	"context"

	"tourbook/models"
)

// Client is the booking engine boundary. The engine owns all reservation
// state; every method is a network round-trip and takes a context so the
// caller controls timeouts and cancellation.
type Client interface {
	GetAvailabilityDetail(ctx context.Context, itemID string) (*models.AvailabilityDetail, error)
	SetAvailabilityOptions(ctx context.Context, itemID string, answers []models.Answer) (*models.AvailabilityDetail, error)
	PriceAvailability(ctx context.Context, itemID string) (*models.Pricing, error)

	CreateReservation(ctx context.Context) (*models.Reservation, error)
	AttachAvailability(ctx context.Context, reservationID, itemID string) (*AttachResult, error)
	GetReservationQuestions(ctx context.Context, reservationID string) (*models.QuestionSummary, error)
	AnswerReservationQuestions(ctx context.Context, reservationID string, submission Submission) (*SubmitResult, error)
	CommitReservation(ctx context.Context, reservationID string) (*models.Reservation, error)
}

// Submission is one round of answers sent to the engine.
type Submission struct {
	LeadPassengerName string          `json:"leadPassengerName,omitempty"`
	AnswerList        []models.Answer `json:"answerList"`
}

// AttachResult is the engine's response to attaching an availability.
type AttachResult struct {
	CanCommit   bool               `json:"canCommit"`
	Reservation models.Reservation `json:"reservation"`
}

// SubmitResult is the engine's response to an answer submission.
type SubmitResult struct {
	CanCommit   bool               `json:"canCommit"`
	Reservation models.Reservation `json:"reservation"`
}
