package reservation

import (
	"context"

	"tourbook/models"
	"tourbook/services/engine"
)

// Service drives a reservation from selected availability to a committed
// booking against the external engine. The engine is the system of record:
// nothing is persisted here and nothing is cached between rounds.
type Service interface {
	// Availability assembly (precondition for attachment).
	GetAvailability(ctx context.Context, itemID string) (*models.AvailabilityDetail, error)
	SetAvailabilityOptions(ctx context.Context, itemID string, answers []models.Answer) (*models.AvailabilityDetail, error)
	PriceAvailability(ctx context.Context, itemID string) (*models.Pricing, error)
	AssembleAvailability(ctx context.Context, itemID string, answers []models.Answer) (*AssembledAvailability, error)

	// Reservation lifecycle.
	CreateReservation(ctx context.Context) (*models.Reservation, error)
	AttachAvailability(ctx context.Context, reservationID, itemID string) (*AttachOutcome, error)
	AlreadyAttached(ctx context.Context, reservationID, itemID string) (bool, error)
	GetQuestions(ctx context.Context, reservationID string) (*models.Reservation, error)
	SubmitAnswers(ctx context.Context, reservationID string, input SubmitInput) (*SubmitOutcome, error)
	Commit(ctx context.Context, reservationID string) (*models.Reservation, error)
}

// DefaultService implements Service over a booking engine client.
type DefaultService struct {
	Engine engine.Client
}

// AssembledAvailability is an item brought to the attachable state:
// option-complete and priced.
type AssembledAvailability struct {
	Detail  models.AvailabilityDetail `json:"detail"`
	Pricing *models.Pricing           `json:"pricing,omitempty"`
}

// AttachOutcome reports a successful attachment plus the freshly re-fetched
// question tree (attachment can introduce new item- and participant-level
// questions, so the tree is always re-read immediately).
type AttachOutcome struct {
	CanCommit   bool               `json:"canCommit"`
	Reservation models.Reservation `json:"reservation"`
}

// SubmitInput is one answer round from the caller.
type SubmitInput struct {
	TermsAccepted       bool                 `json:"termsAccepted"`
	CustomerEmail       string               `json:"customerEmail,omitempty"`
	CustomerPhone       string               `json:"customerPhone,omitempty"`
	Guests              []models.GuestRecord `json:"guests"`
	AvailabilityAnswers []models.Answer      `json:"availabilityAnswers,omitempty"`
	QuestionAnswers     []models.Answer      `json:"questionAnswers,omitempty"`
}

// SubmitOutcome reports a submission round. When CanCommit is false the
// reservation carries the re-fetched tree including any newly revealed
// questions for the next round.
type SubmitOutcome struct {
	CanCommit   bool               `json:"canCommit"`
	Reservation models.Reservation `json:"reservation"`
	LeadPerson  string             `json:"leadPerson,omitempty"`
}
