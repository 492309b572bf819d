package models

// ReservationState tracks where a reservation sits in the assembly flow.
// The engine holds the authoritative state; this mirror is recomputed from
// engine responses and never trusted across rounds.
type ReservationState string

const (
	ReservationOpen      ReservationState = "open"
	ReservationAttaching ReservationState = "attaching"
	ReservationAttached  ReservationState = "attached"
	ReservationAnswering ReservationState = "answering"
	ReservationReady     ReservationState = "ready"
	ReservationCommitted ReservationState = "committed"
	ReservationFailed    ReservationState = "failed"
)

// Reservation is the aggregate the engine builds up across assembly rounds.
type Reservation struct {
	ID        string           `json:"id"`
	State     ReservationState `json:"state"`
	CanCommit bool             `json:"canCommit"`
	Summary   QuestionSummary  `json:"summary"`
}
