package models

// QuestionSummary is the full three-level question tree for a reservation,
// as reported by the booking engine on every fetch. CanCommit comes from the
// engine and is the only authoritative signal of readiness: more questions
// can appear after a submission, so "all visible questions answered" means
// nothing on its own.
type QuestionSummary struct {
	ReservationQuestions []Question      `json:"reservationQuestions"`
	ItemQuestions        []ItemQuestions `json:"itemQuestions"`
	CanCommit            bool            `json:"canCommit"`
}

// ItemQuestions is the question node for one bookable item attached to a
// reservation, plus one participant node per traveller on that item.
type ItemQuestions struct {
	ItemID          string            `json:"itemId"`
	ItemName        string            `json:"itemName,omitempty"`
	Date            string            `json:"date,omitempty"`
	Questions       []Question        `json:"questions"`
	PersonQuestions []PersonQuestions `json:"personQuestions"`
}

// PersonQuestions is the question node for one participant. Complete is set
// by the engine, never by this service.
type PersonQuestions struct {
	Category  string     `json:"category,omitempty"`
	Complete  bool       `json:"isComplete"`
	Questions []Question `json:"questions"`
}

// HasItem reports whether an item with the given availability id is already
// attached, which is how a timed-out attachment is disambiguated before any
// retry is considered.
func (s QuestionSummary) HasItem(itemID string) bool {
	for _, item := range s.ItemQuestions {
		if item.ItemID == itemID {
			return true
		}
	}
	return false
}
