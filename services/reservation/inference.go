package reservation

import (
	"strings"
	"unicode"

	"tourbook/models"
)

// The engine labels questions for humans, not machines: there is no
// semantic type tag, only label text. Inference matches routine identity
// questions ("First name", "Email", ...) against guest records so tenants
// do not need bespoke field mappings. It is a best-effort fallback; any
// question it cannot answer stays open for explicit answers.

// ContactOverrides carries reservation-level contact details that take
// precedence over the matched guest record's own email/phone.
type ContactOverrides struct {
	Email string
	Phone string
}

// inferAnswer derives a value for a single question from one guest record.
// Returns "" when no rule matches or the matched field is empty.
func inferAnswer(q models.Question, guest models.GuestRecord, contact ContactOverrides) string {
	label := strings.ToLower(q.Label)

	// Precedence order matters: the first matching rule wins and no rule
	// falls through once matched, even if its source field is empty.
	switch {
	case strings.Contains(label, "first") && strings.Contains(label, "name"):
		return guest.FirstName
	case strings.Contains(label, "last") && strings.Contains(label, "name"),
		strings.Contains(label, "surname"),
		strings.Contains(label, "family"):
		return guest.LastName
	case strings.Contains(label, "email"):
		if contact.Email != "" {
			return contact.Email
		}
		return guest.Email
	case strings.Contains(label, "phone"), strings.Contains(label, "mobile"), hasWordPrefix(label, "tel"):
		if contact.Phone != "" {
			return contact.Phone
		}
		return guest.Phone
	case label == "full name" || label == "name":
		return guest.FullName()
	}
	return ""
}

// hasWordPrefix reports whether any word in the label starts with the given
// prefix. "Telephone" and "Tel." match "tel"; "Hotel Name" must not.
func hasWordPrefix(label, prefix string) bool {
	words := strings.FieldsFunc(label, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

// InferAnswers runs inference over a flat question list against one guest
// record. Questions the engine already holds a value for are skipped, and
// only non-empty inferences are emitted.
func InferAnswers(questions []models.Question, guest models.GuestRecord, contact ContactOverrides) []models.Answer {
	var answers []models.Answer
	for _, q := range questions {
		if q.Answered() {
			continue
		}
		if value := inferAnswer(q, guest, contact); value != "" {
			answers = append(answers, models.Answer{QuestionID: q.ID, Value: value})
		}
	}
	return answers
}

// InferTreeAnswers traverses the full question tree in submission order:
// reservation-level questions first, then per item its own questions
// followed by each participant's. Participants are index-aligned to the
// guest record list; when an item carries more participants than records
// were supplied, the lead record (index 0) stands in. Each node is answered
// independently: two questions on different nodes that want the same guest
// field both get it.
func InferTreeAnswers(summary models.QuestionSummary, guests []models.GuestRecord, contact ContactOverrides) []models.Answer {
	if len(guests) == 0 {
		return nil
	}
	lead := guests[0]

	answers := InferAnswers(summary.ReservationQuestions, lead, contact)
	for _, item := range summary.ItemQuestions {
		answers = append(answers, InferAnswers(item.Questions, lead, contact)...)
		for i, person := range item.PersonQuestions {
			guest := lead
			if i < len(guests) {
				guest = guests[i]
			}
			answers = append(answers, InferAnswers(person.Questions, guest, contact)...)
		}
	}
	return answers
}
