package models

// QuestionType is the input control the engine expects for a question.
type QuestionType string

const (
	QuestionTypeText    QuestionType = "TEXT"
	QuestionTypeEmail   QuestionType = "EMAIL"
	QuestionTypePhone   QuestionType = "PHONE"
	QuestionTypeSelect  QuestionType = "SELECT"
	QuestionTypeBoolean QuestionType = "BOOLEAN"
	QuestionTypeDate    QuestionType = "DATE"
	QuestionTypeNumber  QuestionType = "NUMBER"
)

// Question is one piece of information the booking engine requires before a
// reservation can be committed. Questions are identified by ID within their
// owning node only; the same label (e.g. "First name") recurs once per
// participant, so answers must always be keyed by ID, never by label.
type Question struct {
	ID               string           `json:"id"`
	Label            string           `json:"label"`
	Type             QuestionType     `json:"type"`
	DataType         string           `json:"dataType,omitempty"`
	Required         bool             `json:"isRequired"`
	AnswerValue      string           `json:"answerValue,omitempty"`
	AvailableOptions []QuestionOption `json:"availableOptions,omitempty"`
}

// QuestionOption is one enumerated choice on a SELECT question.
type QuestionOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Answered reports whether the engine already holds a value for this question.
func (q Question) Answered() bool {
	return q.AnswerValue != ""
}

// Answer is a single submission entry. Answers are transient: they exist
// only inside a submission payload and are never kept between rounds.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}
