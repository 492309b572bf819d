package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tourbook/models"
)

// DefaultClient talks to the booking engine over its GraphQL HTTP endpoint.
// Every operation is a single POST of {query, variables}; the engine answers
// with {data, errors} and signals domain failures through error extension
// codes which are mapped onto Error.
type DefaultClient struct {
	hc     *http.Client
	url    string
	apiKey string
}

// NewClient builds a client for the engine endpoint.
func NewClient(url, apiKey string, timeout time.Duration) *DefaultClient {
	return &DefaultClient{
		hc:     &http.Client{Timeout: timeout},
		url:    url,
		apiKey: apiKey,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do executes one GraphQL operation and decodes data.<field> into out.
func (c *DefaultClient) do(ctx context.Context, query string, variables map[string]any, field string, out any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &Error{Code: CodeUpstream, Message: "failed to encode engine request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Code: CodeUpstream, Message: "failed to build engine request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &Error{Code: CodeUpstream, Message: "engine request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Code: CodeUpstream, Message: "failed to read engine response", Err: err}
	}
	if resp.StatusCode >= 500 {
		return &Error{Code: CodeUpstream, Message: fmt.Sprintf("engine returned status %d", resp.StatusCode)}
	}

	var gr gqlResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return &Error{Code: CodeUpstream, Message: "failed to parse engine response", Err: err}
	}
	if len(gr.Errors) > 0 {
		first := gr.Errors[0]
		code := first.Extensions.Code
		if code != CodeNotFound && code != CodeInvalidSelection {
			code = CodeUpstream
		}
		return &Error{Code: code, Message: first.Message}
	}
	if gr.Data == nil {
		return &Error{Code: CodeUpstream, Message: "engine response carried no data"}
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(gr.Data, &data); err != nil {
		return &Error{Code: CodeUpstream, Message: "failed to parse engine payload", Err: err}
	}
	raw, ok := data[field]
	if !ok {
		return &Error{Code: CodeUpstream, Message: fmt.Sprintf("engine response missing field %q", field)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Code: CodeUpstream, Message: fmt.Sprintf("failed to decode %s", field), Err: err}
	}
	return nil
}

const getAvailabilityDetailQuery = `
query getAvailabilityDetail($id: ID!) {
  getAvailabilityDetail(id: $id) {
    id itemName date
    optionList { isComplete nodes { id label value availableOptions { label value } } }
  }
}`

func (c *DefaultClient) GetAvailabilityDetail(ctx context.Context, itemID string) (*models.AvailabilityDetail, error) {
	var detail models.AvailabilityDetail
	if err := c.do(ctx, getAvailabilityDetailQuery, map[string]any{"id": itemID}, "getAvailabilityDetail", &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

const setAvailabilityOptionsQuery = `
mutation setAvailabilityOptions($id: ID!, $answers: [AnswerInput!]!) {
  setAvailabilityOptions(id: $id, answers: $answers) {
    id itemName date
    optionList { isComplete nodes { id label value availableOptions { label value } } }
  }
}`

func (c *DefaultClient) SetAvailabilityOptions(ctx context.Context, itemID string, answers []models.Answer) (*models.AvailabilityDetail, error) {
	if answers == nil {
		answers = []models.Answer{}
	}
	var detail models.AvailabilityDetail
	vars := map[string]any{"id": itemID, "answers": answers}
	if err := c.do(ctx, setAvailabilityOptionsQuery, vars, "setAvailabilityOptions", &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

const priceAvailabilityQuery = `
query priceAvailability($id: ID!) {
  priceAvailability(id: $id) {
    isValid totalPrice currency
    pricingCategoryList { category count price }
  }
}`

func (c *DefaultClient) PriceAvailability(ctx context.Context, itemID string) (*models.Pricing, error) {
	var pricing models.Pricing
	if err := c.do(ctx, priceAvailabilityQuery, map[string]any{"id": itemID}, "priceAvailability", &pricing); err != nil {
		return nil, err
	}
	return &pricing, nil
}

const createReservationQuery = `
mutation createReservation {
  createReservation { id canCommit }
}`

func (c *DefaultClient) CreateReservation(ctx context.Context) (*models.Reservation, error) {
	var res models.Reservation
	if err := c.do(ctx, createReservationQuery, nil, "createReservation", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

const attachAvailabilityQuery = `
mutation attachAvailability($reservationId: ID!, $itemId: ID!) {
  attachAvailability(reservationId: $reservationId, itemId: $itemId) {
    canCommit
    reservation { id canCommit }
  }
}`

func (c *DefaultClient) AttachAvailability(ctx context.Context, reservationID, itemID string) (*AttachResult, error) {
	var result AttachResult
	vars := map[string]any{"reservationId": reservationID, "itemId": itemID}
	if err := c.do(ctx, attachAvailabilityQuery, vars, "attachAvailability", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

const getReservationQuestionsQuery = `
query getReservationQuestions($reservationId: ID!) {
  getReservationQuestions(reservationId: $reservationId) {
    canCommit
    reservationQuestions { id label type dataType isRequired answerValue availableOptions { label value } }
    itemQuestions {
      itemId itemName date
      questions { id label type dataType isRequired answerValue availableOptions { label value } }
      personQuestions {
        category isComplete
        questions { id label type dataType isRequired answerValue availableOptions { label value } }
      }
    }
  }
}`

func (c *DefaultClient) GetReservationQuestions(ctx context.Context, reservationID string) (*models.QuestionSummary, error) {
	var summary models.QuestionSummary
	vars := map[string]any{"reservationId": reservationID}
	if err := c.do(ctx, getReservationQuestionsQuery, vars, "getReservationQuestions", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

const answerReservationQuestionsQuery = `
mutation answerReservationQuestions($reservationId: ID!, $submission: SubmissionInput!) {
  answerReservationQuestions(reservationId: $reservationId, submission: $submission) {
    canCommit
    reservation { id canCommit }
  }
}`

func (c *DefaultClient) AnswerReservationQuestions(ctx context.Context, reservationID string, submission Submission) (*SubmitResult, error) {
	if submission.AnswerList == nil {
		submission.AnswerList = []models.Answer{}
	}
	var result SubmitResult
	vars := map[string]any{"reservationId": reservationID, "submission": submission}
	if err := c.do(ctx, answerReservationQuestionsQuery, vars, "answerReservationQuestions", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

const commitReservationQuery = `
mutation commitReservation($reservationId: ID!) {
  commitReservation(reservationId: $reservationId) { id canCommit }
}`

func (c *DefaultClient) CommitReservation(ctx context.Context, reservationID string) (*models.Reservation, error) {
	var res models.Reservation
	vars := map[string]any{"reservationId": reservationID}
	if err := c.do(ctx, commitReservationQuery, vars, "commitReservation", &res); err != nil {
		return nil, err
	}
	return &res, nil
}
