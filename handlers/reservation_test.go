package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourbook/models"
	"tourbook/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fakeService scripts the reservation service per test.
type fakeService struct {
	getAvailability func(itemID string) (*models.AvailabilityDetail, error)
	getQuestions    func(reservationID string) (*models.Reservation, error)
	attach          func(reservationID, itemID string) (*reservation.AttachOutcome, error)
	submit          func(reservationID string, input reservation.SubmitInput) (*reservation.SubmitOutcome, error)
	commit          func(reservationID string) (*models.Reservation, error)
	price           func(itemID string) (*models.Pricing, error)
	assemble        func(itemID string, answers []models.Answer) (*reservation.AssembledAvailability, error)
}

func (f *fakeService) GetAvailability(_ context.Context, itemID string) (*models.AvailabilityDetail, error) {
	return f.getAvailability(itemID)
}

func (f *fakeService) SetAvailabilityOptions(_ context.Context, itemID string, answers []models.Answer) (*models.AvailabilityDetail, error) {
	return f.getAvailability(itemID)
}

func (f *fakeService) PriceAvailability(_ context.Context, itemID string) (*models.Pricing, error) {
	return f.price(itemID)
}

func (f *fakeService) AssembleAvailability(_ context.Context, itemID string, answers []models.Answer) (*reservation.AssembledAvailability, error) {
	return f.assemble(itemID, answers)
}

func (f *fakeService) CreateReservation(context.Context) (*models.Reservation, error) {
	return &models.Reservation{ID: "res-new", State: models.ReservationOpen}, nil
}

func (f *fakeService) AttachAvailability(_ context.Context, reservationID, itemID string) (*reservation.AttachOutcome, error) {
	return f.attach(reservationID, itemID)
}

func (f *fakeService) AlreadyAttached(context.Context, string, string) (bool, error) {
	return false, nil
}

func (f *fakeService) GetQuestions(_ context.Context, reservationID string) (*models.Reservation, error) {
	return f.getQuestions(reservationID)
}

func (f *fakeService) SubmitAnswers(_ context.Context, reservationID string, input reservation.SubmitInput) (*reservation.SubmitOutcome, error) {
	return f.submit(reservationID, input)
}

func (f *fakeService) Commit(_ context.Context, reservationID string) (*models.Reservation, error) {
	return f.commit(reservationID)
}

// noopLocker skips Redis in handler tests.
type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

func buildTestRouter(svc reservation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := zap.NewNop()

	rh := &ReservationHandler{Service: svc, Locks: noopLocker{}, Logger: logger}
	ah := &AvailabilityHandler{Service: svc, Logger: logger}

	r.POST("/reservations", rh.CreateReservation)
	r.POST("/reservations/:id/availability", rh.AttachAvailability)
	r.GET("/reservations/:id/questions", rh.GetQuestions)
	r.POST("/reservations/:id/questions", rh.SubmitQuestions)
	r.POST("/reservations/:id/commit", rh.CommitReservation)
	r.GET("/availability/:id/pricing", ah.GetPricing)
	return r
}

func notFoundErr() error {
	return &reservation.FlowError{Code: reservation.CodeNotFound, Message: "reservation not found"}
}

func TestGetQuestionsEndpoint(t *testing.T) {
	svc := &fakeService{
		getQuestions: func(reservationID string) (*models.Reservation, error) {
			if reservationID != "res-1" {
				return nil, notFoundErr()
			}
			return &models.Reservation{
				ID:    reservationID,
				State: models.ReservationAnswering,
				Summary: models.QuestionSummary{
					ReservationQuestions: []models.Question{{ID: "q1", Label: "Email"}},
				},
			}, nil
		},
	}
	router := buildTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reservations/res-1/questions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Summary models.QuestionSummary `json:"summary"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Summary.ReservationQuestions) != 1 {
		t.Errorf("summary not returned: %s", resp.Body.String())
	}

	// Unknown reservation maps to 404.
	req2 := httptest.NewRequest(http.MethodGet, "/reservations/missing/questions", nil)
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown reservation, got %d", resp2.Code)
	}
}

func TestAttachEndpointStatusMapping(t *testing.T) {
	svc := &fakeService{
		attach: func(reservationID, itemID string) (*reservation.AttachOutcome, error) {
			switch itemID {
			case "complete":
				return &reservation.AttachOutcome{CanCommit: false, Reservation: models.Reservation{ID: reservationID, State: models.ReservationAttached}}, nil
			case "incomplete":
				return nil, &reservation.FlowError{Code: reservation.CodeInvalidSelection, Message: "options incomplete"}
			default:
				return nil, notFoundErr()
			}
		},
	}
	router := buildTestRouter(svc)

	cases := []struct {
		itemID     string
		wantStatus int
	}{
		{"complete", http.StatusOK},
		{"incomplete", http.StatusBadRequest},
		{"missing", http.StatusNotFound},
	}
	for _, tc := range cases {
		body := strings.NewReader(`{"availabilityId":"` + tc.itemID + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/availability", body)
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.wantStatus {
			t.Errorf("item %q: expected %d, got %d: %s", tc.itemID, tc.wantStatus, resp.Code, resp.Body.String())
		}
	}

	// Missing availabilityId is rejected before the service runs.
	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/availability", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing availabilityId, got %d", resp.Code)
	}
}

func TestSubmitEndpointMissingConsent(t *testing.T) {
	svc := &fakeService{
		submit: func(reservationID string, input reservation.SubmitInput) (*reservation.SubmitOutcome, error) {
			if !input.TermsAccepted {
				return nil, &reservation.FlowError{Code: reservation.CodeMissingConsent, Message: "terms must be accepted"}
			}
			return &reservation.SubmitOutcome{CanCommit: true, LeadPerson: "John Smith"}, nil
		},
	}
	router := buildTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/questions",
		strings.NewReader(`{"guests":[{"firstName":"John","lastName":"Smith"}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without terms, got %d", resp.Code)
	}
	var errBody struct {
		Code  string `json:"code"`
		State string `json:"state"`
	}
	json.Unmarshal(resp.Body.Bytes(), &errBody)
	if errBody.Code != reservation.CodeMissingConsent {
		t.Errorf("error code: got %q", errBody.Code)
	}
	if errBody.State != string(models.ReservationFailed) {
		t.Errorf("mutation error should report failed state, got %q", errBody.State)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/reservations/res-1/questions",
		strings.NewReader(`{"termsAccepted":true,"guests":[{"firstName":"John","lastName":"Smith"}]}`))
	req2.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200 with terms accepted, got %d: %s", resp2.Code, resp2.Body.String())
	}
	var okBody struct {
		CanCommit  bool   `json:"canCommit"`
		LeadPerson string `json:"leadPerson"`
	}
	json.Unmarshal(resp2.Body.Bytes(), &okBody)
	if !okBody.CanCommit || okBody.LeadPerson != "John Smith" {
		t.Errorf("unexpected response: %s", resp2.Body.String())
	}
}

func TestPricingEndpointNotReady(t *testing.T) {
	svc := &fakeService{
		price: func(itemID string) (*models.Pricing, error) {
			return nil, &reservation.FlowError{Code: reservation.CodePricingNotReady, Message: "options incomplete"}
		},
	}
	router := buildTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/availability/item-1/pricing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for pricing before completeness, got %d", resp.Code)
	}
}

func TestCommitEndpoint(t *testing.T) {
	svc := &fakeService{
		commit: func(reservationID string) (*models.Reservation, error) {
			return &models.Reservation{ID: reservationID, State: models.ReservationCommitted, CanCommit: true}, nil
		},
	}
	router := buildTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/commit", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Reservation models.Reservation `json:"reservation"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Reservation.State != models.ReservationCommitted {
		t.Errorf("expected committed state, got %s", body.Reservation.State)
	}
}
