package handlers

import (
	"context"
	"net/http"

	"tourbook/models"
	"tourbook/services/reservation"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Locker serializes mutating rounds per reservation id (attachment is not
// idempotent upstream, so overlapping rounds for one reservation must never
// race). The default implementation is backed by Redis.
type Locker interface {
	Acquire(ctx context.Context, reservationID string) (release func(), err error)
}

// RedisLocker implements Locker over the shared Redis lock client.
type RedisLocker struct{}

func (RedisLocker) Acquire(ctx context.Context, reservationID string) (func(), error) {
	lock, err := utils.AcquireReservationLock(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return func() { lock.Release(context.Background()) }, nil
}

// ReservationHandler exposes the reservation assembly endpoints.
type ReservationHandler struct {
	Service reservation.Service
	Locks   Locker
	Logger  *zap.Logger
}

func NewReservationHandler(svc reservation.Service, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Service: svc, Locks: RedisLocker{}, Logger: logger}
}

// CreateReservation opens a new reservation shell on the booking engine.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	res, err := h.Service.CreateReservation(c.Request.Context())
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reservation": res})
}

// AttachAvailability attaches an assembled availability to a reservation.
// Mutations for one reservation are serialized through the per-id lock;
// attachment is not idempotent upstream, so overlapping rounds must never
// race.
func (h *ReservationHandler) AttachAvailability(c *gin.Context) {
	reservationID := c.Param("id")
	var input struct {
		AvailabilityID string `json:"availabilityId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	release, err := h.Locks.Acquire(ctx, reservationID)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "reservation busy", err.Error())
		return
	}
	defer release()

	outcome, err := h.Service.AttachAvailability(ctx, reservationID, input.AvailabilityID)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"canCommit":   outcome.CanCommit,
		"reservation": outcome.Reservation,
	})
}

// GetQuestions returns the current question tree plus the engine's
// canCommit verdict. Safe to poll between rounds.
func (h *ReservationHandler) GetQuestions(c *gin.Context) {
	reservationID := c.Param("id")

	res, err := h.Service.GetQuestions(c.Request.Context(), reservationID)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation": res,
		"summary":     res.Summary,
	})
}

// SubmitQuestions runs one answer round. A canCommit=false response is not
// a failure: the returned summary carries any newly revealed questions and
// the client offers another round.
func (h *ReservationHandler) SubmitQuestions(c *gin.Context) {
	reservationID := c.Param("id")
	var input reservation.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	release, err := h.Locks.Acquire(ctx, reservationID)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "reservation busy", err.Error())
		return
	}
	defer release()

	outcome, err := h.Service.SubmitAnswers(ctx, reservationID, input)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"canCommit":   outcome.CanCommit,
		"reservation": outcome.Reservation,
		"leadPerson":  outcome.LeadPerson,
	})
}

// CommitReservation finalizes a commit-ready reservation.
func (h *ReservationHandler) CommitReservation(c *gin.Context) {
	reservationID := c.Param("id")

	ctx := c.Request.Context()
	release, err := h.Locks.Acquire(ctx, reservationID)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "reservation busy", err.Error())
		return
	}
	defer release()

	res, err := h.Service.Commit(ctx, reservationID)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// flowErrorStatus maps the flow error taxonomy onto HTTP statuses.
func flowErrorStatus(code string) int {
	switch code {
	case reservation.CodeNotFound:
		return http.StatusNotFound
	case reservation.CodeInvalidSelection, reservation.CodeMissingConsent, reservation.CodePricingNotReady:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondFlowError(c *gin.Context, err error) {
	code := reservation.CodeOf(err)

	utils.GetLogger().Warn("reservation flow error",
		zap.String("code", code),
		zap.String("path", c.FullPath()),
		zap.Error(err))

	c.JSON(flowErrorStatus(code), gin.H{
		"code":    code,
		"message": err.Error(),
	})
}

// respondMutationError is respondFlowError for mutating rounds: the body
// also carries the failed state so clients re-fetch engine state instead of
// trusting their last local view.
func respondMutationError(c *gin.Context, err error) {
	code := reservation.CodeOf(err)

	utils.GetLogger().Warn("reservation flow error",
		zap.String("code", code),
		zap.String("path", c.FullPath()),
		zap.Error(err))

	c.JSON(flowErrorStatus(code), gin.H{
		"code":    code,
		"message": err.Error(),
		"state":   models.ReservationFailed,
	})
}
