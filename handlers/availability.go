package handlers

import (
	"net/http"

	"tourbook/models"
	"tourbook/services/reservation"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the availability assembly endpoints that bring
// a bookable item to the attachable state (options complete, priced).
type AvailabilityHandler struct {
	Service reservation.Service
	Logger  *zap.Logger
}

func NewAvailabilityHandler(svc reservation.Service, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

// GetAvailability returns the current option state for one bookable item.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	itemID := c.Param("id")

	detail, err := h.Service.GetAvailability(c.Request.Context(), itemID)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": detail})
}

// SetOptions applies option selections and, once the engine reports the
// option list complete, prices the item in the same round.
func (h *AvailabilityHandler) SetOptions(c *gin.Context) {
	itemID := c.Param("id")
	var input struct {
		Answers []models.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	assembled, err := h.Service.AssembleAvailability(c.Request.Context(), itemID, input.Answers)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availability": assembled.Detail,
		"isComplete":   assembled.Detail.OptionList.Complete,
		"pricing":      assembled.Pricing,
	})
}

// GetPricing prices an option-complete item; incomplete items get a 400.
func (h *AvailabilityHandler) GetPricing(c *gin.Context) {
	itemID := c.Param("id")

	pricing, err := h.Service.PriceAvailability(c.Request.Context(), itemID)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing": pricing})
}
