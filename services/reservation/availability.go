package reservation

import (
	"context"

	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// GetAvailability fetches the current detail for one bookable item.
func (s *DefaultService) GetAvailability(ctx context.Context, itemID string) (*models.AvailabilityDetail, error) {
	detail, err := s.Engine.GetAvailabilityDetail(ctx, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to fetch availability detail")
	}
	return detail, nil
}

// SetAvailabilityOptions submits option selections for an item and returns
// the re-evaluated detail. The engine guarantees idempotence: resubmitting
// the same answers yields the same completeness result.
func (s *DefaultService) SetAvailabilityOptions(ctx context.Context, itemID string, answers []models.Answer) (*models.AvailabilityDetail, error) {
	detail, err := s.Engine.SetAvailabilityOptions(ctx, itemID, answers)
	if err != nil {
		// An invalidSelection here is the upstream inventory rejecting the
		// combination; it must reach the caller verbatim, never be retried.
		return nil, fromEngine(err, "failed to set availability options")
	}
	return detail, nil
}

// PriceAvailability prices an item. Pricing is only defined once the option
// list is complete; the incomplete case is rejected locally so the caller
// gets a clear pricingNotReady instead of an engine-shaped failure.
func (s *DefaultService) PriceAvailability(ctx context.Context, itemID string) (*models.Pricing, error) {
	detail, err := s.Engine.GetAvailabilityDetail(ctx, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to fetch availability detail")
	}
	if !detail.OptionList.Complete {
		return nil, newFlowError(CodePricingNotReady, "availability options are not complete; pricing is not available yet")
	}

	pricing, err := s.Engine.PriceAvailability(ctx, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to price availability")
	}
	return pricing, nil
}

// AssembleAvailability drives one item from selected to attachable: apply
// the supplied option answers, then price if the engine reports the option
// list complete. An incomplete result is not an error: the caller gets the
// refreshed detail (with pricing absent) and supplies the missing options.
func (s *DefaultService) AssembleAvailability(ctx context.Context, itemID string, answers []models.Answer) (*AssembledAvailability, error) {
	logger := utils.GetLogger()

	detail, err := s.SetAvailabilityOptions(ctx, itemID, answers)
	if err != nil {
		return nil, err
	}

	assembled := &AssembledAvailability{Detail: *detail}
	if !detail.OptionList.Complete {
		logger.Debug("availability options still incomplete",
			zap.String("itemID", itemID))
		return assembled, nil
	}

	pricing, err := s.Engine.PriceAvailability(ctx, itemID)
	if err != nil {
		return nil, fromEngine(err, "failed to price availability")
	}
	assembled.Pricing = pricing
	return assembled, nil
}
