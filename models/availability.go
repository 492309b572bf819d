package models

// AvailabilityDetail describes one bookable item (a date/time-bound
// reservable unit) and the options it still needs before it can be priced.
type AvailabilityDetail struct {
	ID         string     `json:"id"`
	ItemName   string     `json:"itemName,omitempty"`
	Date       string     `json:"date,omitempty"`
	OptionList OptionList `json:"optionList"`
}

// OptionList carries the item's option selections and the engine's verdict
// on whether they are complete.
type OptionList struct {
	Complete bool     `json:"isComplete"`
	Nodes    []Option `json:"nodes"`
}

// Option is one selectable setting on a bookable item. Options with
// AvailableOptions are enumerated choices; otherwise a free value is
// accepted.
type Option struct {
	ID               string           `json:"id"`
	Label            string           `json:"label"`
	Value            string           `json:"value,omitempty"`
	AvailableOptions []QuestionOption `json:"availableOptions,omitempty"`
}

// Pricing is the engine's price quote for an option-complete item.
type Pricing struct {
	Valid      bool              `json:"isValid"`
	TotalPrice float64           `json:"totalPrice"`
	Currency   string            `json:"currency,omitempty"`
	Categories []PricingCategory `json:"pricingCategoryList,omitempty"`
}

// PricingCategory is a per-traveller-category price line (e.g. adult, child).
type PricingCategory struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Price    float64 `json:"price"`
}
