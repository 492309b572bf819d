package models

// GuestRecord is a caller-supplied traveller record used to infer answers
// for identity questions. Index 0 of the supplied list is the lead guest by
// convention and provides reservation-level contact details.
type GuestRecord struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LeadGuest bool   `json:"isLeadGuest,omitempty"`
}

// FullName renders the guest's display name for full-name questions and the
// lead passenger field.
func (g GuestRecord) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
