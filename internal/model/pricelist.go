package model

import "time"

// Pricelist is the authoritative service list for one salon, as imported
// from the booking platform.
type Pricelist struct {
	ImportedAt time.Time
	SalonName  string
	SourceURL  string
	Categories []Category
	ID         int64
}

// ServiceCount returns the total number of services on the pricelist.
func (p *Pricelist) ServiceCount() int {
	return ServiceCount(p.Categories)
}
