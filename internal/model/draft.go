package model

import "time"

// DraftStatus tracks a draft through its lifecycle.
type DraftStatus string

const (
	// DraftStatusNew marks a freshly generated proposal.
	DraftStatusNew DraftStatus = "new"
	// DraftStatusEdited marks a draft the user has reworked in the editor.
	DraftStatusEdited DraftStatus = "edited"
	// DraftStatusPromoted marks a draft that replaced the live pricelist.
	DraftStatusPromoted DraftStatus = "promoted"
)

// Draft is a proposed restructuring of a pricelist. The proposed
// categories and the change records are produced together by the
// optimizer; the user edits the structure interactively before promoting
// it over the live pricelist.
type Draft struct {
	CreatedAt   time.Time
	Status      DraftStatus
	Proposed    []Category
	Changes     []ChangeRecord
	ID          int64
	PricelistID int64
}
