package model

// ChangeType identifies one kind of proposed structural change.
type ChangeType string

const (
	// ChangeMoveService proposes moving services between categories.
	ChangeMoveService ChangeType = "move_service"
	// ChangeMergeCategories proposes folding one category into another.
	ChangeMergeCategories ChangeType = "merge_categories"
	// ChangeSplitCategory proposes splitting a category in two.
	ChangeSplitCategory ChangeType = "split_category"
	// ChangeRenameCategory proposes renaming a category.
	ChangeRenameCategory ChangeType = "rename_category"
	// ChangeReorderCategories proposes a new category order.
	ChangeReorderCategories ChangeType = "reorder_categories"
	// ChangeCreateCategory proposes a brand-new category.
	ChangeCreateCategory ChangeType = "create_category"
)

// Valid reports whether the change type is one of the known kinds.
func (t ChangeType) Valid() bool {
	switch t {
	case ChangeMoveService, ChangeMergeCategories, ChangeSplitCategory,
		ChangeRenameCategory, ChangeReorderCategories, ChangeCreateCategory:
		return true
	}
	return false
}

// ChangeRecord describes one proposed structural change to a pricelist.
// Records are advisory: they are shown to the user for reference while
// editing and never drive an automatic mutation.
type ChangeRecord struct {
	Type         ChangeType `json:"type"`
	Description  string     `json:"description"`
	FromCategory string     `json:"fromCategory,omitempty"`
	ToCategory   string     `json:"toCategory,omitempty"`
	Services     []string   `json:"services,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}
