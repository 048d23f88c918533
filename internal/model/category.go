package model

// Category is a named grouping that todos reference by id.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories is the seed set used on first run, when no persisted
// categories exist. The ids are stable so that persisted todos keep
// resolving across restarts.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-work", Name: "Work"},
		{ID: "cat-personal", Name: "Personal"},
		{ID: "cat-shopping", Name: "Shopping"},
	}
}
