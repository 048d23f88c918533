package model

// SortMode selects the ordering strategy for the todo list.
type SortMode string

const (
	SortTimeDesc     SortMode = "time-desc"
	SortTimeAsc      SortMode = "time-asc"
	SortPriorityDesc SortMode = "priority-desc"
	SortPriorityAsc  SortMode = "priority-asc"
	SortDueDesc      SortMode = "due-desc"
	SortDueAsc       SortMode = "due-asc"
)

// DefaultSortMode is newest-first creation order.
const DefaultSortMode = SortTimeDesc

// SortModes lists every mode in UI cycling order.
var SortModes = []SortMode{
	SortTimeDesc,
	SortTimeAsc,
	SortPriorityDesc,
	SortPriorityAsc,
	SortDueDesc,
	SortDueAsc,
}

// ParseSortMode maps a stored string onto a known mode, falling back to
// DefaultSortMode for anything unrecognized.
func ParseSortMode(raw string) SortMode {
	for _, m := range SortModes {
		if raw == string(m) {
			return m
		}
	}
	return DefaultSortMode
}

// Label returns a short human-readable description for the sort toolbar.
func (m SortMode) Label() string {
	switch m {
	case SortTimeAsc:
		return "time: oldest first"
	case SortPriorityDesc:
		return "priority: high first"
	case SortPriorityAsc:
		return "priority: low first"
	case SortDueDesc:
		return "due: latest first"
	case SortDueAsc:
		return "due: soonest first"
	default:
		return "time: newest first"
	}
}
