package domain

// AccessLevel is the ranked capability a user holds on a board
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessView
	AccessEdit
	AccessOwn
)

// String returns the lowercase name of the level
func (a AccessLevel) String() string {
	switch a {
	case AccessView:
		return "view"
	case AccessEdit:
		return "edit"
	case AccessOwn:
		return "own"
	default:
		return "none"
	}
}

// Allows reports whether a grants at least minimum
func (a AccessLevel) Allows(minimum AccessLevel) bool {
	return a >= minimum
}

// CanView reports whether the level permits reading the board
func (a AccessLevel) CanView() bool { return a.Allows(AccessView) }

// CanEdit reports whether the level permits mutating columns and cards
func (a AccessLevel) CanEdit() bool { return a.Allows(AccessEdit) }
