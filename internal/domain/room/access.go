package room

// AccessOutcome is the result of checking a user's access to a room.
type AccessOutcome int

const (
	AccessNotFound AccessOutcome = iota
	AccessForbidden
	AccessOwned
)

func (o AccessOutcome) String() string {
	switch o {
	case AccessOwned:
		return "owned"
	case AccessForbidden:
		return "forbidden"
	default:
		return "not_found"
	}
}

// Access carries the outcome and, when owned, the loaded room.
// Callers choose how NotFound and Forbidden map to HTTP statuses.
type Access struct {
	Outcome AccessOutcome
	Room    *Room
}

// Owned reports whether the requester owns the room.
func (a Access) Owned() bool {
	return a.Outcome == AccessOwned && a.Room != nil
}
