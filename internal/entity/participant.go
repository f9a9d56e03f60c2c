package entity

// Role is fixed at join time: the first joiner moves first with X.
type Role int

const (
	RoleFirst Role = iota + 1
	RoleSecond
)

func (that Role) Mark() Mark {
	switch that {
	case RoleFirst:
		return MarkX
	case RoleSecond:
		return MarkO
	default:
		return EmptyCell
	}
}

func (that Role) String() string {
	switch that {
	case RoleFirst:
		return "first"
	case RoleSecond:
		return "second"
	default:
		return "unknown"
	}
}

type Participant struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (that *Participant) Mark() Mark {
	return that.Role.Mark()
}
