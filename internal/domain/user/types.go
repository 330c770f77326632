package user

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// Rank orders roles for "at least" checks. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleTeacher:
		return 1
	case RoleAdmin:
		return 2
	default:
		return 0
	}
}

func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && min.IsValid() && r.Rank() >= min.Rank()
}

// RequiresTeacher reports whether accounts of r book on behalf of a linked
// teacher record and nobody else.
func (r Role) RequiresTeacher() bool {
	return r == RoleTeacher
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
