package bookstore

// ParseRole maps a raw string onto the role enum. Unknown values resolve
// to RoleUser, matching the registration default.
func ParseRole(raw string) AccountRole {
	switch AccountRole(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return RoleUser
	}
}

// IsValid reports whether the role is a member of the closed enum
func (r AccountRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants dashboard access
func (r AccountRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r AccountRole) String() string {
	return string(r)
}
