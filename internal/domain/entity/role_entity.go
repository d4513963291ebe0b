package entity

// Role is the single authorization attribute carried by a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleManager Role = "manager"
)

// ParseRole maps an optional input to a Role; empty means RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleAdmin, RoleUser, RoleManager:
		return Role(s), true
	}
	return "", false
}
