package step

import (
	"encoding/json"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Role is a cosmetic tag applied to positions by mark events. It carries no
// algorithmic meaning.
type Role string

// Mark roles. The set is closed; use [ParseRole] for untrusted strings.
const (
	RoleNone       Role = ""
	RoleCurrent    Role = "current"
	RoleVisited    Role = "visited"
	RoleFound      Role = "found"
	RoleEliminated Role = "eliminated"
	RoleSorted     Role = "sorted"
	RoleWindow     Role = "window"
	RoleAncestor   Role = "ancestor"
	RoleComparing  Role = "comparing"
	RoleDeleted    Role = "deleted"
)

// Roles lists every valid role in display order.
var Roles = []Role{
	RoleCurrent,
	RoleVisited,
	RoleFound,
	RoleEliminated,
	RoleSorted,
	RoleWindow,
	RoleAncestor,
	RoleComparing,
	RoleDeleted,
}

// Valid reports whether r is a member of the closed role set.
// RoleNone is valid and means "no highlight".
func (r Role) Valid() bool {
	if r == RoleNone {
		return true
	}
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts s to a Role, rejecting names outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return RoleNone, errors.New(errors.ErrCodeInvalidInput, "unknown role %q", s)
	}
	return r, nil
}

// UnmarshalJSON decodes a role through [ParseRole], so decoded traces only
// carry known roles.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
