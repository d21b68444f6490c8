package user

import (
	"strings"

	"github.com/taskhub/labor-marketplace/internal/models"
)

// Role is a set of capabilities. Combine with |, test with Has.
type Role uint8

const (
	RoleWorker Role = 1 << iota
	RolePoster
	RoleAdmin
)

const RoleNone Role = 0

var roleNames = []struct {
	role Role
	name string
}{
	{RoleWorker, "worker"},
	{RolePoster, "poster"},
	{RoleAdmin, "admin"},
}

func (r Role) Has(capability Role) bool {
	return capability != RoleNone && r&capability == capability
}

func (r Role) With(capability Role) Role {
	return r | capability
}

func (r Role) Without(capability Role) Role {
	return r &^ capability
}

func (r Role) Names() []string {
	names := make([]string, 0, len(roleNames))
	for _, rn := range roleNames {
		if r.Has(rn.role) {
			names = append(names, rn.name)
		}
	}
	return names
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return strings.Join(r.Names(), "|")
}

// ParseRole accepts a single capability name.
func ParseRole(name string) (Role, bool) {
	for _, rn := range roleNames {
		if strings.EqualFold(rn.name, name) {
			return rn.role, true
		}
	}
	return RoleNone, false
}

func RolesOf(u *models.User) Role {
	if u == nil {
		return RoleNone
	}
	return Role(u.Roles)
}
