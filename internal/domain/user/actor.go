package user

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID    string
	Roles Role
}

func (a Actor) IsAdmin() bool {
	return a.Roles.Has(RoleAdmin)
}
