package model

// RoleCode enumerates the platform roles baked into access tokens.
type RoleCode string

const (
	RoleAdmin     RoleCode = "admin"     // platform administration
	RoleOwner     RoleCode = "owner"     // project owner
	RoleDeveloper RoleCode = "developer" // standard talent account
)

// IsValid reports whether a string is a known role code.
func (rc RoleCode) IsValid() bool {
	switch rc {
	case RoleAdmin, RoleOwner, RoleDeveloper:
		return true
	}
	return false
}
