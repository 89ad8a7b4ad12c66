// Package status defines the lifecycle states shared by users and clubs.
package status

const (
	Active   = "active"
	Disabled = "disabled"
	Archived = "archived"
)

// IsValidUser reports whether s is a valid user status.
func IsValidUser(s string) bool {
	return s == Active || s == Disabled
}

// IsValidClub reports whether s is a valid club status.
func IsValidClub(s string) bool {
	return s == Active || s == Archived
}
