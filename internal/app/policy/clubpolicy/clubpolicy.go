// Package clubpolicy centralizes who may do what inside a club.
//
// Authorization rules:
//   - App admins can do everything in every club.
//   - Managers run the club: settings, roster, charges, payments, activities.
//   - Treasurers manage money: fee settings, charges, payments, balances.
//   - Members view the club, the schedule, and their own balance only.
package clubpolicy

import (
	"github.com/dalemusser/clubhub/internal/domain/models"
)

// Access describes what the current user can do in one club.
type Access struct {
	IsMember          bool
	CanManageClub     bool // edit/archive club, change roster and roles
	CanManageFees     bool // fee settings, create/delete charges, generate monthly
	CanRecordPayments bool
	CanViewAllBalances bool // false means own balance only
}

// ForRole computes club access from the app-level role and the user's club
// membership role. clubRole is empty when the user is not a member.
func ForRole(appRole, clubRole string) Access {
	if appRole == "admin" {
		return Access{
			IsMember:           clubRole != "",
			CanManageClub:      true,
			CanManageFees:      true,
			CanRecordPayments:  true,
			CanViewAllBalances: true,
		}
	}

	switch clubRole {
	case models.ClubRoleManager:
		return Access{
			IsMember:           true,
			CanManageClub:      true,
			CanManageFees:      true,
			CanRecordPayments:  true,
			CanViewAllBalances: true,
		}
	case models.ClubRoleTreasurer:
		return Access{
			IsMember:           true,
			CanManageFees:      true,
			CanRecordPayments:  true,
			CanViewAllBalances: true,
		}
	case models.ClubRoleMember:
		return Access{IsMember: true}
	default:
		return Access{}
	}
}

// ValidRole reports whether role is an assignable club role.
func ValidRole(role string) bool {
	switch role {
	case models.ClubRoleManager, models.ClubRoleTreasurer, models.ClubRoleMember:
		return true
	}
	return false
}
