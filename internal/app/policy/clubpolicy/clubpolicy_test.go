package clubpolicy_test

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
)

func TestForRole_AppAdminCanDoEverything(t *testing.T) {
	a := clubpolicy.ForRole("admin", "")
	if !a.CanManageClub || !a.CanManageFees || !a.CanRecordPayments || !a.CanViewAllBalances {
		t.Errorf("app admin access incomplete: %+v", a)
	}
	if a.IsMember {
		t.Error("admin without membership should not count as member")
	}
}

func TestForRole_Manager(t *testing.T) {
	a := clubpolicy.ForRole("member", "manager")
	if !a.IsMember || !a.CanManageClub || !a.CanManageFees || !a.CanRecordPayments {
		t.Errorf("manager access incomplete: %+v", a)
	}
}

func TestForRole_Treasurer(t *testing.T) {
	a := clubpolicy.ForRole("member", "treasurer")
	if a.CanManageClub {
		t.Error("treasurer should not manage the club itself")
	}
	if !a.CanManageFees || !a.CanRecordPayments || !a.CanViewAllBalances {
		t.Errorf("treasurer money access incomplete: %+v", a)
	}
}

func TestForRole_Member(t *testing.T) {
	a := clubpolicy.ForRole("member", "member")
	if !a.IsMember {
		t.Error("member should be a member")
	}
	if a.CanManageClub || a.CanManageFees || a.CanRecordPayments || a.CanViewAllBalances {
		t.Errorf("member has management access: %+v", a)
	}
}

func TestForRole_NonMember(t *testing.T) {
	a := clubpolicy.ForRole("member", "")
	if a.IsMember || a.CanManageClub || a.CanManageFees {
		t.Errorf("non-member has access: %+v", a)
	}
}

func TestValidRole(t *testing.T) {
	for _, ok := range []string{"manager", "treasurer", "member"} {
		if !clubpolicy.ValidRole(ok) {
			t.Errorf("ValidRole(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "admin", "owner", "Leader"} {
		if clubpolicy.ValidRole(bad) {
			t.Errorf("ValidRole(%q) = true", bad)
		}
	}
}
