package authroles

import (
	domainauth "github.com/target/gradebook/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to roles by exact membership.
// Admin membership wins over teacher membership; anyone else is a guest.
type StaticRoleMapper struct {
	AdminGroup   string
	TeacherGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	if m.has(groups, m.AdminGroup) {
		return domainauth.RoleAdmin
	}
	if m.has(groups, m.TeacherGroup) {
		return domainauth.RoleTeacher
	}
	return domainauth.RoleGuest
}

func (m StaticRoleMapper) has(groups []string, want string) bool {
	if want == "" {
		return false
	}
	for _, g := range groups {
		if g == want {
			return true
		}
	}
	return false
}
