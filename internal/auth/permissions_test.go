package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jobnest/jobnest/internal/auth"
)

var _ = Describe("Permissions", func() {
	Describe("PermissionsForRole", func() {
		It("grants admins full tenant administration", func() {
			perms := auth.PermissionsForRole(auth.RoleAdmin)
			Expect(perms).To(ConsistOf(
				auth.PermManageUsers,
				auth.PermCreateUser,
				auth.PermAssignRoles,
				auth.PermManageJobs,
				auth.PermManageCands,
				auth.PermManageIntvws,
				auth.PermViewAnalytics,
				auth.PermManageSettings,
			))
		})

		It("grants managers pipeline control without user administration", func() {
			perms := auth.PermissionsForRole(auth.RoleManager)
			Expect(perms).To(ConsistOf(
				auth.PermManageJobs,
				auth.PermManageCands,
				auth.PermManageIntvws,
				auth.PermViewAnalytics,
				auth.PermViewTeam,
			))
			Expect(perms).ToNot(ContainElement(auth.PermManageUsers))
		})

		It("limits employees to read access plus their assigned interviews", func() {
			perms := auth.PermissionsForRole(auth.RoleEmployee)
			Expect(perms).To(ConsistOf(
				auth.PermViewJobs,
				auth.PermViewCands,
				auth.PermManageAssigned,
			))
		})

		It("limits candidates to their own records and open jobs", func() {
			perms := auth.PermissionsForRole(auth.RoleCandidate)
			Expect(perms).To(ConsistOf(
				auth.PermViewJobs,
				auth.PermApplyJobs,
				auth.PermViewOwnProfile,
				auth.PermViewOwnApps,
				auth.PermViewOwnIntvws,
			))
			Expect(perms).ToNot(ContainElement(auth.PermViewCands))
		})

		It("returns the empty set for an unknown role", func() {
			Expect(auth.PermissionsForRole(auth.Role("superuser"))).To(BeEmpty())
		})

		It("hands out a copy the caller cannot use to mutate the table", func() {
			perms := auth.PermissionsForRole(auth.RoleEmployee)
			perms[0] = auth.PermManageUsers

			Expect(auth.HasPermission(auth.RoleEmployee, auth.PermManageUsers)).To(BeFalse())
		})
	})

	Describe("HasPermission", func() {
		It("fails closed for unknown roles", func() {
			Expect(auth.HasPermission(auth.Role(""), auth.PermViewJobs)).To(BeFalse())
			Expect(auth.HasPermission(auth.Role("root"), auth.PermManageUsers)).To(BeFalse())
		})

		It("fails closed for unknown permissions", func() {
			Expect(auth.HasPermission(auth.RoleAdmin, "delete_everything")).To(BeFalse())
		})

		It("is consistent with the role table", func() {
			for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleManager, auth.RoleEmployee, auth.RoleCandidate} {
				for _, perm := range auth.PermissionsForRole(role) {
					Expect(auth.HasPermission(role, perm)).To(BeTrue(), "role %s should hold %s", role, perm)
				}
			}
		})
	})

	Describe("ParseRole", func() {
		It("accepts only the closed role set", func() {
			for _, s := range []string{"admin", "manager", "employee", "candidate"} {
				role, ok := auth.ParseRole(s)
				Expect(ok).To(BeTrue())
				Expect(string(role)).To(Equal(s))
			}

			_, ok := auth.ParseRole("Admin")
			Expect(ok).To(BeFalse())
			_, ok = auth.ParseRole("")
			Expect(ok).To(BeFalse())
		})
	})
})
