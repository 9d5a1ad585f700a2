// Package access decides who may read, write and moderate board content.
// Every service method goes through it; no handler or query carries its own
// role conditionals.
package access

import "github.com/aicom-dev/aicom/shared/domain"

type Role int

const (
	RoleGuest Role = iota
	RoleMember
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return "guest"
	}
}

func RoleOf(subject *domain.Subject) Role {
	switch {
	case subject == nil:
		return RoleGuest
	case subject.Admin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// CanAccess evaluates a board read or write policy against a role.
func CanAccess(policy domain.Policy, role Role) bool {
	switch policy {
	case domain.PolicyAnyone:
		return true
	case domain.PolicyMembers:
		return role >= RoleMember
	case domain.PolicyAdmins:
		return role == RoleAdmin
	default:
		return false
	}
}

func CanRead(board *domain.Board, subject *domain.Subject) bool {
	return board != nil && board.IsActive && CanAccess(board.ReadPolicy, RoleOf(subject))
}

func CanWrite(board *domain.Board, subject *domain.Subject) bool {
	return board != nil && board.IsActive && CanAccess(board.WritePolicy, RoleOf(subject))
}

// CanModerate is the ownership gate for editing and deleting posts and
// comments. Admins pass regardless of owner and board write policy.
func CanModerate(subject *domain.Subject, owner domain.UserId) bool {
	if subject == nil {
		return false
	}
	return subject.Admin || subject.UserId == owner
}

// ReadablePolicies lists the read policies a role satisfies, for queries
// that must filter by visibility in storage.
func ReadablePolicies(role Role) []domain.Policy {
	var policies []domain.Policy
	for _, p := range []domain.Policy{domain.PolicyAnyone, domain.PolicyMembers, domain.PolicyAdmins} {
		if CanAccess(p, role) {
			policies = append(policies, p)
		}
	}
	return policies
}
