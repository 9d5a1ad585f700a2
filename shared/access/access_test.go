package access

import (
	"testing"

	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var allPolicies = []domain.Policy{domain.PolicyAnyone, domain.PolicyMembers, domain.PolicyAdmins}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		policy domain.Policy
		role   Role
		want   bool
	}{
		{domain.PolicyAnyone, RoleGuest, true},
		{domain.PolicyAnyone, RoleMember, true},
		{domain.PolicyAnyone, RoleAdmin, true},
		{domain.PolicyMembers, RoleGuest, false},
		{domain.PolicyMembers, RoleMember, true},
		{domain.PolicyMembers, RoleAdmin, true},
		{domain.PolicyAdmins, RoleGuest, false},
		{domain.PolicyAdmins, RoleMember, false},
		{domain.PolicyAdmins, RoleAdmin, true},
		{domain.Policy("everyone"), RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy)+"/"+tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.policy, tt.role))
		})
	}
}

func TestCanAccessMonotonicInRole(t *testing.T) {
	roles := []Role{RoleGuest, RoleMember, RoleAdmin}
	for _, p := range allPolicies {
		for i := 1; i < len(roles); i++ {
			if CanAccess(p, roles[i-1]) {
				assert.True(t, CanAccess(p, roles[i]), "policy %s allows %s but not %s", p, roles[i-1], roles[i])
			}
		}
	}
}

func TestRoleOf(t *testing.T) {
	assert.Equal(t, RoleGuest, RoleOf(nil))
	assert.Equal(t, RoleMember, RoleOf(&domain.Subject{UserId: uuid.New()}))
	assert.Equal(t, RoleAdmin, RoleOf(&domain.Subject{UserId: uuid.New(), Admin: true}))
}

func TestCanModerate(t *testing.T) {
	owner := uuid.New()

	assert.False(t, CanModerate(nil, owner))
	assert.True(t, CanModerate(&domain.Subject{UserId: owner}, owner))
	assert.False(t, CanModerate(&domain.Subject{UserId: uuid.New()}, owner))
	assert.True(t, CanModerate(&domain.Subject{UserId: uuid.New(), Admin: true}, owner))
}

func TestCanReadInactiveBoard(t *testing.T) {
	board := &domain.Board{ReadPolicy: domain.PolicyAnyone, WritePolicy: domain.PolicyAnyone}
	admin := &domain.Subject{UserId: uuid.New(), Admin: true}

	assert.False(t, CanRead(board, admin))
	assert.False(t, CanWrite(board, admin))

	board.IsActive = true
	assert.True(t, CanRead(board, nil))
	assert.False(t, CanRead(nil, admin))
}

func TestReadablePolicies(t *testing.T) {
	assert.Equal(t, []domain.Policy{domain.PolicyAnyone}, ReadablePolicies(RoleGuest))
	assert.Equal(t, []domain.Policy{domain.PolicyAnyone, domain.PolicyMembers}, ReadablePolicies(RoleMember))
	assert.Equal(t, allPolicies, ReadablePolicies(RoleAdmin))
}
