package service

import (
	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	authconstant "github.com/Tanimou/user-management-system-sub001/pkg/constant"
)

// ValidateRoleChange rejects a role update in which an admin would
// strip the admin role from their own account.
func ValidateRoleChange(actorID, targetID string, newRoles []string) error {
	if actorID != targetID {
		return nil
	}

	for _, role := range newRoles {
		if role == authconstant.AdminRoleName {
			return nil
		}
	}

	return autherror.ErrSelfDemotion
}

// ValidateDeactivation rejects an admin deactivating their own account.
func ValidateDeactivation(actorID, targetID string) error {
	if actorID == targetID {
		return autherror.ErrSelfDeactivation
	}

	return nil
}
