// Package permission declares the capability checks use cases run before acting.
package permission

import (
	"fmt"

	vo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/errors"
)

// PermissionEnforcer answers whether a role may perform action on resource.
type PermissionEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
	AddPolicy(role string, resource string, action string) error
	RemovePolicy(role string, resource string, action string) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}

// Require returns a ForbiddenError unless actor's role holds the capability.
// System actors hold every capability.
func Require(e PermissionEnforcer, actor authorization.Actor, resource vo.Resource, action vo.Action) error {
	if actor.System {
		return nil
	}
	if actor.UserID == 0 {
		return errors.NewUnauthorizedError("authentication required")
	}
	allowed, err := e.Enforce(actor.Role.String(), resource.String(), action.String())
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		return errors.NewForbiddenError(
			"permission denied",
			fmt.Sprintf("%s cannot %s %s", actor.Role, action, resource),
		)
	}
	return nil
}
