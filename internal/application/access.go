package application

import "github.com/oksasatya/todo-api/internal/domain/entity"

// MayAccess reports whether caller may touch a resource owned by ownerID.
func MayAccess(ownerID int64, caller *entity.User) bool {
	if caller == nil {
		return false
	}
	return caller.ID == ownerID || caller.IsAdmin
}

// RequireAdmin fails with ErrForbidden unless caller is an admin.
func RequireAdmin(caller *entity.User) error {
	if caller == nil || !caller.IsAdmin {
		return newError(ErrForbidden, "Admin privileges required")
	}
	return nil
}
