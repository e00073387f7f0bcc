package user

import (
	"context"
	"fmt"

	"github.com/eventforge/eventforge/pkg/model"
)

type userServiceUtil interface {
	FindOrCreate(ctx context.Context, email string, password string, role string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// CreateAdminUser makes sure an enabled and approved administrator with given email exists.
func CreateAdminUser(ctx context.Context, email, password string, userService userServiceUtil) error {
	u, err := userService.FindOrCreate(ctx, email, password, model.RoleAdministrator)
	if err != nil {
		return fmt.Errorf("error creating admin user: %v", err)
	}

	if u.IsAdministrator() && u.IsEnabled && u.IsNonLocked && u.IsApprovedByAdmin {
		return nil
	}

	u.Role = model.RoleAdministrator
	u.IsEnabled = true
	u.IsNonLocked = true
	u.IsApprovedByAdmin = true

	err = userService.Save(ctx, u)
	if err != nil {
		return fmt.Errorf("error saving admin user: %v", err)
	}

	return nil
}
