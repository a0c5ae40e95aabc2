package authz

import (
	"fmt"

	"github.com/artisanhub/internal/constants"
)

// roleUser every signed-in account, whatever its role
const roleUser = "user"

// RoleSeed built-in role definition
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds route permissions per account role
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: roleUser,
			Policies: []Policy{
				{Object: "/auth/profile", Action: "GET"},
				{Object: "/auth/profile", Action: "PUT"},
				{Object: "/auth/change-password", Action: "PUT"},
				{Object: "/auth/verify", Action: "GET"},
				{Object: "/reviews/user", Action: "GET"},
				{Object: "/reviews/:id", Action: "PUT"},
				{Object: "/reviews/:id", Action: "DELETE"},
				{Object: "/reviews/:id/helpful", Action: "POST"},
				{Object: "/wishlist", Action: "GET"},
				{Object: "/wishlist/add", Action: "POST"},
				{Object: "/wishlist/remove/:productId", Action: "DELETE"},
				{Object: "/wishlist/clear", Action: "DELETE"},
				{Object: "/wishlist/check/:productId", Action: "GET"},
				{Object: "/notifications", Action: "GET"},
				{Object: "/notifications/:id/read", Action: "PUT"},
			},
		},
		{
			Role:     constants.RoleCustomer,
			Inherits: []string{roleUser},
			Policies: []Policy{
				{Object: "/cart", Action: "GET"},
				{Object: "/cart/summary", Action: "GET"},
				{Object: "/cart/validate", Action: "GET"},
				{Object: "/cart/add", Action: "POST"},
				{Object: "/cart/item/:productId", Action: "PUT"},
				{Object: "/cart/item/:productId", Action: "DELETE"},
				{Object: "/cart/clear", Action: "DELETE"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/cancel", Action: "PUT"},
				{Object: "/reviews", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleArtisan,
			Inherits: []string{roleUser},
			Policies: []Policy{
				{Object: "/products", Action: "POST"},
				{Object: "/products/:id", Action: "PUT"},
				{Object: "/products/:id", Action: "DELETE"},
				{Object: "/artisan/dashboard/stats", Action: "GET"},
				{Object: "/artisan/analytics", Action: "GET"},
				{Object: "/artisan/products", Action: "GET"},
				{Object: "/artisan/products/:productId/status", Action: "PUT"},
				{Object: "/artisan/products/:productId/featured", Action: "PUT"},
				{Object: "/artisan/profile", Action: "GET"},
				{Object: "/artisan/profile", Action: "PUT"},
				{Object: "/artisan/orders", Action: "GET"},
				{Object: "/artisan/orders/:id/status", Action: "PUT"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleCustomer, constants.RoleArtisan},
			Policies: []Policy{
				{Object: "/admin/reviews/:id/hidden", Action: "PUT"},
				{Object: "/admin/authz/roles", Action: "GET"},
				{Object: "/admin/authz/roles/:role/policies", Action: "GET"},
				{Object: "/admin/authz/policies", Action: "POST"},
				{Object: "/admin/authz/policies", Action: "DELETE"},
			},
		},
	}
}

// BootstrapBuiltinRoles writes the built-in roles; existing rules are left alone
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		for _, parent := range seed.Inherits {
			if err := s.InheritRole(seed.Role, parent); err != nil {
				return err
			}
		}
		for _, policy := range seed.Policies {
			if _, err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("seed %s: %w", seed.Role, err)
			}
		}
	}
	return nil
}
