package authz

import (
	"fmt"

	"github.com/taazabazaar/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

const roleSessionHolder = "session_holder"

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: roleSessionHolder,
			Policies: []Policy{
				{Object: "/me", Action: "GET"},
				{Object: "/notifications", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleCustomer,
			Inherits: []string{roleSessionHolder},
			Policies: []Policy{
				{Object: "/cart", Action: "*"},
				{Object: "/cart/items", Action: "POST"},
				{Object: "/cart/items/:id", Action: "PUT"},
				{Object: "/cart/items/:id", Action: "DELETE"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{roleSessionHolder},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddGroupingPolicy(role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
