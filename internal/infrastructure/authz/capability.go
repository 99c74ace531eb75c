// Package authz holds the role to capability mapping. Server middleware and
// the client guards both answer "may this role perform X" through it, so the
// admin/moderator/user rule set lives in exactly one place.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// Capabilities understood by the evaluator.
const (
	CapViewUsers      = "users.view"
	CapManageUsers    = "users.manage"
	CapManageProducts = "products.manage"
)

// The policy table is fixed; roles and capabilities are not managed at
// runtime, so the enforcer runs on an in-memory model with no adapter.
const capabilityModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

var capabilityPolicies = [][]string{
	{domain.RoleAdmin, CapViewUsers},
	{domain.RoleAdmin, CapManageUsers},
	{domain.RoleAdmin, CapManageProducts},
	{domain.RoleModerator, CapViewUsers},
	{domain.RoleModerator, CapManageProducts},
}

// CapabilityServiceImpl implements domain.CapabilityService on a Casbin
// enforcer.
type CapabilityServiceImpl struct {
	enforcer *casbin.Enforcer
}

// NewCapabilityService builds the enforcer and seeds the fixed policy table.
func NewCapabilityService() (domain.CapabilityService, error) {
	m, err := model.NewModelFromString(capabilityModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capability model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for _, p := range capabilityPolicies {
		if _, err := e.AddPolicy(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}

	return &CapabilityServiceImpl{enforcer: e}, nil
}

// HasCapability implements domain.CapabilityService. Unknown roles and
// capabilities simply evaluate to false.
func (s *CapabilityServiceImpl) HasCapability(role, capability string) bool {
	ok, err := s.enforcer.Enforce(role, capability)
	if err != nil {
		return false
	}
	return ok
}
