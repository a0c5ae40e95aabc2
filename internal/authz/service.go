package authz

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// Service route-level authorization by account role.
// Rules persist in casbin_rule via the gorm adapter; writes auto-save.
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService loads every stored rule
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("create authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// EnforceRole may an account with role call act on the route template obj
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(subject, NormalizeObject(obj), NormalizeAction(act))
}

// ListRoles roles that own a rule or appear in an inheritance link, sorted
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	links, err := s.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return nil, fmt.Errorf("list role links: %w", err)
	}
	rules, err := s.enforcer.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	var roles []string
	for _, link := range links {
		roles = append(roles, link...)
	}
	for _, rule := range rules {
		if len(rule) > 0 {
			roles = append(roles, rule[0])
		}
	}
	roles = slices.DeleteFunc(roles, func(r string) bool { return !strings.HasPrefix(r, rolePrefix) })
	slices.Sort(roles)
	return slices.Compact(roles), nil
}

// InheritRole role gains every permission of parent
func (s *Service) InheritRole(role, parent string) error {
	if err := s.ready(); err != nil {
		return err
	}
	child, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	base, err := NormalizeRole(parent)
	if err != nil {
		return err
	}
	if child == base {
		return fmt.Errorf("%w: %s cannot inherit itself", ErrInvalidPolicy, child)
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", child, base); err != nil {
		return fmt.Errorf("link %s to %s: %w", child, base, err)
	}
	return nil
}

// GrantRolePolicy added is false when the rule already existed
func (s *Service) GrantRolePolicy(role, object, action string) (added bool, err error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	p, err := newPolicy(role, object, action)
	if err != nil {
		return false, err
	}
	added, err = s.enforcer.AddPolicy(p.params()...)
	if err != nil {
		return false, fmt.Errorf("grant %s %s to %s: %w", p.Action, p.Object, p.Subject, err)
	}
	return added, nil
}

// RevokeRolePolicy removed is false when there was no such rule
func (s *Service) RevokeRolePolicy(role, object, action string) (removed bool, err error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	p, err := newPolicy(role, object, action)
	if err != nil {
		return false, err
	}
	removed, err = s.enforcer.RemovePolicy(p.params()...)
	if err != nil {
		return false, fmt.Errorf("revoke %s %s from %s: %w", p.Action, p.Object, p.Subject, err)
	}
	return removed, nil
}

// GetRolePolicies direct rules of role sorted by object then action; inherited ones are excluded
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return nil, fmt.Errorf("policies of %s: %w", subject, err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if p, ok := policyFromRule(rule); ok {
			policies = append(policies, p)
		}
	}
	sort.Slice(policies, func(i, j int) bool {
		if policies[i].Object != policies[j].Object {
			return policies[i].Object < policies[j].Object
		}
		return policies[i].Action < policies[j].Action
	})
	return policies, nil
}
