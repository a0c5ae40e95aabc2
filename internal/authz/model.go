package authz

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	apiPrefix       = "/api"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
)

// rbacModel roles inherit through g; objects are gin route templates matched with keyMatch2
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	ErrUnavailable   = errors.New("authz service unavailable")
	ErrInvalidPolicy = errors.New("invalid policy")
)

var roleNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Policy one allow rule
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

func (p Policy) params() []interface{} {
	return []interface{}{p.Subject, p.Object, p.Action}
}

func newPolicy(role, object, action string) (Policy, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return Policy{}, err
	}
	act := NormalizeAction(action)
	if act == "" {
		return Policy{}, fmt.Errorf("%w: action is required", ErrInvalidPolicy)
	}
	return Policy{Subject: subject, Object: NormalizeObject(object), Action: act}, nil
}

func policyFromRule(rule []string) (Policy, bool) {
	if len(rule) < 3 {
		return Policy{}, false
	}
	return Policy{
		Subject: strings.TrimSpace(rule[0]),
		Object:  NormalizeObject(rule[1]),
		Action:  NormalizeAction(rule[2]),
	}, true
}

// NormalizeRole "Artisan" -> "role:artisan"
func NormalizeRole(role string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(role))
	name = strings.TrimPrefix(name, rolePrefix)
	name = strings.ReplaceAll(name, " ", "_")
	if !roleNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: bad role %q", ErrInvalidPolicy, role)
	}
	return rolePrefix + name, nil
}

// NormalizeObject strips the /api prefix so policies stay mount-independent
func NormalizeObject(object string) string {
	obj := strings.TrimSpace(object)
	if !strings.HasPrefix(obj, "/") {
		obj = "/" + obj
	}
	switch {
	case obj == apiPrefix:
		return "/"
	case strings.HasPrefix(obj, apiPrefix+"/"):
		return obj[len(apiPrefix):]
	}
	return obj
}

// NormalizeAction upper-case HTTP method
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
