package rbac

import (
	"fmt"
	"sync"

	"go-hrm/internal/identity"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Model RBAC klasik tanpa domain: subject = role dari JWT.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policy mendefinisikan resource/action per role. Tabelnya diturunkan dari
// capability table di internal/identity supaya tidak ada dua sumber kebenaran.
type policy struct {
	role     identity.Role
	resource string
	action   string
}

func staticPolicies() []policy {
	var out []policy
	for _, role := range identity.Roles() {
		caps := role.Capabilities()

		// Semua role yang terautentikasi boleh membaca dan mengajukan leave;
		// visibility per-record tetap dicek di Lifecycle Authority.
		out = append(out,
			policy{role, "leave", "read"},
			policy{role, "leave", "create"},
			policy{role, "leave", "cancel"},
			policy{role, "review", "read"},
			policy{role, "employee", "read"},
		)

		if caps.CanReview {
			out = append(out, policy{role, "leave", "approve"})
		}
		if caps.CanManageEmployees {
			out = append(out, policy{role, "employee", "manage"})
		}
		if caps.CanManageReviews {
			out = append(out, policy{role, "review", "manage"})
		}
	}
	return out
}

//go:generate mockgen -source=rbac.go -destination=mock/rbac_mock.go -package=mock
type Service interface {
	Enforce(role identity.Role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}

	for _, p := range staticPolicies() {
		if _, err := enforcer.AddPolicy(string(p.role), p.resource, p.action); err != nil {
			return nil, fmt.Errorf("rbac add policy: %w", err)
		}
	}

	// ADMIN mewarisi semua yang dimiliki HR_MANAGER
	if _, err := enforcer.AddGroupingPolicy(string(identity.RoleAdmin), string(identity.RoleHRManager)); err != nil {
		return nil, fmt.Errorf("rbac add grouping: %w", err)
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role identity.Role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(string(role), resource, action)
}
