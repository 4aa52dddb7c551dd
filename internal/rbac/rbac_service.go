package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Kebijakan statis: dua peran saja. Admin memegang seluruh permukaan,
// karyawan hanya operasi atas datanya sendiri (handler yang memaksa
// employee_id miliknya).
var staticPolicies = [][3]string{
	{"admin", "employee", "read"},
	{"admin", "employee", "manage"},
	{"admin", "employee", "summary"},
	{"admin", "attendance", "punch"},
	{"admin", "attendance", "read"},
	{"admin", "attendance", "remove"},
	{"admin", "attendance", "stats"},
	{"admin", "performance", "read_all"},
	{"admin", "performance", "read"},
	{"admin", "payroll", "run"},
	{"admin", "payroll", "read"},
	{"admin", "payroll", "approve"},
	{"admin", "leave", "read_all"},
	{"admin", "leave", "decide"},

	{"employee", "employee", "summary"},
	{"employee", "attendance", "punch"},
	{"employee", "attendance", "read"},
	{"employee", "performance", "read"},
	{"employee", "payroll", "read"},
	{"employee", "leave", "create"},
	{"employee", "leave", "cancel"},
	{"employee", "leave", "read"},
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac: parse model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac: new enforcer: %w", err)
	}
	for _, p := range staticPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("rbac: add policy %v: %w", p, err)
		}
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
