package policy

import (
	"context"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
)

// Ownable is an interface for resources that have an owner.
type Ownable interface {
	GetUserID() uint
}

// OwnershipPolicy allows a principal to act on resources it owns.
type OwnershipPolicy struct{}

// NewOwnershipPolicy creates a new ownership policy.
func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can checks if the principal owns the resource.
// Resources that do not implement Ownable are denied.
func (p *OwnershipPolicy) Can(_ context.Context, user auth.Principal, _ gate.Action, resource any) bool {
	ownable, ok := resource.(Ownable)
	if !ok {
		return false
	}
	return ownable.GetUserID() == user.ID
}

// AdminBypassPolicy wraps another policy and always allows access for admins.
type AdminBypassPolicy struct {
	inner gate.Policy[auth.Principal]
}

// NewAdminBypassPolicy creates a policy that bypasses inner for admins.
func NewAdminBypassPolicy(inner gate.Policy[auth.Principal]) *AdminBypassPolicy {
	return &AdminBypassPolicy{inner: inner}
}

// Can checks if user is admin (bypass) or falls back to the inner policy.
func (p *AdminBypassPolicy) Can(ctx context.Context, user auth.Principal, action gate.Action, resource any) bool {
	if user.IsAdmin {
		return true
	}
	return p.inner.Can(ctx, user, action, resource)
}
