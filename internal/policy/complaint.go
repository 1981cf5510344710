package policy

import (
	"context"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
)

// ResourceComplaint is the gate key for complaint authorization.
const ResourceComplaint = "complaint"

// ComplaintPolicy encodes who may do what with complaints:
// students file complaints and read their own; admins read everything and
// are the only ones allowed to change a status.
type ComplaintPolicy struct {
	read gate.Policy[auth.Principal]
}

func NewComplaintPolicy() *ComplaintPolicy {
	return &ComplaintPolicy{read: NewAdminBypassPolicy(NewOwnershipPolicy())}
}

func (p *ComplaintPolicy) Can(ctx context.Context, user auth.Principal, action gate.Action, resource any) bool {
	switch action {
	case gate.ActionCreate:
		return !user.IsAdmin
	case gate.ActionList:
		// nil resource lists everything; otherwise the resource is the owner filter
		return user.IsAdmin || resource != nil && p.read.Can(ctx, user, action, resource)
	case gate.ActionView:
		return p.read.Can(ctx, user, action, resource)
	case gate.ActionUpdate:
		return user.IsAdmin
	default:
		return false
	}
}

// NewGate returns the application's gate with every policy registered.
func NewGate() *gate.Gate[auth.Principal] {
	g := gate.NewGate[auth.Principal]()
	g.Register(ResourceComplaint, NewComplaintPolicy())
	return g
}

// Owner is an Ownable for list checks scoped to a single user.
type Owner uint

func (o Owner) GetUserID() uint { return uint(o) }
