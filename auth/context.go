package auth

import "context"

type ctxKey string

const principalCtxKey = ctxKey("principal")

// Principal is the identity attached to a request. The zero value is Anonymous.
type Principal struct {
	ID        uint   `json:"id"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"is_admin"`
}

// Anonymous is the principal of requests without a valid session.
var Anonymous = Principal{}

// IsAuthenticated reports whether p refers to a logged-in user.
func (p Principal) IsAuthenticated() bool { return p.ID != 0 }

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// FromContext returns the request principal, or Anonymous.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalCtxKey).(Principal)
	return p
}
