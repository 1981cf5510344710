package policy_test

import (
	"context"
	"testing"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/diewo77/go-complaints/internal/policy"
)

var (
	alice = auth.Principal{ID: 42, StudentID: "S1"}
	bob   = auth.Principal{ID: 99, StudentID: "S2"}
	admin = auth.Principal{ID: 1, StudentID: "admin001", IsAdmin: true}
)

// mockNonOwnable is a test resource that does NOT implement Ownable.
type mockNonOwnable struct {
	ID uint
}

func TestOwnershipPolicy_OwnerCanAccess(t *testing.T) {
	p := policy.NewOwnershipPolicy()
	resource := &models.Complaint{UserID: 42}

	if !p.Can(context.Background(), alice, gate.ActionView, resource) {
		t.Error("Expected owner to have access")
	}
}

func TestOwnershipPolicy_NonOwnerDenied(t *testing.T) {
	p := policy.NewOwnershipPolicy()
	resource := &models.Complaint{UserID: 42}

	if p.Can(context.Background(), bob, gate.ActionView, resource) {
		t.Error("Expected non-owner to be denied")
	}
}

func TestOwnershipPolicy_NonOwnableResource(t *testing.T) {
	p := policy.NewOwnershipPolicy()

	if p.Can(context.Background(), alice, gate.ActionView, &mockNonOwnable{ID: 1}) {
		t.Error("Expected non-Ownable resource to be denied")
	}
	if p.Can(context.Background(), alice, gate.ActionView, nil) {
		t.Error("Expected nil resource to be denied")
	}
}

func TestAdminBypassPolicy(t *testing.T) {
	p := policy.NewAdminBypassPolicy(policy.NewOwnershipPolicy())
	resource := &models.Complaint{UserID: 42}
	ctx := context.Background()

	if !p.Can(ctx, admin, gate.ActionView, resource) {
		t.Error("Expected admin bypass")
	}
	if !p.Can(ctx, alice, gate.ActionView, resource) {
		t.Error("Expected owner to fall through to inner policy")
	}
	if p.Can(ctx, bob, gate.ActionView, resource) {
		t.Error("Expected non-owner denied")
	}
}

func TestComplaintGate(t *testing.T) {
	g := policy.NewGate()
	ctx := context.Background()
	own := &models.Complaint{UserID: alice.ID}

	tests := []struct {
		name     string
		user     auth.Principal
		action   gate.Action
		resource any
		want     bool
	}{
		{"anonymous view", auth.Anonymous, gate.ActionView, own, false},
		{"owner view", alice, gate.ActionView, own, true},
		{"other student view", bob, gate.ActionView, own, false},
		{"admin view", admin, gate.ActionView, own, true},
		{"student create", alice, gate.ActionCreate, nil, true},
		{"admin create", admin, gate.ActionCreate, nil, false},
		{"student update", alice, gate.ActionUpdate, own, false},
		{"admin update", admin, gate.ActionUpdate, own, true},
		{"student list all", alice, gate.ActionList, nil, false},
		{"student list own", alice, gate.ActionList, policy.Owner(alice.ID), true},
		{"student list other", alice, gate.ActionList, policy.Owner(bob.ID), false},
		{"admin list all", admin, gate.ActionList, nil, true},
		{"unknown action", admin, gate.Action("delete"), own, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Can(ctx, tt.user, tt.action, policy.ResourceComplaint, tt.resource); got != tt.want {
				t.Errorf("Can() = %v, want %v", got, tt.want)
			}
		})
	}
}
