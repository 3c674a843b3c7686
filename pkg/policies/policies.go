package policies

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/authkit/pkg/policy"
)

// Denial reasons shared by the built-in policies.
const (
	ReasonBlocked   = "User is blocked"
	ReasonTrialUsed = "User already used the free trial"
)

// RegistrationPolicy checks whether an email address may register.
type RegistrationPolicy struct {
	policy.Base
	blocked     Blocklist
	alreadyUsed Blocklist
}

// NewRegistrationPolicy denies blocked emails and emails that already claimed a trial.
// Either list may be nil.
func NewRegistrationPolicy(blocked, alreadyUsed Blocklist) *RegistrationPolicy {
	return &RegistrationPolicy{
		Base:        policy.NewBase("RegistrationPolicy", "Check if user can register"),
		blocked:     blocked,
		alreadyUsed: alreadyUsed,
	}
}

func (p *RegistrationPolicy) Can(ctx context.Context, pc policy.Context) (policy.Decision, error) {
	return decide(ctx, p.Base, pc.Email,
		rule{list: p.blocked, reason: ReasonBlocked},
		rule{list: p.alreadyUsed, reason: ReasonTrialUsed},
	)
}

// FreeTrialPolicy checks whether a user may start a free trial.
type FreeTrialPolicy struct {
	policy.Base
	blocked     Blocklist
	alreadyUsed Blocklist
}

// NewFreeTrialPolicy denies blocked user ids and users that already had a trial.
func NewFreeTrialPolicy(blocked, alreadyUsed Blocklist) *FreeTrialPolicy {
	return &FreeTrialPolicy{
		Base:        policy.NewBase("FreeTrialPolicy", "Check if user can access the free trial"),
		blocked:     blocked,
		alreadyUsed: alreadyUsed,
	}
}

func (p *FreeTrialPolicy) Can(ctx context.Context, pc policy.Context) (policy.Decision, error) {
	return decide(ctx, p.Base, pc.UserID,
		rule{list: p.blocked, reason: ReasonBlocked},
		rule{list: p.alreadyUsed, reason: ReasonTrialUsed},
	)
}

// PurchasePolicy checks whether a user may purchase.
type PurchasePolicy struct {
	policy.Base
	blocked Blocklist
}

func NewPurchasePolicy(blocked Blocklist) *PurchasePolicy {
	return &PurchasePolicy{
		Base:    policy.NewBase("PurchasePolicy", "Check if user can purchase"),
		blocked: blocked,
	}
}

func (p *PurchasePolicy) Can(ctx context.Context, pc policy.Context) (policy.Decision, error) {
	return decide(ctx, p.Base, pc.UserID, rule{list: p.blocked, reason: ReasonBlocked})
}

// LoginPolicy checks whether an email address may log in.
type LoginPolicy struct {
	policy.Base
	blocked Blocklist
}

func NewLoginPolicy(blocked Blocklist) *LoginPolicy {
	return &LoginPolicy{
		Base:    policy.NewBase("LoginPolicy", "Check if user can login"),
		blocked: blocked,
	}
}

func (p *LoginPolicy) Can(ctx context.Context, pc policy.Context) (policy.Decision, error) {
	return decide(ctx, p.Base, pc.Email, rule{list: p.blocked, reason: ReasonBlocked})
}

// ProductAddPolicy checks whether a user may create products.
type ProductAddPolicy struct {
	policy.Base
	blocked Blocklist
}

func NewProductAddPolicy(blocked Blocklist) *ProductAddPolicy {
	return &ProductAddPolicy{
		Base:    policy.NewBase("ProductAddPolicy", "Check if user can add product"),
		blocked: blocked,
	}
}

func (p *ProductAddPolicy) Can(ctx context.Context, pc policy.Context) (policy.Decision, error) {
	return decide(ctx, p.Base, pc.UserID,
		rule{list: p.blocked, reason: fmt.Sprintf("User with id %s is blocked", pc.UserID)},
	)
}

func decide(ctx context.Context, base policy.Base, value string, rules ...rule) (policy.Decision, error) {
	reason, denied, err := match(ctx, value, rules...)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("%s: %w", base.Name(), err)
	}
	if denied {
		return base.Denied(reason), nil
	}
	return base.Allowed(), nil
}
