// Package policies contains the built-in business policies: registration, free
// trial, purchase, login and product creation eligibility, plus adapters that
// bring RBAC requirements and feature flags into a policy group.
//
// Rule tables are injected as Blocklist values rather than baked into the
// policies. Set keeps them in memory and can be updated at runtime; a remote
// implementation (see pkg/redis) performs a lookup per evaluation, and its
// failures surface as errors wrapping ErrLookup instead of denials.
//
//	blocked := policies.NewEmailSet("a@x.com")
//	p := policies.NewRegistrationPolicy(blocked, nil)
//	d, _ := p.Can(ctx, policy.Context{Email: "a@x.com"})
//	// d.Allowed == false, d.Reason == "User is blocked"
package policies
