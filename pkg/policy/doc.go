// Package policy composes named authorization rules into ordered, short-circuiting chains.
//
// A Policy inspects a Context and returns a Decision. Expected negative outcomes are
// denials (Decision.Allowed == false) with a reason; errors are reserved for failures
// that prevent a decision, and are wrapped in ErrEvaluation by groups so callers can
// tell "access denied" apart from "could not determine access".
//
// Groups are built once and evaluated many times:
//
//	trial := policy.NewBuilder("FreeTrialPolicyGroup").
//	    Add(policies.NewRegistrationPolicy(blockedEmails, usedEmails)).
//	    Add(policies.NewFreeTrialPolicy(blockedUsers, usedTrials)).
//	    Build()
//
//	d, err := trial.Can(ctx, policy.Context{UserID: id, Email: email})
//	switch {
//	case err != nil:
//	    // lookup failed; do not treat as a denial
//	case !d.Allowed:
//	    log.Info("trial refused", "policy", d.Name, "reason", d.Reason)
//	}
//
// Can stops at the first denial and CanAny at the first allow. Evaluation is
// sequential and has no cancellation point between policies; the context is
// passed to each policy for its own I/O.
package policy
