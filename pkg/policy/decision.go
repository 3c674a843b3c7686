package policy

// Reasons used by Base and Group.
const (
	ReasonGranted   = "Access granted"
	ReasonDenied    = "Access denied"
	ReasonAllDenied = "All policies denied"
)

// Decision is the outcome of evaluating a policy or a group.
type Decision struct {
	// Name of the policy or group that produced the decision.
	Name string

	// Allowed is true when access is granted.
	Allowed bool

	// Reason is a human-readable explanation. Always set on denials.
	Reason string
}

// Allow returns an allowing decision for name.
func Allow(name, reason string) Decision {
	return Decision{Name: name, Allowed: true, Reason: reason}
}

// Deny returns a denying decision for name. An empty reason becomes ReasonDenied.
func Deny(name, reason string) Decision {
	if reason == "" {
		reason = ReasonDenied
	}
	return Decision{Name: name, Allowed: false, Reason: reason}
}
