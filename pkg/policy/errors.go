package policy

import "errors"

// ErrEvaluation wraps unexpected failures raised by a policy, as opposed to denials.
var ErrEvaluation = errors.New("policy.evaluation_failed")
