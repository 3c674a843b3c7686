package logger

import (
	"log/slog"
	"strconv"
)

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under the key "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// UserID records the principal identifier under the key "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// Role records a role name under the key "role".
func Role[R ~string](role R) slog.Attr {
	return slog.String("role", string(role))
}

// Roles records a list of roles under the key "roles".
func Roles[R ~string](roles []R) slog.Attr {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return slog.Any("roles", names)
}

// Permission records a permission under the key "permission".
func Permission[P ~string](p P) slog.Attr {
	return slog.String("permission", string(p))
}

// Policy records a policy name under the key "policy".
func Policy(name string) slog.Attr {
	return slog.String("policy", name)
}

// Group records a policy group name under the key "group".
func Group(name string) slog.Attr {
	return slog.String("group", name)
}

// Decision groups the outcome of a policy evaluation under the key "decision".
func Decision(name string, allowed bool, reason string) slog.Attr {
	attrs := []slog.Attr{
		slog.String("name", name),
		slog.Bool("allowed", allowed),
	}
	if reason != "" {
		attrs = append(attrs, slog.String("reason", reason))
	}
	return slog.Attr{Key: "decision", Value: slog.GroupValue(attrs...)}
}

// EvaluationID records the correlation id of one policy evaluation.
func EvaluationID(id string) slog.Attr {
	return slog.String("evaluation_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
