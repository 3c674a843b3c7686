package rbac

import "context"

// managerCtxKey is the context key for the request-scoped Manager.
type managerCtxKey struct{}

// WithManager stores the principal's Manager in the context.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerCtxKey{}, m)
}

// ManagerFromContext retrieves the Manager stored by WithManager.
func ManagerFromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerCtxKey{}).(*Manager)
	return m, ok && m != nil
}
