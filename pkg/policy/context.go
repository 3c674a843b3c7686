package policy

import "slices"

// Context carries the attributes a policy decides on.
// It is built by the caller for each evaluation and never modified by policies.
type Context struct {
	UserID       string
	AuthUserID   string
	Email        string
	Roles        []string
	Permissions  []string
	FeatureFlags []string

	// Attributes holds anything not covered by the named fields.
	Attributes map[string]any
}

// Attribute returns the free-form attribute stored under key.
func (c Context) Attribute(key string) (any, bool) {
	v, ok := c.Attributes[key]
	return v, ok
}

// StringAttribute returns the attribute under key when it is a string.
func (c Context) StringAttribute(key string) (string, bool) {
	v, ok := c.Attributes[key].(string)
	return v, ok
}

// HasFeature reports whether flag is among the enabled feature flags.
func (c Context) HasFeature(flag string) bool {
	return slices.Contains(c.FeatureFlags, flag)
}
